// SPDX-License-Identifier: MIT

// Package epg cleans, merges and serializes XMLTV program guides.
package epg

import (
	"encoding/xml"
	"strings"
)

// TV is the XMLTV root element. Channels are always emitted before programmes.
type TV struct {
	XMLName       xml.Name    `xml:"tv"`
	Date          string      `xml:"date,attr,omitempty"`
	GeneratorName string      `xml:"generator-info-name,attr,omitempty"`
	GeneratorURL  string      `xml:"generator-info-url,attr,omitempty"`
	Channels      []Channel   `xml:"channel"`
	Programmes    []Programme `xml:"programme"`
}

// Channel is a single <channel> entry. Children other than display-name, icon
// and url are carried through untouched in Extra.
type Channel struct {
	ID           string   `xml:"id,attr"`
	DisplayNames []Text   `xml:"display-name"`
	Icons        []Icon   `xml:"icon"`
	URLs         []string `xml:"url"`
	Extra        []Node   `xml:",any"`
}

// Icon references a channel logo.
type Icon struct {
	Src    string `xml:"src,attr"`
	Width  string `xml:"width,attr,omitempty"`
	Height string `xml:"height,attr,omitempty"`
}

// Programme is a single <programme> entry. Only the three text kinds survive
// cleaning; anything else decoded into Extra is discarded.
type Programme struct {
	Start     string     `xml:"start,attr"`
	Stop      string     `xml:"stop,attr"`
	Channel   string     `xml:"channel,attr"`
	Attrs     []xml.Attr `xml:",any,attr"`
	Titles    []Text     `xml:"title"`
	SubTitles []Text     `xml:"sub-title"`
	Descs     []Text     `xml:"desc"`
	Extra     []Node     `xml:",any"`
}

// HasText reports whether any title, sub-title or desc is present.
func (p Programme) HasText() bool {
	return len(p.Titles)+len(p.SubTitles)+len(p.Descs) > 0
}

// Title returns the first title value, or "".
func (p Programme) Title() string {
	if len(p.Titles) == 0 {
		return ""
	}
	return p.Titles[0].Value
}

// Text is a language-tagged text element (title, sub-title, desc, display-name).
type Text struct {
	// Lang contains the language code (optional).
	Lang string `xml:"lang,attr,omitempty"`
	// Value is the character data of the element.
	Value string `xml:",chardata"`
}

// Node is a generic element used to carry children the model does not know about.
type Node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Nodes   []Node     `xml:",any"`
}

// tidy drops layout whitespace so re-indentation never produces blank lines.
// Mixed content keeps only the child elements: the encoder cannot interleave
// chardata with children, so the text would otherwise move and grow on every
// pass.
func (n Node) tidy() Node {
	if len(n.Attrs) > 0 {
		attrs := make([]xml.Attr, 0, len(n.Attrs))
		for _, a := range n.Attrs {
			if !isNamespaceAttr(a) {
				attrs = append(attrs, a)
			}
		}
		n.Attrs = attrs
	}
	if strings.TrimSpace(n.Text) == "" || len(n.Nodes) > 0 {
		n.Text = ""
	}
	if len(n.Nodes) == 0 {
		return n
	}
	nodes := make([]Node, len(n.Nodes))
	for i, child := range n.Nodes {
		nodes[i] = child.tidy()
	}
	n.Nodes = nodes
	return n
}

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// isNamespaceAttr reports namespace declarations and namespaced attributes.
// encoding/xml re-emits both under invented prefixes that multiply on every
// pass, and XMLTV defines none. xml:lang and friends survive.
func isNamespaceAttr(a xml.Attr) bool {
	switch {
	case a.Name.Space == "xmlns", a.Name.Local == "xmlns":
		return true
	case a.Name.Space == "_xmlns", a.Name.Local == "_xmlns":
		return true
	}
	return a.Name.Space != "" && a.Name.Space != xmlNamespace
}
