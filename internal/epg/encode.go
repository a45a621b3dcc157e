// SPDX-License-Identifier: MIT

package epg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Header is the fixed XML declaration written before every document.
const Header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Encode writes tv as UTF-8 XML indented by two spaces, one element per line.
func Encode(w io.Writer, tv *TV) error {
	if _, err := io.WriteString(w, Header); err != nil {
		return fmt.Errorf("write xml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(tv); err != nil {
		return fmt.Errorf("encode xmltv: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode xmltv: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write trailing newline: %w", err)
	}
	return nil
}

// Marshal returns the Encode output as bytes.
func Marshal(tv *TV) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, tv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
