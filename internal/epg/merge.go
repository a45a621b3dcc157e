// SPDX-License-Identifier: MIT

package epg

import "time"

// Generator identity stamped on every document this package writes.
const (
	DefaultGeneratorName = "EPG Generator (Senvora)"
	DefaultGeneratorURL  = "https://github.com/senvora/epg.git"
)

// Meta holds the root attributes of an output document.
type Meta struct {
	Date          time.Time
	Location      *time.Location
	GeneratorName string
	GeneratorURL  string
}

// DefaultMeta stamps now with the default generator identity.
func DefaultMeta(now time.Time, loc *time.Location) Meta {
	return Meta{
		Date:          now,
		Location:      loc,
		GeneratorName: DefaultGeneratorName,
		GeneratorURL:  DefaultGeneratorURL,
	}
}

// Merge concatenates already cleaned documents in the order given: all
// channels of the first document, then the second, and so on, followed by the
// programmes in the same document order. Identical channel ids from different
// documents are kept as separate entries.
func Merge(meta Meta, docs ...*TV) *TV {
	var nCh, nProg int
	for _, d := range docs {
		if d == nil {
			continue
		}
		nCh += len(d.Channels)
		nProg += len(d.Programmes)
	}

	out := &TV{
		Channels:   make([]Channel, 0, nCh),
		Programmes: make([]Programme, 0, nProg),
	}
	for _, d := range docs {
		if d != nil {
			out.Channels = append(out.Channels, d.Channels...)
		}
	}
	for _, d := range docs {
		if d != nil {
			out.Programmes = append(out.Programmes, d.Programmes...)
		}
	}

	out.Date = FormatTimestamp(meta.Date, meta.Location)
	out.GeneratorName = meta.GeneratorName
	out.GeneratorURL = meta.GeneratorURL
	return out
}
