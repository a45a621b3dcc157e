// SPDX-License-Identifier: MIT

package epg

import (
	"encoding/xml"
	"time"
)

// droppedAttrs are programme attributes never carried into output.
var droppedAttrs = map[string]bool{
	"catchup-id": true,
}

// CleanOptions controls how a single guide document is cleaned.
type CleanOptions struct {
	Window        Window
	Location      *time.Location // output zone, IST when nil
	PreferredLang string         // DefaultPreferredLang when empty
	ChannelPrefix string         // stripped from channel ids; empty disables
	SortMode      SortMode
}

// Rejection records a programme dropped because its timestamps could not be read.
type Rejection struct {
	Channel string
	Start   string
	Stop    string
	Err     error
}

// CleanStats summarises what Clean kept and dropped.
type CleanStats struct {
	Channels      int
	ProgrammesIn  int
	Kept          int
	OutsideWindow int
	InvalidTime   int
	NoText        int
	Orphans       int // kept programmes whose channel is not in the channel list
	Collisions    []string
	Rejections    []Rejection
}

// Clean runs one document through timestamp normalization, window filtering,
// text pruning, channel id normalization and ordering. The input is left
// untouched; the returned document has no root attributes set.
func Clean(in *TV, opts CleanOptions) (*TV, CleanStats) {
	loc := opts.Location
	if loc == nil {
		loc = IST
	}

	channels, ids, collisions := NormalizeChannels(in.Channels, opts.ChannelPrefix)
	stats := CleanStats{
		Channels:     len(channels),
		ProgrammesIn: len(in.Programmes),
		Collisions:   collisions,
	}

	programmes := make([]Programme, 0, len(in.Programmes))
	for _, p := range in.Programmes {
		start, errStart := ParseTimestamp(p.Start)
		stop, errStop := ParseTimestamp(p.Stop)
		if err := firstErr(errStart, errStop); err != nil {
			stats.InvalidTime++
			stats.Rejections = append(stats.Rejections, Rejection{
				Channel: p.Channel,
				Start:   p.Start,
				Stop:    p.Stop,
				Err:     err,
			})
			continue
		}
		if !opts.Window.Overlaps(start, stop) {
			stats.OutsideWindow++
			continue
		}

		cleaned := Programme{
			Start:     FormatTimestamp(start, loc),
			Stop:      FormatTimestamp(stop, loc),
			Channel:   ids.Rewrite(p.Channel),
			Attrs:     keepAttrs(p.Attrs),
			Titles:    PruneTexts(p.Titles, opts.PreferredLang),
			SubTitles: PruneTexts(p.SubTitles, opts.PreferredLang),
			Descs:     PruneTexts(p.Descs, opts.PreferredLang),
		}
		if !cleaned.HasText() {
			stats.NoText++
			continue
		}
		programmes = append(programmes, cleaned)
	}

	channels = SortChannels(channels, opts.SortMode)
	programmes = SortProgrammes(programmes, channels)

	ranks := ChannelRanks(channels)
	for _, p := range programmes {
		if _, ok := ranks[p.Channel]; !ok {
			stats.Orphans++
		}
	}
	stats.Kept = len(programmes)

	return &TV{Channels: channels, Programmes: programmes}, stats
}

func keepAttrs(attrs []xml.Attr) []xml.Attr {
	var out []xml.Attr
	for _, a := range attrs {
		if droppedAttrs[a.Name.Local] || isNamespaceAttr(a) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
