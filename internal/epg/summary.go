// SPDX-License-Identifier: MIT

package epg

// ChannelSummary describes one channel of a guide for reporting.
type ChannelSummary struct {
	ID         string
	Name       string
	Programmes int
	FirstStart string
	LastStop   string
}

// Summarize reports per-channel programme counts in channel order. Programmes
// referencing unknown channels are counted under an extra entry with an empty
// Name, appended last.
func Summarize(tv *TV) []ChannelSummary {
	out := make([]ChannelSummary, 0, len(tv.Channels))
	index := make(map[string]int, len(tv.Channels))
	for _, ch := range tv.Channels {
		if _, dup := index[ch.ID]; dup {
			continue
		}
		s := ChannelSummary{ID: ch.ID}
		if len(ch.DisplayNames) > 0 {
			s.Name = ch.DisplayNames[0].Value
		}
		index[ch.ID] = len(out)
		out = append(out, s)
	}

	for _, p := range tv.Programmes {
		i, ok := index[p.Channel]
		if !ok {
			i = len(out)
			index[p.Channel] = i
			out = append(out, ChannelSummary{ID: p.Channel})
		}
		s := &out[i]
		s.Programmes++
		// Timestamps of one zone compare lexicographically; see TimestampFormat.
		if s.FirstStart == "" || p.Start < s.FirstStart {
			s.FirstStart = p.Start
		}
		if p.Stop > s.LastStop {
			s.LastStop = p.Stop
		}
	}
	return out
}
