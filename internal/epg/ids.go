// SPDX-License-Identifier: MIT

package epg

import "strings"

// DefaultChannelPrefix is the provider namespace stripped from channel ids.
const DefaultChannelPrefix = "jio-"

// IDMap maps original channel ids to their normalized form.
type IDMap map[string]string

// Rewrite returns the normalized id for ref, or ref itself when it is unknown.
func (m IDMap) Rewrite(ref string) string {
	if id, ok := m[ref]; ok {
		return id
	}
	return ref
}

// StripPrefix removes prefix from id when present. An empty prefix disables stripping.
func StripPrefix(id, prefix string) string {
	if prefix == "" {
		return id
	}
	return strings.TrimPrefix(id, prefix)
}

// NormalizeChannels returns rebuilt channels with prefix stripped from their ids
// and icon/url children removed, along with the old→new id mapping and any ids
// that occur more than once after rewriting.
func NormalizeChannels(channels []Channel, prefix string) ([]Channel, IDMap, []string) {
	out := make([]Channel, 0, len(channels))
	ids := make(IDMap, len(channels))
	seen := make(map[string]struct{}, len(channels))
	var collisions []string

	for _, ch := range channels {
		newID := StripPrefix(ch.ID, prefix)
		ids[ch.ID] = newID
		if _, dup := seen[newID]; dup {
			collisions = append(collisions, newID)
		}
		seen[newID] = struct{}{}

		rebuilt := Channel{
			ID:           newID,
			DisplayNames: tidyTexts(ch.DisplayNames),
		}
		if len(ch.Extra) > 0 {
			rebuilt.Extra = make([]Node, len(ch.Extra))
			for i, n := range ch.Extra {
				rebuilt.Extra[i] = n.tidy()
			}
		}
		out = append(out, rebuilt)
	}
	return out, ids, collisions
}
