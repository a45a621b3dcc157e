// SPDX-License-Identifier: MIT

package epg

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortMode selects how channels are ordered.
type SortMode string

const (
	// SortNumeric orders by the first run of digits in the id; ids without digits go last.
	SortNumeric SortMode = "numeric"
	// SortAlphanumeric orders by the leading letters (case folded), then the digits
	// that immediately follow them; numberless ids go last within their letter group.
	SortAlphanumeric SortMode = "alphanumeric"
)

// UnknownChannelRank is the minimum rank given to programmes whose channel is
// not in the channel list.
const UnknownChannelRank = 9999

// ParseSortMode validates a sort mode name. Empty selects SortNumeric.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortNumeric:
		return SortNumeric, nil
	case SortAlphanumeric:
		return SortAlphanumeric, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (supported: %s, %s)", s, SortNumeric, SortAlphanumeric)
	}
}

// SortChannels returns a stably sorted copy of channels.
func SortChannels(channels []Channel, mode SortMode) []Channel {
	out := slices.Clone(channels)
	switch mode {
	case SortAlphanumeric:
		slices.SortStableFunc(out, func(a, b Channel) int {
			return compareAlphanumeric(a.ID, b.ID)
		})
	default:
		slices.SortStableFunc(out, func(a, b Channel) int {
			return compareNumeric(a.ID, b.ID)
		})
	}
	return out
}

// ChannelRanks maps channel ids to their position. The first occurrence wins.
func ChannelRanks(channels []Channel) map[string]int {
	ranks := make(map[string]int, len(channels))
	for i, ch := range channels {
		if _, ok := ranks[ch.ID]; !ok {
			ranks[ch.ID] = i
		}
	}
	return ranks
}

// SortProgrammes returns a stably sorted copy of programmes ordered by the rank
// of their channel in channels, then by start timestamp string.
func SortProgrammes(programmes []Programme, channels []Channel) []Programme {
	ranks := ChannelRanks(channels)
	unknown := max(UnknownChannelRank, len(channels))
	rank := func(p Programme) int {
		if r, ok := ranks[p.Channel]; ok {
			return r
		}
		return unknown
	}

	out := slices.Clone(programmes)
	slices.SortStableFunc(out, func(a, b Programme) int {
		if c := cmp.Compare(rank(a), rank(b)); c != 0 {
			return c
		}
		return strings.Compare(a.Start, b.Start)
	})
	return out
}

func compareNumeric(a, b string) int {
	da, oka := firstDigitRun(a)
	db, okb := firstDigitRun(b)
	return compareOptionalDigits(da, oka, db, okb)
}

func compareAlphanumeric(a, b string) int {
	pa, da, oka := alphaNumParts(a)
	pb, db, okb := alphaNumParts(b)
	if c := strings.Compare(pa, pb); c != 0 {
		return c
	}
	return compareOptionalDigits(da, oka, db, okb)
}

// compareOptionalDigits orders digit runs by integer value; a missing run sorts last.
func compareOptionalDigits(a string, oka bool, b string, okb bool) int {
	switch {
	case !oka && !okb:
		return 0
	case !oka:
		return 1
	case !okb:
		return -1
	}
	return compareDigits(a, b)
}

// compareDigits compares two ASCII digit strings by value without parsing, so
// arbitrarily long runs cannot overflow.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func firstDigitRun(s string) (string, bool) {
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return "", false
	}
	end := start
	for end < len(s) && isDigit(rune(s[end])) {
		end++
	}
	return s[start:end], true
}

// alphaNumParts splits s into a leading ASCII letter run (lower cased) and the
// digit run directly after it.
func alphaNumParts(s string) (prefix, digits string, ok bool) {
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	prefix = strings.ToLower(s[:i])
	j := i
	for j < len(s) && isDigit(rune(s[j])) {
		j++
	}
	if j == i {
		return prefix, "", false
	}
	return prefix, s[i:j], true
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
