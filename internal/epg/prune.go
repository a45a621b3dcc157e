// SPDX-License-Identifier: MIT

package epg

import (
	"strings"

	unorm "golang.org/x/text/unicode/norm"
)

// DefaultPreferredLang is the language kept when a programme carries several.
const DefaultPreferredLang = "en"

// PruneTexts reduces one kind of text (all titles, all descs, ...) to the set
// that survives cleaning:
//
//   - every non-empty entry tagged with preferredLang, if there is at least one;
//   - otherwise the first non-empty entry, whatever its language;
//   - otherwise nothing.
//
// Kept values are trimmed and NFC normalized. The input slice is not modified.
func PruneTexts(texts []Text, preferredLang string) []Text {
	if preferredLang == "" {
		preferredLang = DefaultPreferredLang
	}

	var preferred []Text
	fallback := -1
	for i, t := range texts {
		if strings.TrimSpace(t.Value) == "" {
			continue
		}
		if fallback < 0 {
			fallback = i
		}
		if t.Lang == preferredLang {
			preferred = append(preferred, tidyText(t))
		}
	}

	switch {
	case len(preferred) > 0:
		return preferred
	case fallback >= 0:
		return []Text{tidyText(texts[fallback])}
	default:
		return nil
	}
}

// tidyTexts trims and normalizes every entry, dropping empty ones.
func tidyTexts(texts []Text) []Text {
	if len(texts) == 0 {
		return nil
	}
	out := make([]Text, 0, len(texts))
	for _, t := range texts {
		t = tidyText(t)
		if t.Value == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

func tidyText(t Text) Text {
	// Normalize to NFC so composed and decomposed input render identically.
	t.Value = strings.TrimSpace(unorm.NFC.String(t.Value))
	return t
}
