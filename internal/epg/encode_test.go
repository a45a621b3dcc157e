// SPDX-License-Identifier: MIT

package epg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanedSample(t *testing.T) *TV {
	t.Helper()
	out, _ := Clean(mustDecode(t, jioSample), defaultCleanOptions())
	return Merge(DefaultMeta(frozenNow, IST), out)
}

func TestEncode_Layout(t *testing.T) {
	data, err := Marshal(cleanedSample(t))
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, Header), "document must start with the xml declaration")
	assert.True(t, strings.HasSuffix(s, "</tv>\n"))
	assert.Contains(t, s, "\n  <channel id=\"101\">\n    <display-name lang=\"en\">News 101</display-name>\n  </channel>\n")
	assert.Contains(t, s, `<tv date="20240115120000 +0530" generator-info-name="EPG Generator (Senvora)" generator-info-url="https://github.com/senvora/epg.git">`)

	for i, line := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
		assert.NotEmpty(t, strings.TrimSpace(line), "line %d is blank", i+1)
	}
}

func TestEncode_NoBlankLinesFromMultilineText(t *testing.T) {
	tv := &TV{
		Channels: []Channel{{
			ID:    "1",
			Extra: []Node{Node{Text: "\n\n"}.tidy()},
		}},
		Programmes: []Programme{{
			Channel: "1",
			Start:   "20240115100000 +0530",
			Stop:    "20240115110000 +0530",
			Descs:   []Text{{Value: "line one\n\nline three"}},
		}},
	}
	tv.Channels[0].Extra[0].XMLName.Local = "lcn"

	data, err := Marshal(tv)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n\n")
}

func TestEncode_RoundTrip(t *testing.T) {
	want := cleanedSample(t)
	data, err := Marshal(want)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	diff := cmp.Diff(want, got,
		cmpopts.IgnoreFields(TV{}, "XMLName"),
		cmpopts.EquateEmpty(),
	)
	assert.Empty(t, diff)
}

func TestEncode_Deterministic(t *testing.T) {
	first, err := Marshal(cleanedSample(t))
	require.NoError(t, err)
	second, err := Marshal(cleanedSample(t))
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second))
}
