// SPDX-License-Identifier: MIT

package epg

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"utc offset", "20240115203000 +0000", time.Date(2024, 1, 15, 20, 30, 0, 0, time.UTC)},
		{"no offset defaults to utc", "20240115203000", time.Date(2024, 1, 15, 20, 30, 0, 0, time.UTC)},
		{"positive offset", "20240115203000 +0530", time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC)},
		{"negative offset", "20240115203000 -0500", time.Date(2024, 1, 16, 1, 30, 0, 0, time.UTC)},
		{"trailing spaces", "20240115203000   ", time.Date(2024, 1, 15, 20, 30, 0, 0, time.UTC)},
		{"leap day", "20240229000000 +0000", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseTimestamp_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"13 digits", "2024011520300"},
		{"letter in digits", "2024011520300x"},
		{"month out of range", "20241315203000"},
		{"day out of range", "20230229120000"},
		{"hour out of range", "20240115243000"},
		{"offset without sign", "20240115203000 0530"},
		{"offset with colon", "20240115203000 +05:30"},
		{"offset hour out of range", "20240115203000 +2400"},
		{"offset minute out of range", "20240115203000 +0560"},
		{"junk after offset", "20240115203000 +0530 IST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimestamp(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTimestamp), "error %v must wrap ErrInvalidTimestamp", err)
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 1, 15, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, "20240116020000 +0530", FormatTimestamp(ts, IST))
	assert.Equal(t, "20240115203000 +0000", FormatTimestamp(ts, time.UTC))
	assert.Equal(t, "20240116020000 +0530", FormatTimestamp(ts, nil), "nil zone renders in IST")
}

func TestTimestampRoundTripPreservesInstant(t *testing.T) {
	inputs := []string{
		"20240115203000",
		"20240115203000 +0000",
		"20240115203000 +0530",
		"20241231235959 -1130",
		"20000101000000 +1345",
	}
	for _, in := range inputs {
		parsed, err := ParseTimestamp(in)
		require.NoError(t, err, in)

		rendered := FormatTimestamp(parsed, IST)
		again, err := ParseTimestamp(rendered)
		require.NoError(t, err, rendered)

		assert.True(t, parsed.Equal(again), "%s -> %s changed the instant", in, rendered)
	}
}

func TestFormatTimestamp_LexicographicIsChronological(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	times := make([]time.Time, 200)
	for i := range times {
		times[i] = base.Add(time.Duration(rng.Int63n(int64(400 * 24 * time.Hour)))).Truncate(time.Second)
	}

	rendered := make([]string, len(times))
	for i, ts := range times {
		rendered[i] = FormatTimestamp(ts, IST)
	}

	slices.SortFunc(times, func(a, b time.Time) int { return a.Compare(b) })
	slices.Sort(rendered)

	for i := range times {
		assert.Equal(t, FormatTimestamp(times[i], IST), rendered[i])
	}
}

func TestParseZoneOffset(t *testing.T) {
	loc, err := ParseZoneOffset("+0530")
	require.NoError(t, err)
	_, off := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 5*3600+30*60, off)

	loc, err = ParseZoneOffset("-0000")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = ParseZoneOffset("IST")
	assert.Error(t, err)
}
