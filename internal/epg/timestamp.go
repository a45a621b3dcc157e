// SPDX-License-Identifier: MIT

package epg

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// TimestampFormat is the XMLTV rendering: YYYYMMDDHHMMSS ±HHMM.
	//
	// Every rendered value has the same width and is zero padded, so within one
	// output zone lexicographic order equals chronological order. SortProgrammes
	// relies on this and compares the raw strings.
	TimestampFormat = "20060102150405 -0700"

	wallClockLayout = "20060102150405"
	wallClockDigits = len(wallClockLayout)
)

// ErrInvalidTimestamp is returned for values ParseTimestamp cannot read.
var ErrInvalidTimestamp = errors.New("invalid xmltv timestamp")

// IST is the fixed UTC+05:30 zone guides are rendered in by default.
var IST = time.FixedZone("IST", 5*3600+30*60)

// ParseTimestamp reads an XMLTV timestamp: 14 digits of wall clock followed by
// an optional " +HHMM" or " -HHMM" offset. Without an offset the wall clock is UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if len(s) < wallClockDigits {
		return time.Time{}, fmt.Errorf("%w: %q: need %d digits", ErrInvalidTimestamp, s, wallClockDigits)
	}
	for i := 0; i < wallClockDigits; i++ {
		if s[i] < '0' || s[i] > '9' {
			return time.Time{}, fmt.Errorf("%w: %q: non-digit at position %d", ErrInvalidTimestamp, s, i)
		}
	}

	loc := time.UTC
	if rest := strings.TrimSpace(s[wallClockDigits:]); rest != "" {
		zone, err := ParseZoneOffset(rest)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimestamp, s, err)
		}
		loc = zone
	}

	t, err := time.ParseInLocation(wallClockLayout, s[:wallClockDigits], loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimestamp, s, err)
	}
	return t, nil
}

// ParseZoneOffset turns "+HHMM" / "-HHMM" into a fixed zone.
func ParseZoneOffset(s string) (*time.Location, error) {
	if len(s) != 5 || (s[0] != '+' && s[0] != '-') {
		return nil, fmt.Errorf("offset %q is not ±HHMM", s)
	}
	for i := 1; i < 5; i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, fmt.Errorf("offset %q is not ±HHMM", s)
		}
	}
	hh := int(s[1]-'0')*10 + int(s[2]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	if hh > 23 || mm > 59 {
		return nil, fmt.Errorf("offset %q out of range", s)
	}
	secs := hh*3600 + mm*60
	if s[0] == '-' {
		secs = -secs
	}
	if secs == 0 {
		return time.UTC, nil
	}
	return time.FixedZone("", secs), nil
}

// FormatTimestamp renders t in loc using TimestampFormat.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = IST
	}
	return t.In(loc).Format(TimestampFormat)
}
