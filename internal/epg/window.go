// SPDX-License-Identifier: MIT

package epg

import "time"

// Window is the half-open retention span [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow anchors a window of days consecutive days at the start of the
// current day in loc.
func NewWindow(now time.Time, loc *time.Location, days int) Window {
	if loc == nil {
		loc = IST
	}
	if days < 1 {
		days = 1
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 0, days)}
}

// Overlaps reports whether [start, stop) shares at least one instant with the window.
// A programme that only touches a boundary does not overlap.
func (w Window) Overlaps(start, stop time.Time) bool {
	return stop.After(w.Start) && start.Before(w.End)
}
