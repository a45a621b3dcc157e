// SPDX-License-Identifier: MIT

package source

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying load failures.
var (
	ErrFetch      = errors.New("source fetch failed")
	ErrHTTPStatus = errors.New("source returned non-success status")
	ErrRead       = errors.New("source read failed")
	ErrTooLarge   = errors.New("source exceeds size limit")
)

// Error carries the reference and stage of a failed load. It matches both its
// sentinel and the underlying cause with errors.Is.
type Error struct {
	Sentinel error
	Op       string
	Ref      string
	Status   int
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s", e.Op, Redact(e.Ref))
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Sentinel != nil {
		errs = append(errs, e.Sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
