// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRunID = "run_id"
	FieldJob   = "job"
	FieldKind  = "kind"

	// Process / pipeline fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Guide fields
	FieldChannel    = "channel"
	FieldChannels   = "channels"
	FieldProgrammes = "programmes"
	FieldStart      = "start"
	FieldStop       = "stop"

	// Path / URL fields
	FieldPath   = "path"
	FieldSource = "source"
	FieldOutput = "output"
)
