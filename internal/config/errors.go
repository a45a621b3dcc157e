// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrMissingEnv is returned when a required environment variable is unset or empty.
	ErrMissingEnv = errors.New("required environment variable not set")

	// ErrInvalidSetting classifies environment values that fail to parse.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrUnknownConfigField classifies strict job file parse failures caused by unknown keys.
	// Use errors.Is(err, ErrUnknownConfigField) instead of string matching.
	ErrUnknownConfigField = errors.New("unknown config field")

	// ErrUnsupportedFormat is returned for job files that are neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("unsupported job file format")

	// ErrNoJobs is returned for a job file without jobs.
	ErrNoJobs = errors.New("job file defines no jobs")

	// ErrInvalidJob classifies job entries that fail validation.
	ErrInvalidJob = errors.New("invalid job")

	// ErrDuplicateJob is returned when two jobs share a name or an output.
	ErrDuplicateJob = errors.New("duplicate job")
)
