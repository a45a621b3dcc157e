// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/senvora/epg/internal/epg"
)

// Job kinds understood by the job runner.
const (
	KindDownload = "download"
	KindMerge    = "merge"
	KindTempest  = "tempest"
)

// JobSpec is one entry of a job file. Zero values are filled from the
// defaults of the job's kind.
type JobSpec struct {
	Name      string `yaml:"name" toml:"name"`
	Kind      string `yaml:"kind" toml:"kind"`
	Source    string `yaml:"source" toml:"source"`
	SourceEnv string `yaml:"source_env" toml:"source_env"`
	Manifest  string `yaml:"manifest" toml:"manifest"`
	SourceDir string `yaml:"source_dir" toml:"source_dir"`
	Output    string `yaml:"output" toml:"output"`
	Days      int    `yaml:"days" toml:"days"`
	// ChannelPrefix nil keeps the default; an empty string disables stripping.
	ChannelPrefix *string `yaml:"channel_prefix" toml:"channel_prefix"`
	Sort          string  `yaml:"sort" toml:"sort"`
}

// JobFile lists jobs run in order by "epg run".
type JobFile struct {
	Jobs []JobSpec `yaml:"jobs" toml:"jobs"`
}

// LoadJobFile reads, decodes and validates path. The format follows the
// extension: .yaml/.yml or .toml.
func LoadJobFile(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	f, err := ParseJobFile(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseJobFile decodes data strictly and validates the result. format is a
// file extension with or without the leading dot.
func ParseJobFile(data []byte, format string) (*JobFile, error) {
	var (
		f   JobFile
		err error
	)
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yaml", "yml":
		err = decodeYAML(data, &f)
	case "toml":
		err = decodeTOML(data, &f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func decodeYAML(data []byte, f *JobFile) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields

	if err := dec.Decode(f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("strict job file parse error: %w: %v", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict job file parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("job file contains multiple documents or trailing content")
	}
	return nil
}

func decodeTOML(data []byte, f *JobFile) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("strict job file parse error: %w: %s", ErrUnknownConfigField, strict.String())
		}
		return fmt.Errorf("strict job file parse error: %w", err)
	}
	return nil
}

// Validate checks every job and cross-job uniqueness of names and outputs.
func (f *JobFile) Validate() error {
	if len(f.Jobs) == 0 {
		return ErrNoJobs
	}

	names := make(map[string]struct{}, len(f.Jobs))
	outputs := make(map[string]string, len(f.Jobs))
	var errs []error
	for i, j := range f.Jobs {
		if err := j.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("jobs[%d]: %w", i, err))
			continue
		}
		if _, dup := names[j.Name]; dup {
			errs = append(errs, fmt.Errorf("jobs[%d]: %w: name %q", i, ErrDuplicateJob, j.Name))
		}
		names[j.Name] = struct{}{}

		if j.Output == "" {
			continue
		}
		out := filepath.Clean(j.Output)
		if other, dup := outputs[out]; dup {
			errs = append(errs, fmt.Errorf("jobs[%d]: %w: output %q already written by %q", i, ErrDuplicateJob, j.Output, other))
		}
		outputs[out] = j.Name
	}
	return errors.Join(errs...)
}

// Validate checks a single job entry.
func (j JobSpec) Validate() error {
	if strings.TrimSpace(j.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidJob)
	}
	switch j.Kind {
	case KindDownload, KindMerge, KindTempest:
	default:
		return fmt.Errorf("%w: %s: unknown kind %q (supported: %s, %s, %s)",
			ErrInvalidJob, j.Name, j.Kind, KindDownload, KindMerge, KindTempest)
	}
	if j.Days < 0 {
		return fmt.Errorf("%w: %s: days must not be negative", ErrInvalidJob, j.Name)
	}
	if _, err := epg.ParseSortMode(j.Sort); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidJob, j.Name, err)
	}
	if j.Kind == KindDownload && j.Source != "" && j.SourceEnv != "" {
		return fmt.Errorf("%w: %s: source and source_env are mutually exclusive", ErrInvalidJob, j.Name)
	}
	if j.Kind != KindMerge && (j.Manifest != "" || j.SourceDir != "") {
		return fmt.Errorf("%w: %s: manifest and source_dir only apply to merge jobs", ErrInvalidJob, j.Name)
	}
	return nil
}
