// SPDX-License-Identifier: MIT

package jobs

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/senvora/epg/internal/config"
	"github.com/senvora/epg/internal/epg"
)

// Built-in inputs and artifact names.
const (
	DefaultManifest      = "scripts/personal/sites.txt"
	DefaultSourceDir     = "tmp_xml"
	DefaultTempestSource = "temp_epg/tempest_config/epg/epg.xml"

	downloadArtifact = "jiotv.xml.gz"
	mergeArtifact    = "guide.xml.gz"
	tempestArtifact  = "epg.xml.gz"
)

// Default returns the built-in job for kind with its artifact under outputDir.
func Default(kind Kind, outputDir string) (Job, error) {
	j := Job{
		Name:          string(kind),
		Kind:          kind,
		ChannelPrefix: epg.DefaultChannelPrefix,
	}
	switch kind {
	case KindDownload:
		j.SourceEnv = config.EnvSourceURL
		j.Output = filepath.Join(outputDir, downloadArtifact)
		j.Days = 2
		j.Sort = epg.SortNumeric
	case KindMerge:
		j.Manifest = DefaultManifest
		j.SourceDir = DefaultSourceDir
		j.Output = filepath.Join(outputDir, mergeArtifact)
		j.Days = 3
		j.Sort = epg.SortAlphanumeric
	case KindTempest:
		j.Source = DefaultTempestSource
		j.Output = filepath.Join(outputDir, tempestArtifact)
		j.Days = 2
		j.Sort = epg.SortNumeric
	default:
		return Job{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return j, nil
}

// FromSpec overlays a job file entry on the defaults of its kind.
func FromSpec(spec config.JobSpec, outputDir string) (Job, error) {
	j, err := Default(Kind(spec.Kind), outputDir)
	if err != nil {
		return Job{}, err
	}
	j.Name = spec.Name
	if spec.Source != "" {
		j.Source = spec.Source
		j.SourceEnv = ""
	}
	if spec.SourceEnv != "" {
		j.SourceEnv = spec.SourceEnv
		j.Source = ""
	}
	if spec.Manifest != "" {
		j.Manifest = spec.Manifest
	}
	if spec.SourceDir != "" {
		j.SourceDir = spec.SourceDir
	}
	if spec.Output != "" {
		j.Output = spec.Output
	}
	if spec.Days > 0 {
		j.Days = spec.Days
	}
	if spec.ChannelPrefix != nil {
		j.ChannelPrefix = *spec.ChannelPrefix
	}
	if spec.Sort != "" {
		mode, err := epg.ParseSortMode(spec.Sort)
		if err != nil {
			return Job{}, fmt.Errorf("%w: %s: %v", config.ErrInvalidJob, spec.Name, err)
		}
		j.Sort = mode
	}
	return j, nil
}

// FromSpecs builds every job of a job file and rejects two jobs resolving to
// the same artifact, including ones that only differ by relying on defaults.
func FromSpecs(specs []config.JobSpec, outputDir string) ([]Job, error) {
	list := make([]Job, 0, len(specs))
	outputs := make(map[string]string, len(specs))
	var errs []error
	for _, spec := range specs {
		j, err := FromSpec(spec, outputDir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out := filepath.Clean(j.Output)
		if other, dup := outputs[out]; dup {
			errs = append(errs, fmt.Errorf("%w: %s: output %q already written by %q", config.ErrDuplicateJob, j.Name, j.Output, other))
			continue
		}
		outputs[out] = j.Name
		list = append(list, j)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return list, nil
}

// ResolveSource returns the reference a download or tempest job reads. A
// missing environment variable is reported before any I/O happens.
func (j Job) ResolveSource() (string, error) {
	if j.Source != "" {
		return j.Source, nil
	}
	if j.SourceEnv == "" {
		return "", fmt.Errorf("%w: %s: no source configured", config.ErrInvalidJob, j.Name)
	}
	return config.RequireString(j.SourceEnv)
}
