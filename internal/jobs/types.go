// SPDX-License-Identifier: MIT

package jobs

import (
	"errors"
	"time"

	"github.com/senvora/epg/internal/artifact"
	"github.com/senvora/epg/internal/config"
	"github.com/senvora/epg/internal/epg"
	"github.com/senvora/epg/internal/metrics"
	"github.com/senvora/epg/internal/source"
)

// Kind selects how a job gathers its input.
type Kind string

const (
	// KindDownload fetches one guide, usually from the URL in JIO_EPG_URL.
	KindDownload Kind = config.KindDownload
	// KindMerge combines the grabbed documents listed in a manifest.
	KindMerge Kind = config.KindMerge
	// KindTempest cleans one local guide file.
	KindTempest Kind = config.KindTempest
)

var (
	// ErrNoSources is returned when a merge job has no usable document.
	ErrNoSources = errors.New("no usable guide sources")
	// ErrUnknownKind is returned for a job whose kind is not supported.
	ErrUnknownKind = errors.New("unknown job kind")
)

// Job describes one guide build: where the input comes from, how it is
// cleaned and where the artifact goes.
type Job struct {
	Name string
	Kind Kind

	// Source is a URL or path for download and tempest jobs.
	Source string
	// SourceEnv names the variable holding Source when Source is empty.
	SourceEnv string

	// Manifest and SourceDir feed merge jobs.
	Manifest  string
	SourceDir string

	Output        string
	Days          int
	ChannelPrefix string
	Sort          epg.SortMode
}

// Env carries everything a run depends on besides the job itself.
type Env struct {
	Now           func() time.Time
	Location      *time.Location
	PreferredLang string
	Fetcher       source.Fetcher
	Metrics       *metrics.Recorder
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Env) location() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return epg.IST
}

// Result reports what a successful run wrote.
type Result struct {
	Job        string
	Kind       Kind
	Artifact   artifact.Info
	Channels   int
	Programmes int
	Stats      epg.CleanStats
	Sources    int
	Skipped    []string
	Duration   time.Duration
}
