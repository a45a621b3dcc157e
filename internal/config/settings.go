// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/senvora/epg/internal/epg"
)

// Environment variables read by FromEnv.
const (
	EnvSourceURL       = "JIO_EPG_URL"
	EnvOutputDir       = "EPG_OUTPUT_DIR"
	EnvTimezoneOffset  = "EPG_TIMEZONE_OFFSET"
	EnvFetchTimeout    = "EPG_FETCH_TIMEOUT"
	EnvPreferredLang   = "EPG_PREFERRED_LANG"
	EnvMetricsTextfile = "EPG_METRICS_TEXTFILE"
	EnvOTLPEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvOTLPExporter    = "EPG_OTEL_EXPORTER"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultOutputDir      = "guide"
	DefaultTimezoneOffset = "+0530"
	DefaultFetchTimeout   = 60 * time.Second
	DefaultOTLPExporter   = "grpc"
)

// Settings are the process-wide knobs shared by every job.
type Settings struct {
	OutputDir       string
	Location        *time.Location
	FetchTimeout    time.Duration
	PreferredLang   string
	MetricsTextfile string
	OTLPEndpoint    string
	OTLPExporter    string
}

// TracingEnabled reports whether a collector endpoint is configured.
func (s Settings) TracingEnabled() bool {
	return s.OTLPEndpoint != ""
}

// FromEnv reads Settings from the environment. Only a malformed timezone
// offset or exporter name is an error; everything else falls back to defaults.
func FromEnv() (Settings, error) {
	offset := ParseString(EnvTimezoneOffset, DefaultTimezoneOffset)
	loc, err := epg.ParseZoneOffset(strings.TrimSpace(offset))
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", ErrInvalidSetting, EnvTimezoneOffset, err)
	}
	if offset == DefaultTimezoneOffset {
		loc = epg.IST
	}

	exporter := strings.ToLower(ParseString(EnvOTLPExporter, DefaultOTLPExporter))
	if exporter != "grpc" && exporter != "http" {
		return Settings{}, fmt.Errorf("%w: %s: %q (supported: grpc, http)", ErrInvalidSetting, EnvOTLPExporter, exporter)
	}

	return Settings{
		OutputDir:       ParseString(EnvOutputDir, DefaultOutputDir),
		Location:        loc,
		FetchTimeout:    ParseDuration(EnvFetchTimeout, DefaultFetchTimeout),
		PreferredLang:   ParseString(EnvPreferredLang, epg.DefaultPreferredLang),
		MetricsTextfile: ParseString(EnvMetricsTextfile, ""),
		OTLPEndpoint:    ParseString(EnvOTLPEndpoint, ""),
		OTLPExporter:    exporter,
	}, nil
}
