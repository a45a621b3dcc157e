// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senvora/epg/internal/epg"
)

func clearSettingsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvOutputDir, EnvTimezoneOffset, EnvFetchTimeout, EnvPreferredLang,
		EnvMetricsTextfile, EnvOTLPEndpoint, EnvOTLPExporter,
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearSettingsEnv(t)

	s, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputDir, s.OutputDir)
	assert.Equal(t, epg.IST, s.Location)
	assert.Equal(t, DefaultFetchTimeout, s.FetchTimeout)
	assert.Equal(t, epg.DefaultPreferredLang, s.PreferredLang)
	assert.Empty(t, s.MetricsTextfile)
	assert.Equal(t, "grpc", s.OTLPExporter)
	assert.False(t, s.TracingEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv(EnvOutputDir, "/srv/guide")
	t.Setenv(EnvTimezoneOffset, "-0300")
	t.Setenv(EnvFetchTimeout, "15s")
	t.Setenv(EnvOTLPEndpoint, "localhost:4318")
	t.Setenv(EnvOTLPExporter, "HTTP")

	s, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/srv/guide", s.OutputDir)
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, s.Location).Zone()
	assert.Equal(t, -3*3600, offset)
	assert.Equal(t, 15*time.Second, s.FetchTimeout)
	assert.Equal(t, "http", s.OTLPExporter)
	assert.True(t, s.TracingEnabled())
}

func TestFromEnv_InvalidOffset(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv(EnvTimezoneOffset, "IST")

	_, err := FromEnv()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSetting))
}

func TestFromEnv_InvalidExporter(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv(EnvOTLPExporter, "zipkin")

	_, err := FromEnv()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSetting))
}
