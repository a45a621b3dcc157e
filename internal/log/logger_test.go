// SPDX-License-Identifier: MIT
package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutputCarriesService(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Format: "json", Output: &buf, Service: "epg-test"})

	l.Debug().Str(FieldJob, "download").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "epg-test", entry["service"])
	assert.Equal(t, "download", entry[FieldJob])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "hello", entry["message"])
}

func TestNew_LevelFiltersLowerEvents(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Format: "json", Output: &buf})

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Format: "console", Output: &buf})

	l.Info().Msg("plain text")
	assert.Contains(t, buf.String(), "plain text")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "console output must not be JSON")
}

func TestContextRoundTrip(t *testing.T) {
	ctx := ContextWithRunID(context.Background(), "run-1")
	ctx = ContextWithJob(ctx, "merge")

	assert.Equal(t, "run-1", RunIDFromContext(ctx))
	assert.Equal(t, "merge", JobFromContext(ctx))
	assert.Empty(t, RunIDFromContext(context.Background()))
	assert.Empty(t, JobFromContext(nil)) //nolint:staticcheck
}

func TestWithContext_AddsCorrelationFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Format: "json", Output: &buf})

	ctx := ContextWithJob(ContextWithRunID(context.Background(), "abc"), "tempest")
	l := WithContext(ctx, base)
	l.Info().Msg("x")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry[FieldRunID])
	assert.Equal(t, "tempest", entry[FieldJob])
}

func TestWithContext_NoFieldsReturnsSameLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Format: "json", Output: &buf})

	l := WithContext(context.Background(), base)
	l.Info().Msg("x")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasRun := entry[FieldRunID]
	assert.False(t, hasRun)
}
