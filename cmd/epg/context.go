// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/senvora/epg/internal/config"
	"github.com/senvora/epg/internal/jobs"
	xglog "github.com/senvora/epg/internal/log"
	"github.com/senvora/epg/internal/metrics"
	"github.com/senvora/epg/internal/platform/httpx"
	"github.com/senvora/epg/internal/source"
	"github.com/senvora/epg/internal/telemetry"
	"github.com/senvora/epg/internal/version"
)

type commandContext struct {
	outputDirFlag *string

	settingsOnce sync.Once
	settings     config.Settings
	settingsErr  error
}

func newCommandContext(outputDirFlag *string) *commandContext {
	return &commandContext{outputDirFlag: outputDirFlag}
}

func (c *commandContext) ensureSettings() (config.Settings, error) {
	c.settingsOnce.Do(func() {
		s, err := config.FromEnv()
		if err != nil {
			c.settingsErr = err
			return
		}
		if c.outputDirFlag != nil && strings.TrimSpace(*c.outputDirFlag) != "" {
			s.OutputDir = strings.TrimSpace(*c.outputDirFlag)
		}
		c.settings = s
	})
	return c.settings, c.settingsErr
}

func (c *commandContext) loader(s config.Settings) *source.Loader {
	return source.NewLoader(httpx.NewClient(s.FetchTimeout))
}

// runJobs runs list with tracing and metrics configured from the settings.
func (c *commandContext) runJobs(cmd *cobra.Command, list []jobs.Job) error {
	ctx := cmd.Context()
	s, err := c.ensureSettings()
	if err != nil {
		return err
	}
	logger := xglog.WithComponentFromContext(ctx, "cli")

	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        s.TracingEnabled(),
		ServiceName:    "epg",
		ServiceVersion: version.Version,
		ExporterType:   s.OTLPExporter,
		Endpoint:       s.OTLPEndpoint,
		SamplingRate:   1.0,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := provider.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn().Err(err).Msg("failed to flush traces")
		}
	}()

	rec := metrics.NewRecorder()
	env := jobs.Env{
		Now:           time.Now,
		Location:      s.Location,
		PreferredLang: s.PreferredLang,
		Fetcher:       c.loader(s),
		Metrics:       rec,
	}

	_, runErr := jobs.RunAll(ctx, env, list)
	if err := rec.WriteTextfile(s.MetricsTextfile); err != nil {
		logger.Warn().Err(err).Str(xglog.FieldPath, s.MetricsTextfile).Msg("failed to write metrics")
	}
	return runErr
}
