// SPDX-License-Identifier: MIT

// Package jobs runs the guide builds: gather input, clean every document,
// merge, and write one deterministic artifact.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/senvora/epg/internal/artifact"
	"github.com/senvora/epg/internal/epg"
	xglog "github.com/senvora/epg/internal/log"
	"github.com/senvora/epg/internal/source"
	"github.com/senvora/epg/internal/telemetry"
)

const tracerName = "github.com/senvora/epg/internal/jobs"

// Run executes one job start to finish. Nothing is written unless at least
// one input document was loaded and cleaned.
func Run(ctx context.Context, env Env, job Job) (res *Result, err error) {
	started := time.Now()
	ctx = xglog.ContextWithJob(ctx, job.Name)
	logger := xglog.WithComponentFromContext(ctx, "jobs").With().
		Str(xglog.FieldKind, string(job.Kind)).
		Logger()

	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "job "+job.Name,
		trace.WithAttributes(telemetry.JobAttributes(job.Name, string(job.Kind), job.Days)...))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if env.Metrics != nil {
			env.Metrics.Finish(job.Name, time.Since(started), err == nil, env.now())
		}
	}()

	refs, err := inputs(job)
	if err != nil {
		return nil, err
	}
	if job.Output == "" {
		return nil, fmt.Errorf("%s: no output configured", job.Name)
	}

	logger.Info().
		Str(xglog.FieldEvent, "job.start").
		Int("sources", len(refs)).
		Int("days", job.Days).
		Msg("starting guide build")

	release, err := artifact.Lock(job.Output)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := release(); rerr != nil {
			logger.Warn().Err(rerr).Str(xglog.FieldOutput, job.Output).Msg("failed to release output lock")
		}
	}()

	now := env.now()
	loc := env.location()
	opts := epg.CleanOptions{
		Window:        epg.NewWindow(now, loc, job.Days),
		Location:      loc,
		PreferredLang: env.PreferredLang,
		ChannelPrefix: job.ChannelPrefix,
		SortMode:      job.Sort,
	}

	res = &Result{Job: job.Name, Kind: job.Kind}
	docs := make([]*epg.TV, 0, len(refs))
	for _, ref := range refs {
		doc, stats, lerr := loadAndClean(ctx, env, ref, opts)
		if lerr != nil {
			if job.Kind != KindMerge {
				return nil, lerr
			}
			res.Skipped = append(res.Skipped, ref)
			if errors.Is(lerr, os.ErrNotExist) {
				logger.Warn().Str(xglog.FieldSource, source.Redact(ref)).Msg("merge source missing, skipping")
			} else {
				logger.Warn().Err(lerr).Str(xglog.FieldSource, source.Redact(ref)).Msg("merge source unusable, skipping")
			}
			continue
		}
		logStats(logger, ref, stats)
		res.Stats = addStats(res.Stats, stats)
		docs = append(docs, doc)
	}
	res.Sources = len(docs)
	if env.Metrics != nil {
		env.Metrics.SkippedSources(job.Name, len(res.Skipped))
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%s: %w (%d skipped)", job.Name, ErrNoSources, len(res.Skipped))
	}

	out := epg.Merge(epg.DefaultMeta(now, loc), docs...)
	raw, err := epg.Marshal(out)
	if err != nil {
		return nil, err
	}
	info, err := artifact.WriteGzip(job.Output, raw)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", job.Output, err)
	}

	res.Artifact = info
	res.Channels = len(out.Channels)
	res.Programmes = len(out.Programmes)
	res.Duration = time.Since(started)

	span.SetAttributes(telemetry.ResultAttributes(res.Channels, res.Stats.ProgrammesIn, res.Programmes)...)
	if env.Metrics != nil {
		env.Metrics.Channels(job.Name, res.Channels, len(res.Stats.Collisions))
		env.Metrics.Programmes(job.Name, res.Stats.Kept, res.Stats.OutsideWindow, res.Stats.InvalidTime, res.Stats.NoText)
		env.Metrics.Output(job.Name, info.RawBytes, info.CompressedBytes)
	}

	logger.Info().
		Str(xglog.FieldEvent, "job.success").
		Str(xglog.FieldOutput, info.Path).
		Int(xglog.FieldChannels, res.Channels).
		Int(xglog.FieldProgrammes, res.Programmes).
		Int("skipped", len(res.Skipped)).
		Str("size", humanize.Bytes(uint64(info.CompressedBytes))).
		Str("raw_size", humanize.Bytes(uint64(info.RawBytes))).
		Str("sha256", info.SHA256).
		Dur("duration", res.Duration).
		Msg("guide written")
	return res, nil
}

// RunAll runs jobs in order. A failing job is logged and does not stop the
// ones after it; the joined error reports every failure.
func RunAll(ctx context.Context, env Env, jobs []Job) ([]*Result, error) {
	var (
		results []*Result
		errs    []error
	)
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res, err := Run(ctx, env, j)
		if err != nil {
			logger := xglog.WithComponentFromContext(ctx, "jobs")
			logger.Error().
				Err(err).
				Str(xglog.FieldJob, j.Name).
				Str(xglog.FieldEvent, "job.failed").
				Msg("guide build failed")
			errs = append(errs, fmt.Errorf("job %s: %w", j.Name, err))
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// inputs lists the references a job reads, resolving everything that can
// fail on configuration alone.
func inputs(job Job) ([]string, error) {
	switch job.Kind {
	case KindDownload, KindTempest:
		ref, err := job.ResolveSource()
		if err != nil {
			return nil, err
		}
		return []string{ref}, nil
	case KindMerge:
		return manifestSources(job)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, job.Kind)
	}
}

func manifestSources(job Job) ([]string, error) {
	f, err := os.Open(job.Manifest)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := epg.ParseManifest(f)
	if err != nil {
		return nil, err
	}
	refs := make([]string, 0, len(entries))
	for _, e := range entries {
		refs = append(refs, epg.SourcePath(job.SourceDir, e))
	}
	return refs, nil
}

func loadAndClean(ctx context.Context, env Env, ref string, opts epg.CleanOptions) (*epg.TV, epg.CleanStats, error) {
	if env.Fetcher == nil {
		return nil, epg.CleanStats{}, fmt.Errorf("no source loader configured")
	}
	data, err := env.Fetcher.Load(ctx, ref)
	if err != nil {
		return nil, epg.CleanStats{}, err
	}
	doc, err := epg.Decode(data)
	if err != nil {
		return nil, epg.CleanStats{}, fmt.Errorf("%s: %w", ref, err)
	}
	cleaned, stats := epg.Clean(doc, opts)
	return cleaned, stats, nil
}

func logStats(logger zerolog.Logger, ref string, stats epg.CleanStats) {
	for _, r := range stats.Rejections {
		logger.Warn().
			Err(r.Err).
			Str(xglog.FieldSource, source.Redact(ref)).
			Str(xglog.FieldChannel, r.Channel).
			Str(xglog.FieldStart, r.Start).
			Str(xglog.FieldStop, r.Stop).
			Msg("dropping programme with unreadable timestamp")
	}
	for _, id := range stats.Collisions {
		logger.Warn().
			Str(xglog.FieldSource, source.Redact(ref)).
			Str(xglog.FieldChannel, id).
			Msg("channel id collision after prefix strip")
	}
	logger.Info().
		Str(xglog.FieldEvent, "source.cleaned").
		Str(xglog.FieldSource, source.Redact(ref)).
		Int(xglog.FieldChannels, stats.Channels).
		Int("programmes_in", stats.ProgrammesIn).
		Int("kept", stats.Kept).
		Int("outside_window", stats.OutsideWindow).
		Int("invalid_time", stats.InvalidTime).
		Int("no_text", stats.NoText).
		Int("orphans", stats.Orphans).
		Msg("source cleaned")
}

func addStats(a, b epg.CleanStats) epg.CleanStats {
	a.Channels += b.Channels
	a.ProgrammesIn += b.ProgrammesIn
	a.Kept += b.Kept
	a.OutsideWindow += b.OutsideWindow
	a.InvalidTime += b.InvalidTime
	a.NoText += b.NoText
	a.Orphans += b.Orphans
	a.Collisions = append(a.Collisions, b.Collisions...)
	a.Rejections = append(a.Rejections, b.Rejections...)
	return a
}
