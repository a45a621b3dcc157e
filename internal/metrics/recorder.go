// SPDX-License-Identifier: MIT

// Package metrics records per-run guide statistics for the node exporter
// textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Programme outcomes used as the "outcome" label.
const (
	OutcomeKept          = "kept"
	OutcomeOutsideWindow = "outside_window"
	OutcomeInvalidTime   = "invalid_time"
	OutcomeNoText        = "no_text"
)

// Recorder owns a private registry so one-shot runs export only their own
// series.
type Recorder struct {
	reg *prometheus.Registry

	channels      *prometheus.GaugeVec
	programmes    *prometheus.GaugeVec
	collisions    *prometheus.GaugeVec
	skipped       *prometheus.GaugeVec
	outputBytes   *prometheus.GaugeVec
	duration      *prometheus.GaugeVec
	success       *prometheus.GaugeVec
	lastSuccessTS *prometheus.GaugeVec
}

// NewRecorder registers all guide series on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		reg: reg,
		channels: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "epg_channels",
			Help: "Channels written by the last run",
		}, []string{"job"}),
		programmes: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "epg_programmes",
			Help: "Programmes seen by the last run by outcome",
		}, []string{"job", "outcome"}), // outcome=kept|outside_window|invalid_time|no_text
		collisions: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "epg_channel_id_collisions",
			Help: "Channel ids that collided after prefix stripping",
		}, []string{"job"}),
		skipped: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "epg_sources_skipped",
			Help: "Merge sources skipped because they were missing or unreadable",
		}, []string{"job"}),
		outputBytes: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "epg_output_bytes",
			Help: "Size of the written artifact",
		}, []string{"job", "encoding"}), // encoding=raw|gzip
		duration: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "epg_run_duration_seconds",
			Help: "Wall time of the last run",
		}, []string{"job"}),
		success: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "epg_run_success",
			Help: "Whether the last run succeeded (1) or failed (0)",
		}, []string{"job"}),
		lastSuccessTS: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "epg_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run",
		}, []string{"job"}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Programmes records the per-outcome programme counts of a run.
func (r *Recorder) Programmes(job string, kept, outsideWindow, invalidTime, noText int) {
	r.programmes.WithLabelValues(job, OutcomeKept).Set(float64(kept))
	r.programmes.WithLabelValues(job, OutcomeOutsideWindow).Set(float64(outsideWindow))
	r.programmes.WithLabelValues(job, OutcomeInvalidTime).Set(float64(invalidTime))
	r.programmes.WithLabelValues(job, OutcomeNoText).Set(float64(noText))
}

// Channels records the channel and collision counts of a run.
func (r *Recorder) Channels(job string, channels, collisions int) {
	r.channels.WithLabelValues(job).Set(float64(channels))
	r.collisions.WithLabelValues(job).Set(float64(collisions))
}

// SkippedSources records how many merge sources were skipped.
func (r *Recorder) SkippedSources(job string, n int) {
	r.skipped.WithLabelValues(job).Set(float64(n))
}

// Output records the artifact sizes.
func (r *Recorder) Output(job string, raw, compressed int) {
	r.outputBytes.WithLabelValues(job, "raw").Set(float64(raw))
	r.outputBytes.WithLabelValues(job, "gzip").Set(float64(compressed))
}

// Finish records the run duration and outcome.
func (r *Recorder) Finish(job string, d time.Duration, ok bool, at time.Time) {
	r.duration.WithLabelValues(job).Set(d.Seconds())
	if ok {
		r.success.WithLabelValues(job).Set(1)
		r.lastSuccessTS.WithLabelValues(job).Set(float64(at.Unix()))
		return
	}
	r.success.WithLabelValues(job).Set(0)
}

// WriteTextfile writes all series to path in the text exposition format.
// An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
