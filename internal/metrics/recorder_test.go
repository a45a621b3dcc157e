// SPDX-License-Identifier: MIT

package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Programmes(t *testing.T) {
	r := NewRecorder()
	r.Programmes("download", 120, 30, 2, 5)

	assert.Equal(t, 120.0, testutil.ToFloat64(r.programmes.WithLabelValues("download", OutcomeKept)))
	assert.Equal(t, 30.0, testutil.ToFloat64(r.programmes.WithLabelValues("download", OutcomeOutsideWindow)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.programmes.WithLabelValues("download", OutcomeInvalidTime)))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.programmes.WithLabelValues("download", OutcomeNoText)))
}

func TestRecorder_FinishSuccessAndFailure(t *testing.T) {
	r := NewRecorder()
	at := time.Unix(1705300000, 0)

	r.Finish("merge", 1500*time.Millisecond, true, at)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.success.WithLabelValues("merge")))
	assert.Equal(t, 1.5, testutil.ToFloat64(r.duration.WithLabelValues("merge")))
	assert.Equal(t, float64(at.Unix()), testutil.ToFloat64(r.lastSuccessTS.WithLabelValues("merge")))

	r.Finish("merge", time.Second, false, at.Add(time.Hour))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.success.WithLabelValues("merge")))
	assert.Equal(t, float64(at.Unix()), testutil.ToFloat64(r.lastSuccessTS.WithLabelValues("merge")),
		"a failed run must not move the last success timestamp")
}

func TestRecorder_Isolated(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()
	a.Channels("download", 10, 1)

	assert.Equal(t, 1, testutil.CollectAndCount(a.channels))
	assert.Equal(t, 0, testutil.CollectAndCount(b.channels))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Channels("tempest", 4, 0)
	r.Output("tempest", 2048, 512)
	r.SkippedSources("tempest", 0)

	path := filepath.Join(t.TempDir(), "textfile", "epg.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, `epg_channels{job="tempest"} 4`)
	assert.Contains(t, body, `epg_output_bytes{encoding="gzip",job="tempest"} 512`)
}

func TestRecorder_WriteTextfileNoop(t *testing.T) {
	var r *Recorder
	assert.NoError(t, r.WriteTextfile("/nonexistent/metrics.prom"))
	assert.NoError(t, NewRecorder().WriteTextfile(""))
}
