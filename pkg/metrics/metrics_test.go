package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/lottostat/pkg/analyzer"
	"github.com/ccollicutt/lottostat/pkg/tally"
)

func testResult() *analyzer.AnalysisResult {
	var counters tally.Counters
	counters[1] = 12
	counters[2] = 2

	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return &analyzer.AnalysisResult{
		Counters: counters,
		Metadata: analyzer.AnalysisMetadata{
			LinesProcessed: 2,
			BytesProcessed: 96,
			DatasetSize:    99,
			StartTime:      start,
			EndTime:        start.Add(1500 * time.Millisecond),
		},
	}
}

func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder()
	r.Observe(testResult())

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.linesProcessed))
	assert.Equal(t, 96.0, testutil.ToFloat64(r.bytesProcessed))
	assert.Equal(t, 99.0, testutil.ToFloat64(r.datasetBytes))
	assert.Equal(t, 1.5, testutil.ToFloat64(r.duration))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.occurrences.WithLabelValues("1")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.occurrences.WithLabelValues("49")))
	assert.Equal(t, tally.TableSize, testutil.CollectAndCount(r.occurrences))
}

func TestRecorder_ObserveFailure(t *testing.T) {
	r := NewRecorder()
	r.ObserveFailure()
	r.ObserveFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.runs.WithLabelValues("failure")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Observe(testResult())

	path := filepath.Join(t.TempDir(), "lottostat.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.Contains(text, `lottostat_number_occurrences{number="1"} 12`), text)
	assert.Contains(t, text, "lottostat_draws_processed 2")
	assert.Contains(t, text, `lottostat_runs_total{outcome="success"} 1`)
}

func TestRecorder_WriteTextfile_BadPath(t *testing.T) {
	r := NewRecorder()
	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}
