// Package metrics records tally run statistics in a Prometheus registry.
//
// A one-shot CLI run has no scrape endpoint, so the registry is written in
// the text exposition format for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ccollicutt/lottostat/pkg/analyzer"
)

const namespace = "lottostat"

// Recorder holds the metrics of a single run.
type Recorder struct {
	registry *prometheus.Registry

	runs           *prometheus.CounterVec
	linesProcessed prometheus.Gauge
	bytesProcessed prometheus.Gauge
	datasetBytes   prometheus.Gauge
	duration       prometheus.Gauge
	lastSuccess    prometheus.Gauge
	occurrences    *prometheus.GaugeVec
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Tally runs by outcome.",
		}, []string{"outcome"}),
		linesProcessed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "draws_processed",
			Help:      "Draw records tallied in the last run.",
		}),
		bytesProcessed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bytes_processed",
			Help:      "Bytes consumed in the last run, newlines excluded.",
		}),
		datasetBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_size_bytes",
			Help:      "Size of the dataset analyzed in the last run.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
		occurrences: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "number_occurrences",
			Help:      "How often each lottery number was drawn.",
		}, []string{"number"}),
	}

	r.registry.MustRegister(
		r.runs,
		r.linesProcessed,
		r.bytesProcessed,
		r.datasetBytes,
		r.duration,
		r.lastSuccess,
		r.occurrences,
	)

	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records a successful run.
func (r *Recorder) Observe(result *analyzer.AnalysisResult) {
	meta := result.Metadata

	r.runs.WithLabelValues("success").Inc()
	r.linesProcessed.Set(float64(meta.LinesProcessed))
	r.bytesProcessed.Set(float64(meta.BytesProcessed))
	r.datasetBytes.Set(float64(meta.DatasetSize))
	r.duration.Set(meta.Duration().Seconds())
	r.lastSuccess.Set(float64(meta.EndTime.Unix()))

	for n, c := range result.Counters {
		r.occurrences.WithLabelValues(strconv.Itoa(n)).Set(float64(c))
	}
}

// ObserveFailure records a failed run.
func (r *Recorder) ObserveFailure() {
	r.runs.WithLabelValues("failure").Inc()
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
