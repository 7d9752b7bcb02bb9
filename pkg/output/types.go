// Package output provides formatting and output generation for analysis results.
package output

import (
	"time"

	"github.com/ccollicutt/lottostat/pkg/analyzer"
	"github.com/ccollicutt/lottostat/pkg/tally"
)

// Report is the complete analysis output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary

	// Top lists the most frequent numbers, highest count first.
	Top []tally.Entry

	// Counters lists every number with its count, in number order.
	Counters []tally.Entry

	// Metadata provides context about the analysis.
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	// TopN is the number of results requested.
	TopN int

	// LinesProcessed is the number of draw records tallied.
	LinesProcessed int

	// NumbersTallied is the number of winning numbers counted.
	NumbersTallied int64

	// BytesProcessed is the number of bytes consumed.
	BytesProcessed int64
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// RunID identifies the run.
	RunID string

	// Source is the dataset that was analyzed.
	Source string

	// DatasetSize is the dataset size in bytes.
	DatasetSize int64

	// AnalyzedAt is when the analysis completed.
	AnalyzedAt time.Time

	// Duration is how long the analysis took.
	Duration time.Duration
}

// NewReport creates a Report from analysis results.
func NewReport(result *analyzer.AnalysisResult) *Report {
	counters := make([]tally.Entry, 0, tally.TableSize)
	for n, c := range result.Counters {
		counters = append(counters, tally.Entry{Number: n, Count: c})
	}

	return &Report{
		Summary: Summary{
			TopN:           result.Metadata.TopN,
			LinesProcessed: result.Metadata.LinesProcessed,
			NumbersTallied: result.TotalNumbers(),
			BytesProcessed: result.Metadata.BytesProcessed,
		},
		Top:      result.Top,
		Counters: counters,
		Metadata: Metadata{
			RunID:       result.Metadata.RunID,
			Source:      result.Metadata.Source,
			DatasetSize: result.Metadata.DatasetSize,
			AnalyzedAt:  result.Metadata.EndTime,
			Duration:    result.Metadata.Duration(),
		},
	}
}

// HasData returns true if at least one draw record was tallied.
func (r *Report) HasData() bool {
	return r.Summary.LinesProcessed > 0
}
