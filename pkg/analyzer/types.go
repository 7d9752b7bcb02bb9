// Package analyzer runs a complete frequency analysis over a draw history dataset.
package analyzer

import (
	"time"

	"github.com/ccollicutt/lottostat/pkg/tally"
)

// AnalysisResult contains the complete analysis output.
type AnalysisResult struct {
	// Top is the requested number of most frequent numbers, highest first.
	Top []tally.Entry

	// Counters holds the full frequency table.
	Counters tally.Counters

	// Metadata provides context about the analysis.
	Metadata AnalysisMetadata
}

// AnalysisMetadata provides context about the analysis run.
type AnalysisMetadata struct {
	// RunID uniquely identifies this run.
	RunID string

	// Source is the dataset location that was analyzed.
	Source string

	// TopN is the number of results requested.
	TopN int

	// LinesProcessed is the number of draw records tallied (header excluded).
	LinesProcessed int

	// BytesProcessed is the number of bytes consumed, newlines excluded.
	BytesProcessed int64

	// DatasetSize is the dataset size in bytes.
	DatasetSize int64

	// StartTime is when analysis began.
	StartTime time.Time

	// EndTime is when analysis completed.
	EndTime time.Time
}

// TotalNumbers returns the number of winning numbers tallied.
func (r *AnalysisResult) TotalNumbers() int64 {
	return r.Counters.Total()
}

// Duration returns how long the analysis took.
func (m *AnalysisMetadata) Duration() time.Duration {
	return m.EndTime.Sub(m.StartTime)
}
