// Package tally provides the streaming frequency engine for lottery draw history files.
package tally

import "time"

// Draw file layout.
const (
	// TableSize is the number of distinct lottery numbers (0-49).
	TableSize = 50

	// NumbersPerDraw is the number of winning numbers recorded per draw.
	NumbersPerDraw = 10

	// FirstNumberColumn is the 0-based index of the first winning-number field.
	FirstNumberColumn = 2

	// MinFields is the minimum number of fields a draw record must have.
	MinFields = FirstNumberColumn + NumbersPerDraw

	// Delimiter separates fields in a draw record.
	Delimiter = '\t'
)

// Entry is a single (number, count) pair selected from the counter table.
type Entry struct {
	// Number is the lottery number (0-49).
	Number int

	// Count is how often the number was drawn.
	Count int64
}

// Event is a progress notification emitted by the engine while it reads a dataset.
type Event struct {
	// Line is the 1-based number of the last line consumed (the header is line 1).
	Line int

	// Percent is the truncated integer percentage (0-100).
	Percent int

	// RawPercent is the unclamped percentage as computed from processed bytes.
	RawPercent float64

	// ETA is the estimated time remaining.
	ETA time.Duration

	// Elapsed is the wall-clock time since the run started.
	Elapsed time.Duration

	// ProcessedBytes is the number of bytes consumed so far.
	ProcessedBytes int64

	// DatasetSize is the total size of the dataset in bytes.
	DatasetSize int64

	// Done is set on the terminal event only.
	Done bool
}

// Observer receives progress events. It is called synchronously from Run.
type Observer func(Event)

// Result is the outcome of a complete tally run.
type Result struct {
	// Counters holds the per-number occurrence counts.
	Counters Counters

	// Lines is the number of data lines processed (header excluded).
	Lines int

	// ProcessedBytes is the number of bytes consumed, newlines excluded.
	ProcessedBytes int64

	// DatasetSize is the size of the dataset in bytes.
	DatasetSize int64

	// Started is when the run began.
	Started time.Time

	// Finished is when the run completed.
	Finished time.Time
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}
