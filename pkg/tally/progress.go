package tally

import (
	"fmt"
	"time"
)

// Progress tracks how much of a dataset has been consumed.
// DatasetSize must be positive; use NewProgress to construct one.
type Progress struct {
	DatasetSize    int64
	ProcessedBytes int64
	StartTime      time.Time
}

// NewProgress creates progress state for a dataset of the given size.
func NewProgress(size int64, start time.Time) (*Progress, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size is %d bytes, progress is undefined", ErrEmptyDataset, size)
	}
	return &Progress{DatasetSize: size, StartTime: start}, nil
}

// Advance records n more bytes as processed.
func (p *Progress) Advance(n int) {
	p.ProcessedBytes += int64(n)
}

// Percent returns 100 * processed / total as a real number.
func (p *Progress) Percent() float64 {
	return 100.0 * float64(p.ProcessedBytes) / float64(p.DatasetSize)
}

// ETA estimates the remaining time by linear extrapolation of elapsed time.
func (p *Progress) ETA(now time.Time) time.Duration {
	return EstimateRemaining(now.Sub(p.StartTime), p.Percent())
}

// EstimateRemaining returns elapsed / percent * (100 - percent).
// A zero elapsed time or zero percentage yields zero, as does a
// percentage at or above 100.
func EstimateRemaining(elapsed time.Duration, percent float64) time.Duration {
	if elapsed <= 0 || percent <= 0 || percent >= 100 {
		return 0
	}
	seconds := elapsed.Seconds() / percent * (100 - percent)
	return time.Duration(seconds * float64(time.Second))
}

// Snapshot builds a progress event for the given line at time now.
func (p *Progress) Snapshot(line int, now time.Time) Event {
	raw := p.Percent()
	return Event{
		Line:           line,
		Percent:        clampPercent(raw),
		RawPercent:     raw,
		ETA:            EstimateRemaining(now.Sub(p.StartTime), raw),
		Elapsed:        now.Sub(p.StartTime),
		ProcessedBytes: p.ProcessedBytes,
		DatasetSize:    p.DatasetSize,
	}
}

// Complete builds the terminal event. The percentage is reported as 100
// even when newline bytes left processed and total sizes apart.
func (p *Progress) Complete(line int, now time.Time) Event {
	ev := p.Snapshot(line, now)
	ev.Percent = 100
	ev.ETA = 0
	ev.Done = true
	return ev
}

func clampPercent(raw float64) int {
	switch {
	case raw <= 0:
		return 0
	case raw >= 100:
		return 100
	default:
		return int(raw)
	}
}
