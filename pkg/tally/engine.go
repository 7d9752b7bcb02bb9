package tally

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// DefaultMaxLineSize bounds a single draw record.
const DefaultMaxLineSize = 1024 * 1024

// Engine reads a draw history stream and tallies winning numbers.
// An Engine is not safe for concurrent use by multiple goroutines.
type Engine struct {
	observer    Observer
	now         func() time.Time
	maxLineSize int
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers a callback that receives every progress event.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithClock overrides the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithMaxLineSize sets the longest accepted line in bytes.
func WithMaxLineSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxLineSize = n
		}
	}
}

// NewEngine creates an engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:         time.Now,
		maxLineSize: DefaultMaxLineSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run consumes r line by line. The first line is a header: it is not
// tallied but its length counts toward progress. size is the total size of
// the stream in bytes and must be positive.
//
// Observers see one event after the header, one per data line, and a final
// event with Done set. Any malformed record aborts the run and no result
// is returned.
func (e *Engine) Run(ctx context.Context, r io.Reader, size int64) (*Result, error) {
	start := e.now()

	progress, err := NewProgress(size, start)
	if err != nil {
		return nil, err
	}

	result := &Result{
		DatasetSize: size,
		Started:     start,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, e.maxLineSize)), e.maxLineSize)

	lineNum := 0
	if scanner.Scan() {
		lineNum++
		progress.Advance(len(scanner.Bytes()))
	}
	if err := scanner.Err(); err != nil {
		return nil, e.scanError(err, lineNum+1)
	}
	e.emit(progress.Snapshot(lineNum, e.now()))

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lineNum++
		line := scanner.Text()

		numbers, err := ParseRecord(line, lineNum)
		if err != nil {
			return nil, err
		}
		for _, n := range numbers {
			if err := result.Counters.Add(n); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
		}
		result.Lines++

		progress.Advance(len(line))
		e.emit(progress.Snapshot(lineNum, e.now()))
	}

	if err := scanner.Err(); err != nil {
		return nil, e.scanError(err, lineNum+1)
	}

	result.ProcessedBytes = progress.ProcessedBytes
	result.Finished = e.now()
	e.emit(progress.Complete(lineNum, result.Finished))

	return result, nil
}

func (e *Engine) emit(ev Event) {
	if e.observer != nil {
		e.observer(ev)
	}
}

func (e *Engine) scanError(err error, lineNum int) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return &RecordError{
			Line:   lineNum,
			Column: -1,
			Reason: fmt.Sprintf("line exceeds %d bytes", e.maxLineSize),
			Err:    err,
		}
	}
	return fmt.Errorf("%w: reading line %d: %w", ErrFileAccess, lineNum, err)
}
