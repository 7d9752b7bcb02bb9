package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/lottostat/pkg/source"
	"github.com/ccollicutt/lottostat/pkg/tally"
)

// DefaultTopN is the number of results reported when none is requested.
const DefaultTopN = 1

// OpenFunc opens a dataset by location.
type OpenFunc func(ctx context.Context, location string) (*source.Dataset, error)

// Analyzer tallies a dataset and selects its most frequent numbers.
type Analyzer struct {
	topN     int
	runID    string
	observer tally.Observer
	now      func() time.Time
	open     OpenFunc
	logger   *slog.Logger
}

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithTopN sets how many numbers to report.
func WithTopN(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.topN = n
	}
}

// WithObserver receives progress events while the dataset is read.
func WithObserver(o tally.Observer) AnalyzerOption {
	return func(a *Analyzer) {
		a.observer = o
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// WithRunID sets the run identifier instead of generating one.
func WithRunID(id string) AnalyzerOption {
	return func(a *Analyzer) {
		if id != "" {
			a.runID = id
		}
	}
}

// WithOpener replaces how datasets are opened.
func WithOpener(open OpenFunc) AnalyzerOption {
	return func(a *Analyzer) {
		if open != nil {
			a.open = open
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer creates a new analyzer. An out-of-range top-N is rejected here,
// before any dataset is touched.
func NewAnalyzer(opts ...AnalyzerOption) (*Analyzer, error) {
	a := &Analyzer{
		topN:   DefaultTopN,
		now:    time.Now,
		open:   source.Open,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if err := tally.ValidateTopN(a.topN); err != nil {
		return nil, err
	}

	if a.runID == "" {
		a.runID = uuid.NewString()
	}

	return a, nil
}

// RunID returns the identifier used for this analyzer's runs.
func (a *Analyzer) RunID() string {
	return a.runID
}

// Analyze reads the dataset at location and returns its top-N numbers.
// On any failure no result is returned.
func (a *Analyzer) Analyze(ctx context.Context, location string) (*AnalysisResult, error) {
	if err := tally.ValidateTopN(a.topN); err != nil {
		return nil, err
	}

	ds, err := a.open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	a.logger.DebugContext(ctx, "dataset opened",
		slog.String("source", ds.Name),
		slog.Int64("size_bytes", ds.Size))

	engine := tally.NewEngine(
		tally.WithObserver(a.observer),
		tally.WithClock(a.now),
	)

	tallied, err := engine.Run(ctx, ds, ds.Size)
	if err != nil {
		return nil, fmt.Errorf("tallying %s: %w", location, err)
	}

	top, err := tallied.Counters.Top(a.topN)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		Top:      top,
		Counters: tallied.Counters,
		Metadata: AnalysisMetadata{
			RunID:          a.runID,
			Source:         location,
			TopN:           a.topN,
			LinesProcessed: tallied.Lines,
			BytesProcessed: tallied.ProcessedBytes,
			DatasetSize:    tallied.DatasetSize,
			StartTime:      tallied.Started,
			EndTime:        tallied.Finished,
		},
	}

	a.logger.InfoContext(ctx, "tally complete",
		slog.String("source", location),
		slog.Int("lines", tallied.Lines),
		slog.Int64("numbers", result.TotalNumbers()),
		slog.Duration("duration", result.Metadata.Duration()))

	return result, nil
}
