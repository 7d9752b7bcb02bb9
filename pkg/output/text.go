package output

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	parts := make([]string, 0, len(report.Top))
	for _, e := range report.Top {
		parts = append(parts, fmt.Sprintf("%d (%d)", e.Number, e.Count))
	}
	_, err := fmt.Fprintf(w, "lottostat: %d draws, top %d: %s\n",
		report.Summary.LinesProcessed,
		report.Summary.TopN,
		strings.Join(parts, ", "))
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "The top %d most common winning numbers:\n", report.Summary.TopN)
	for _, e := range report.Top {
		fmt.Fprintf(w, "%d occurs %d times\n", e.Number, e.Count)
	}

	if !f.opts.Verbose {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "All numbers:")
	for _, e := range report.Counters {
		fmt.Fprintf(w, "  %2d: %d\n", e.Number, e.Count)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Source: %s\n", report.Metadata.Source)
	fmt.Fprintf(w, "Draws processed: %d\n", report.Summary.LinesProcessed)
	fmt.Fprintf(w, "Numbers tallied: %d\n", report.Summary.NumbersTallied)
	fmt.Fprintf(w, "Bytes processed: %d / %d\n", report.Summary.BytesProcessed, report.Metadata.DatasetSize)
	fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	_, err := fmt.Fprintf(w, "Run ID: %s\n", report.Metadata.RunID)
	return err
}
