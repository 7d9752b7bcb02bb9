package output

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet names used by the XLSX formatter.
const (
	SheetTop      = "Top"
	SheetCounters = "Counters"
	SheetSummary  = "Summary"
)

// XLSXFormatter writes reports as an Excel workbook.
type XLSXFormatter struct {
	opts FormatOptions
}

// NewXLSXFormatter creates a new XLSX formatter with the given options.
func NewXLSXFormatter(opts FormatOptions) *XLSXFormatter {
	return &XLSXFormatter{opts: opts}
}

// Name returns the format name.
func (f *XLSXFormatter) Name() string {
	return "xlsx"
}

// Format renders the report as a workbook with a Top sheet, a Summary
// sheet and, unless quiet, a Counters sheet with the full table.
func (f *XLSXFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", SheetTop); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	rows := [][]any{{"Rank", "Number", "Count"}}
	for i, e := range report.Top {
		rows = append(rows, []any{i + 1, e.Number, e.Count})
	}
	if err := writeRows(wb, SheetTop, rows); err != nil {
		return err
	}

	if !f.opts.Quiet {
		rows = [][]any{{"Number", "Count"}}
		for _, e := range report.Counters {
			rows = append(rows, []any{e.Number, e.Count})
		}
		if err := writeRows(wb, SheetCounters, rows); err != nil {
			return err
		}
	}

	rows = [][]any{
		{"Source", report.Metadata.Source},
		{"Run ID", report.Metadata.RunID},
		{"Top N", report.Summary.TopN},
		{"Draws processed", report.Summary.LinesProcessed},
		{"Numbers tallied", report.Summary.NumbersTallied},
		{"Dataset size (bytes)", report.Metadata.DatasetSize},
		{"Analyzed at", report.Metadata.AnalyzedAt.Format("2006-01-02 15:04:05")},
		{"Duration", report.Metadata.Duration.String()},
	}
	if err := writeRows(wb, SheetSummary, rows); err != nil {
		return err
	}

	if err := wb.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(wb *excelize.File, sheet string, rows [][]any) error {
	if idx, _ := wb.GetSheetIndex(sheet); idx < 0 {
		if _, err := wb.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sheet, err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
