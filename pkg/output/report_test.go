package output

import (
	"testing"
	"time"

	"github.com/ccollicutt/lottostat/pkg/analyzer"
	"github.com/ccollicutt/lottostat/pkg/tally"
)

func createTestReport() *Report {
	var counters tally.Counters
	counters[1] = 12
	counters[2] = 2
	counters[3] = 2
	counters[4] = 2
	counters[5] = 2

	baseTime := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	return NewReport(&analyzer.AnalysisResult{
		Top:      []tally.Entry{{Number: 1, Count: 12}, {Number: 2, Count: 2}, {Number: 3, Count: 2}},
		Counters: counters,
		Metadata: analyzer.AnalysisMetadata{
			RunID:          "run-abc123",
			Source:         "draws.tsv",
			TopN:           3,
			LinesProcessed: 2,
			BytesProcessed: 96,
			DatasetSize:    99,
			StartTime:      baseTime,
			EndTime:        baseTime.Add(100 * time.Millisecond),
		},
	})
}

func TestNewReport(t *testing.T) {
	report := createTestReport()

	if report.Summary.TopN != 3 {
		t.Errorf("TopN = %d, want 3", report.Summary.TopN)
	}
	if report.Summary.NumbersTallied != 20 {
		t.Errorf("NumbersTallied = %d, want 20", report.Summary.NumbersTallied)
	}
	if len(report.Counters) != tally.TableSize {
		t.Fatalf("len(Counters) = %d, want %d", len(report.Counters), tally.TableSize)
	}
	for i, e := range report.Counters {
		if e.Number != i {
			t.Errorf("Counters[%d].Number = %d, want %d", i, e.Number, i)
		}
	}
	if report.Counters[1].Count != 12 {
		t.Errorf("Counters[1].Count = %d, want 12", report.Counters[1].Count)
	}
	if report.Metadata.Duration != 100*time.Millisecond {
		t.Errorf("Duration = %v, want 100ms", report.Metadata.Duration)
	}
	if !report.HasData() {
		t.Error("HasData() = false, want true")
	}
}

func TestReport_HasData_Empty(t *testing.T) {
	report := NewReport(&analyzer.AnalysisResult{})
	if report.HasData() {
		t.Error("HasData() = true for report with no draws")
	}
}

func TestNewFormatter(t *testing.T) {
	for _, name := range Formats {
		f, err := NewFormatter(name, FormatOptions{})
		if err != nil {
			t.Errorf("NewFormatter(%q) error = %v", name, err)
			continue
		}
		if f.Name() != name {
			t.Errorf("Name() = %q, want %q", f.Name(), name)
		}
	}

	if _, err := NewFormatter("yaml", FormatOptions{}); err == nil {
		t.Error("NewFormatter(yaml) expected error")
	}
}
