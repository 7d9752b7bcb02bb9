package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewJSONFormatter() returned nil")
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.Summary.TopN != 3 {
		t.Errorf("TopN = %d, want 3", parsed.Summary.TopN)
	}
	if len(parsed.Top) != 3 {
		t.Fatalf("len(Top) = %d, want 3", len(parsed.Top))
	}
	if parsed.Top[0].Number != 1 || parsed.Top[0].Count != 12 {
		t.Errorf("Top[0] = %+v, want {1 12}", parsed.Top[0])
	}
	if len(parsed.Counters) != 0 {
		t.Errorf("len(Counters) = %d, want 0 without verbose", len(parsed.Counters))
	}
	if parsed.Metadata.RunID != "run-abc123" {
		t.Errorf("RunID = %q", parsed.Metadata.RunID)
	}
}

func TestJSONFormatter_Format_Verbose(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Verbose: true})
	report := createTestReport()

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(parsed.Counters) != 50 {
		t.Errorf("len(Counters) = %d, want 50", len(parsed.Counters))
	}
	if len(report.Counters) != 50 {
		t.Error("Format() modified the report")
	}
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	// Quiet mode should only output summary
	var parsed Summary
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.LinesProcessed != 2 {
		t.Errorf("LinesProcessed = %d, want 2", parsed.LinesProcessed)
	}
}
