package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/lottostat/pkg/tally"
)

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	if cmd.Use != "validate <config-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	if !strings.Contains(cmd.Long, "Validate") {
		t.Error("Missing description in Long")
	}
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	if cmd.Use != "version" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if buf.String() != "lottostat dev\n" {
		t.Errorf("version output = %q", buf.String())
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	return path
}

func runValidateCommand(t *testing.T, configPath string) (string, error) {
	t.Helper()
	cmd := NewValidateCommand()
	cmd.SetArgs([]string{configPath})

	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRunValidate_Success(t *testing.T) {
	dataset := scenarioDataset(t)
	configPath := writeConfig(t, `dataset: `+dataset+`
top_n: 6
output: json
webhooks:
  - name: ops
    url: https://example.com/hook
`)

	out, err := runValidateCommand(t, configPath)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	for _, want := range []string{
		"Configuration valid!",
		"Top N:    6",
		"Output:   json",
		"1. ops [always]",
		"Dataset readable: " + dataset,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunValidate_MissingDatasetIsWarning(t *testing.T) {
	configPath := writeConfig(t, "dataset: /nonexistent/draws.tsv\n")

	out, err := runValidateCommand(t, configPath)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !strings.Contains(out, "Warning:") {
		t.Errorf("expected dataset warning, got:\n%s", out)
	}
}

func TestRunValidate_EmptyDatasetIsWarning(t *testing.T) {
	dataset := filepath.Join(t.TempDir(), "empty.tsv")
	if err := os.WriteFile(dataset, nil, 0644); err != nil {
		t.Fatalf("Failed to create dataset: %v", err)
	}
	configPath := writeConfig(t, "dataset: "+dataset+"\n")

	out, err := runValidateCommand(t, configPath)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !strings.Contains(out, "is empty") {
		t.Errorf("expected empty dataset warning, got:\n%s", out)
	}
}

func TestRunValidate_InvalidTopN(t *testing.T) {
	configPath := writeConfig(t, "top_n: 0\n")

	_, err := runValidateCommand(t, configPath)
	if !errors.Is(err, tally.ErrInvalidTopN) {
		t.Errorf("expected ErrInvalidTopN, got %v", err)
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	configPath := writeConfig(t, "invalid: yaml: content")

	if _, err := runValidateCommand(t, configPath); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestRunValidate_InvalidWebhook(t *testing.T) {
	configPath := writeConfig(t, "webhooks:\n  - url: ftp://example.com\n")

	_, err := runValidateCommand(t, configPath)
	if err == nil || !strings.Contains(err.Error(), "webhooks[0].url") {
		t.Errorf("expected webhook url error, got %v", err)
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	if _, err := runValidateCommand(t, "/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}
