package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/lottostat/pkg/config"
	"github.com/ccollicutt/lottostat/pkg/source"
	"github.com/ccollicutt/lottostat/pkg/tally"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a lottostat configuration file without running a tally.

Checks:
  - YAML syntax
  - LOTTOSTAT_* environment overrides
  - Output format and logging settings
  - Webhook URLs and triggers
  - top_n range
  - Dataset accessibility (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := tally.ValidateTopN(cfg.TopN); err != nil {
		return fmt.Errorf("validation failed: top_n: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Dataset:  %s\n", orNone(cfg.Dataset))
	fmt.Fprintf(out, "  Top N:    %d\n", cfg.TopN)
	fmt.Fprintf(out, "  Output:   %s\n", cfg.Output)
	fmt.Fprintf(out, "  Progress: %t\n", cfg.Progress)
	if cfg.MetricsFile != "" {
		fmt.Fprintf(out, "  Metrics:  %s\n", cfg.MetricsFile)
	}

	if len(cfg.Webhooks) > 0 {
		fmt.Fprintf(out, "\nWebhooks:\n")
		for i, wh := range cfg.Webhooks {
			fmt.Fprintf(out, "  %d. %s [%s]\n", i+1, wh.DisplayName(), wh.Trigger)
		}
	}

	if cfg.Dataset == "" {
		return nil
	}

	// Dataset problems are warnings; the file may not exist yet.
	ds, err := source.Open(ctx, cfg.Dataset)
	if err != nil {
		fmt.Fprintf(out, "\nWarning: %v\n", err)
		return nil
	}
	defer ds.Close()

	if ds.Size == 0 {
		fmt.Fprintf(out, "\nWarning: dataset %s is empty\n", ds.Name)
		return nil
	}
	fmt.Fprintf(out, "\nDataset readable: %s (%d bytes)\n", ds.Name, ds.Size)

	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
