package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/lottostat/internal/logging"
	"github.com/ccollicutt/lottostat/internal/progress"
	"github.com/ccollicutt/lottostat/pkg/analyzer"
	"github.com/ccollicutt/lottostat/pkg/config"
	"github.com/ccollicutt/lottostat/pkg/metrics"
	"github.com/ccollicutt/lottostat/pkg/output"
	"github.com/ccollicutt/lottostat/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// errNoDataset is returned when neither --file nor a positional dataset is given.
var errNoDataset = errors.New("no dataset given (use --file, a positional argument, or the dataset config key)")

// TallyOptions holds command-line options for the tally command.
type TallyOptions struct {
	File        string
	TopN        int
	ConfigPath  string
	Output      string
	NoProgress  bool
	MetricsFile string
	LogLevel    string
	Verbose     bool
	Quiet       bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewTallyCommand creates the tally command.
func NewTallyCommand() *cobra.Command {
	opts := &TallyOptions{}

	cmd := &cobra.Command{
		Use:   "tally [dataset]",
		Short: "Count winning numbers in a draw history file",
		Long: `Stream a tab-delimited draw history file and report the most common
winning numbers.

The first line is a header and is skipped. Every other line must have at
least 12 tab-separated fields; fields 3 to 12 hold that draw's winning
numbers (0-49). Ties are broken in favor of the lower number.

The dataset may be a local path or a bucket URL (file://, mem://, s3://, gs://).

Exit codes:
  0 - Tally completed
  2 - Configuration or runtime error (missing file, empty file,
      malformed record, invalid --top)`,
		Example: `  lottostat tally -f draws.tsv
  lottostat tally -f draws.tsv -t 6
  lottostat tally s3://lotto-archive/draws.tsv --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTally(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Path or URL of the draw history file")
	cmd.Flags().IntVarP(&opts.TopN, "top", "t", analyzer.DefaultTopN, "Number of most common winning numbers to return (1-50)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Optional YAML config file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "Output format (text|json|xlsx)")
	cmd.Flags().BoolVar(&opts.NoProgress, "no-progress", false, "Disable the progress display")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show all counters and run statistics")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no progress")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerAlways), "When to fire webhook (always|never)")

	return cmd
}

func runTally(cmd *cobra.Command, args []string, opts *TallyOptions) error {
	ExitCode = 0
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := applyFlags(cmd, args, opts, cfg); err != nil {
		return err
	}

	formatter, err := output.NewFormatter(cfg.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	logger := logging.Setup(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})

	analyzerOpts := []analyzer.AnalyzerOption{
		analyzer.WithTopN(cfg.TopN),
		analyzer.WithLogger(logger),
	}
	if cfg.Progress && !opts.Quiet {
		renderer := progress.NewRenderer(cmd.ErrOrStderr())
		analyzerOpts = append(analyzerOpts, analyzer.WithObserver(renderer.Observe))
	}

	a, err := analyzer.NewAnalyzer(analyzerOpts...)
	if err != nil {
		return err
	}
	ctx = logging.WithRunID(ctx, a.RunID())

	recorder := metrics.NewRecorder()

	result, err := a.Analyze(ctx, cfg.Dataset)
	if err != nil {
		logger.ErrorContext(ctx, "tally failed",
			slog.String("source", cfg.Dataset),
			slog.String("error", err.Error()))
		recorder.ObserveFailure()
		writeMetrics(ctx, logger, recorder, cfg.MetricsFile)
		return err
	}
	recorder.Observe(result)

	report := output.NewReport(result)

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	writeMetrics(ctx, logger, recorder, cfg.MetricsFile)

	// Send webhooks (errors logged but don't fail the run)
	sendWebhooks(ctx, logger, cfg.Webhooks, report)

	return nil
}

// applyFlags layers explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, args []string, opts *TallyOptions, cfg *config.Config) error {
	flags := cmd.Flags()

	switch {
	case len(args) == 1 && flags.Changed("file") && args[0] != opts.File:
		return fmt.Errorf("dataset given twice: --file %q and argument %q", opts.File, args[0])
	case len(args) == 1:
		cfg.Dataset = args[0]
	case flags.Changed("file"):
		cfg.Dataset = opts.File
	}
	if cfg.Dataset == "" {
		return errNoDataset
	}

	if flags.Changed("top") {
		cfg.TopN = opts.TopN
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("no-progress") {
		cfg.Progress = !opts.NoProgress
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.MetricsFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.LogLevel
	}
	cfg.Webhooks = collectWebhooks(cfg, opts)

	return config.Validate(cfg)
}

func writeMetrics(ctx context.Context, logger *slog.Logger, recorder *metrics.Recorder, path string) {
	if path == "" {
		return
	}
	if err := recorder.WriteTextfile(path); err != nil {
		logger.WarnContext(ctx, "metrics not written", slog.String("error", err.Error()))
	}
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged but don't fail the run.
func sendWebhooks(ctx context.Context, logger *slog.Logger, webhooks []config.WebhookConfig, report *output.Report) {
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		if resp.Success() {
			logger.InfoContext(ctx, "webhook sent",
				slog.String("webhook", wh.DisplayName()),
				slog.Int("status", resp.StatusCode),
				slog.Duration("duration", resp.Duration))
		} else {
			logger.WarnContext(ctx, "webhook failed",
				slog.String("webhook", wh.DisplayName()),
				slog.String("error", fmt.Sprint(resp.Error)))
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *TallyOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)

	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerAlways
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook reports whether a webhook with the given trigger fires
// after a successful run.
func shouldFireWebhook(trigger config.WebhookTrigger) bool {
	return trigger != config.WebhookTriggerNever
}
