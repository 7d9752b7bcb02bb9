// Package config provides configuration loading and validation for lottostat.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Dataset is the draw history location (path or bucket URL).
	Dataset string `yaml:"dataset,omitempty" envconfig:"DATASET"`

	// TopN is how many of the most frequent numbers to report.
	TopN int `yaml:"top_n" envconfig:"TOP_N"`

	// Output is the report format.
	Output string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=text json xlsx"`

	// Progress enables the progress/ETA display on stderr.
	Progress bool `yaml:"progress" envconfig:"PROGRESS"`

	// MetricsFile, when set, receives Prometheus metrics after each run.
	MetricsFile string `yaml:"metrics_file,omitempty" envconfig:"METRICS_FILE"`

	Logging  LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty" ignored:"true" validate:"dive"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerAlways fires after every successful run (default).
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending tally reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url" validate:"required,http_url"`

	// Token is an optional bearer token for authentication.
	// ${VAR} and $VAR are expanded from the environment.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	Trigger WebhookTrigger `yaml:"trigger,omitempty" validate:"omitempty,oneof=always never"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty" validate:"gte=0"`
}

// DisplayName returns the webhook name, falling back to its URL.
func (w *WebhookConfig) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return w.URL
}
