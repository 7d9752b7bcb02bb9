package config

import "time"

// Default values for configuration.
const (
	DefaultTopN           = 1
	DefaultOutput         = "text"
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "text"
	DefaultWebhookTimeout = 10 * time.Second
)

// EnvPrefix is prepended to every environment override, e.g. LOTTOSTAT_TOP_N.
const EnvPrefix = "LOTTOSTAT"

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		TopN:     DefaultTopN,
		Output:   DefaultOutput,
		Progress: true,
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
