// Package config loads wordfreq configuration from an optional YAML file with
// WORDFREQ_* environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Count   CountConfig   `yaml:"count"`
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
	Errors  ErrorsConfig  `yaml:"errors"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// CountConfig controls tokenization and matching.
type CountConfig struct {
	Exclude   []string `yaml:"exclude"`   // exclusion filter names, e.g. hangul, digits
	Normalize string   `yaml:"normalize"` // nfc or none
}

// OutputConfig controls the written table.
type OutputConfig struct {
	Format string `yaml:"format"`
	Sheet  string `yaml:"sheet"`
}

// HistoryConfig controls the run history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DB      string `yaml:"db"`
}

// ErrorsConfig controls the diagnostic record written when a run fails.
type ErrorsConfig struct {
	Log string `yaml:"log"`
}

// MetricsConfig controls the Prometheus textfile written after each run.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// NormalizeNFC reports whether NFC normalization was asked for. The text is
// counted as read unless normalize is "nfc".
func (c CountConfig) NormalizeNFC() bool {
	return strings.EqualFold(c.Normalize, "nfc")
}

// DefaultPath returns ~/.wordfreq/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".wordfreq", "config.yaml")
}

// Load reads the YAML file at path and applies environment overrides. When
// required is false a missing file is not an error.
func Load(path string, required bool) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !required:
		default:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Count: CountConfig{
			Exclude:   []string{"hangul", "digits"},
			Normalize: "none",
		},
		Output: OutputConfig{
			Format: "xlsx",
			Sheet:  "Sheet1",
		},
		History: HistoryConfig{
			Enabled: true,
			DB:      filepath.Join(home, ".wordfreq", "history.db"),
		},
		Errors: ErrorsConfig{
			Log: "error_log.txt",
		},
	}
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Count.Normalize) {
	case "nfc", "none", "":
	default:
		return fmt.Errorf("invalid count.normalize %q (use nfc or none)", c.Count.Normalize)
	}
	switch strings.ToLower(c.Output.Format) {
	case "xlsx", "csv":
	default:
		return fmt.Errorf("invalid output.format %q (use xlsx or csv)", c.Output.Format)
	}
	return nil
}

// applyEnvOverrides reads WORDFREQ_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WORDFREQ_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WORDFREQ_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v, ok := os.LookupEnv("WORDFREQ_EXCLUDE"); ok {
		cfg.Count.Exclude = splitList(v)
	}
	if v := os.Getenv("WORDFREQ_NORMALIZE"); v != "" {
		cfg.Count.Normalize = v
	}
	if v := os.Getenv("WORDFREQ_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("WORDFREQ_DB"); v != "" {
		cfg.History.DB = v
	}
	if v := os.Getenv("WORDFREQ_HISTORY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.History.Enabled = b
		}
	}
	if v := os.Getenv("WORDFREQ_ERROR_LOG"); v != "" {
		cfg.Errors.Log = v
	}
	if v := os.Getenv("WORDFREQ_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
