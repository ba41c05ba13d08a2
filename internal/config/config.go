package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Default input and output trees, relative to the working directory.
const (
	DefaultInputRoot  = "2021"
	DefaultOutputRoot = "2021_csv"
)

// Output layouts.
const (
	LayoutParent   = "parent"   // one output directory per immediate parent folder name
	LayoutRelative = "relative" // mirror the full relative path under the input root
)

// Config holds all converter settings, populated from environment variables.
type Config struct {
	InputRoot    string
	OutputRoot   string
	InputExt     string
	OutputLayout string

	LogLevel  string
	LogFormat string

	// MetricsTextfile, when set, receives a Prometheus text exposition after
	// the run (node_exporter textfile collector format).
	MetricsTextfile string

	// Optional Kafka sink; disabled when no brokers are configured.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaTimeout time.Duration
}

// KafkaEnabled reports whether records are also published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	kafkaTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("KAFKA_TIMEOUT", "10s"))
	if err != nil || kafkaTimeout <= 0 {
		return nil, errors.New("invalid KAFKA_TIMEOUT")
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		InputRoot:       sharedcfg.EnvOrDefault("INPUT_ROOT", DefaultInputRoot),
		OutputRoot:      sharedcfg.EnvOrDefault("OUTPUT_ROOT", DefaultOutputRoot),
		InputExt:        sharedcfg.EnvOrDefault("INPUT_EXT", ".txt"),
		OutputLayout:    sharedcfg.EnvOrDefault("OUTPUT_LAYOUT", LayoutParent),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
		KafkaBrokers:    brokers,
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "seismic-records"),
		KafkaTimeout:    kafkaTimeout,
	}

	if cfg.InputRoot == "" {
		return nil, errors.New("INPUT_ROOT is required")
	}
	if cfg.OutputRoot == "" {
		return nil, errors.New("OUTPUT_ROOT is required")
	}
	if cfg.InputExt == "" || cfg.InputExt[0] != '.' {
		return nil, fmt.Errorf("invalid INPUT_EXT %q: must start with a dot", cfg.InputExt)
	}
	switch cfg.OutputLayout {
	case LayoutParent, LayoutRelative:
	default:
		return nil, fmt.Errorf("invalid OUTPUT_LAYOUT %q (allowed: %s, %s)", cfg.OutputLayout, LayoutParent, LayoutRelative)
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (allowed: json, text)", cfg.LogFormat)
	}
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// ParseLogLevel converts a LOG_LEVEL value (debug, info, warn, error) to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
