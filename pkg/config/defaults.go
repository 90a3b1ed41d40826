package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/joho/godotenv"

	"github.com/ccollicutt/chatretro/pkg/analyzer"
	"github.com/ccollicutt/chatretro/pkg/parser"
)

// Default values for configuration.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = LogFormatText
)

// Environment variable names.
const (
	EnvLogLevel   = "CHATRETRO_LOG_LEVEL"
	EnvSessionGap = "CHATRETRO_SESSION_GAP"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			MediaMarkers: slices.Clone(parser.DefaultMediaMarkers),
			ImagePattern: parser.DefaultImagePattern,
			SessionGap:   parser.DefaultSessionGap,
			NightEndHour: parser.DefaultNightEndHour,
		},
		Analytics: AnalyticsConfig{
			BurstWindow:    analyzer.DefaultBurstWindow,
			MinTokenLength: analyzer.DefaultMinTokenLength,
			PodiumSize:     analyzer.DefaultPodiumSize,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}

	if gap := os.Getenv(EnvSessionGap); gap != "" {
		d, err := time.ParseDuration(gap)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSessionGap, err)
		}
		c.Parser.SessionGap = d
	}

	return nil
}

// LoadEnvFile loads KEY=value pairs from a dotenv file into the process
// environment. Variables that are already set keep their value.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}
