package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/chatretro/pkg/analyzer"
	"github.com/ccollicutt/chatretro/pkg/parser"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format (use .yaml, .yml or .toml)")

// Load reads and validates a configuration file.
// The format is chosen by file extension.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Resolve loads the config at path, or the defaults when path is empty.
// Environment overrides apply in both cases.
func Resolve(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Validate checks a configuration for errors and compiles regex patterns.
func Validate(cfg *Config) error {
	if err := validateParser(&cfg.Parser); err != nil {
		return fmt.Errorf("parser: %w", err)
	}

	if err := validateAnalytics(&cfg.Analytics); err != nil {
		return fmt.Errorf("analytics: %w", err)
	}

	if err := validateLogging(&cfg.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	return nil
}

func validateParser(pc *ParserConfig) error {
	pc.compiledImagePattern = nil
	if pc.ImagePattern != "" {
		re, err := regexp.Compile(pc.ImagePattern)
		if err != nil {
			return fmt.Errorf("invalid image_pattern: %w", err)
		}
		pc.compiledImagePattern = re
	}

	for i, marker := range pc.MediaMarkers {
		if marker == "" {
			return fmt.Errorf("media_markers[%d]: marker must not be empty", i)
		}
	}

	if pc.SessionGap <= 0 {
		return errors.New("session_gap must be positive")
	}

	if pc.NightEndHour < 0 || pc.NightEndHour > 24 {
		return fmt.Errorf("night_end_hour must be between 0 and 24, got %d", pc.NightEndHour)
	}

	return nil
}

func validateAnalytics(ac *AnalyticsConfig) error {
	if ac.BurstWindow <= 0 {
		return errors.New("burst_window must be positive")
	}

	if ac.MinTokenLength < 1 {
		return fmt.Errorf("min_token_length must be >= 1, got %d", ac.MinTokenLength)
	}

	if ac.PodiumSize < 1 {
		return fmt.Errorf("podium_size must be >= 1, got %d", ac.PodiumSize)
	}

	if n := len(ac.DayLabels); n != 0 && n != 7 {
		return fmt.Errorf("day_labels must list 7 days (Monday first), got %d", n)
	}

	return nil
}

func validateLogging(lc *LoggingConfig) error {
	if _, err := ParseLevel(lc.Level); err != nil {
		return err
	}

	switch lc.Format {
	case LogFormatText, LogFormatJSON:
	case "":
		lc.Format = DefaultLogFormat
	default:
		return fmt.Errorf("invalid format %q (must be text or json)", lc.Format)
	}

	return nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid level %q (must be debug, info, warn or error)", level)
	}
}

// ParserOptions translates the parser section into parser options.
// Validate must have been called first.
func (c *Config) ParserOptions(logger *slog.Logger) []parser.Option {
	return []parser.Option{
		parser.WithMediaMarkers(c.Parser.MediaMarkers),
		parser.WithImagePattern(c.Parser.CompiledImagePattern()),
		parser.WithSessionGap(c.Parser.SessionGap),
		parser.WithNightEndHour(c.Parser.NightEndHour),
		parser.WithLogger(logger),
	}
}

// AnalyticsOptions translates the analytics section into engine options.
func (c *Config) AnalyticsOptions(logger *slog.Logger) []analyzer.Option {
	return []analyzer.Option{
		analyzer.WithBurstWindow(c.Analytics.BurstWindow),
		analyzer.WithMinTokenLength(c.Analytics.MinTokenLength),
		analyzer.WithPodiumSize(c.Analytics.PodiumSize),
		analyzer.WithDayLabels(c.Analytics.DayLabels),
		analyzer.WithLogger(logger),
	}
}
