// Package config provides configuration loading and validation for chatretro.
package config

import (
	"regexp"
	"time"
)

// Config is the root configuration structure loaded from YAML or TOML.
type Config struct {
	Parser    ParserConfig    `yaml:"parser" toml:"parser"`
	Analytics AnalyticsConfig `yaml:"analytics" toml:"analytics"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// ParserConfig controls how message features are derived.
type ParserConfig struct {
	// MediaMarkers are placeholder strings that mark a media message.
	MediaMarkers []string `yaml:"media_markers" toml:"media_markers"`

	// ImagePattern is a regex matching attachment filenames.
	// An empty pattern disables filename detection.
	ImagePattern string `yaml:"image_pattern" toml:"image_pattern"`

	// SessionGap is the silence after which a message starts a new session.
	SessionGap time.Duration `yaml:"session_gap" toml:"session_gap"`

	// NightEndHour is the hour before which a message counts as a night message.
	NightEndHour int `yaml:"night_end_hour" toml:"night_end_hour"`

	// compiledImagePattern is populated during validation.
	compiledImagePattern *regexp.Regexp
}

// CompiledImagePattern returns the compiled image pattern, nil when disabled.
func (p *ParserConfig) CompiledImagePattern() *regexp.Regexp {
	return p.compiledImagePattern
}

// AnalyticsConfig controls the statistics engine.
type AnalyticsConfig struct {
	// BurstWindow is the gap under which a message counts as a burst.
	BurstWindow time.Duration `yaml:"burst_window" toml:"burst_window"`

	// MinTokenLength is the shortest word kept for vocabulary stats.
	MinTokenLength int `yaml:"min_token_length" toml:"min_token_length"`

	// PodiumSize is how many authors a ranking returns.
	PodiumSize int `yaml:"podium_size" toml:"podium_size"`

	// DayLabels optionally renames the weekdays, Monday first.
	DayLabels []string `yaml:"day_labels,omitempty" toml:"day_labels,omitempty"`
}

// LogFormat selects the log handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" toml:"level"`

	// Format is text or json.
	Format LogFormat `yaml:"format" toml:"format"`
}
