package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ccollicutt/chatretro/pkg/analyzer"
	"github.com/ccollicutt/chatretro/pkg/parser"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestLoad_ValidYAML(t *testing.T) {
	content := `
parser:
  media_markers: ["<attached>"]
  image_pattern: 'PHOTO-\d+'
  session_gap: 2h
  night_end_hour: 5
analytics:
  burst_window: 15s
  min_token_length: 4
  podium_size: 5
  day_labels: [Lundi, Mardi, Mercredi, Jeudi, Vendredi, Samedi, Dimanche]
logging:
  level: debug
  format: json
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(cfg.Parser.MediaMarkers, []string{"<attached>"}) {
		t.Errorf("MediaMarkers = %v", cfg.Parser.MediaMarkers)
	}
	if cfg.Parser.SessionGap != 2*time.Hour {
		t.Errorf("SessionGap = %v, want 2h", cfg.Parser.SessionGap)
	}
	if cfg.Parser.NightEndHour != 5 {
		t.Errorf("NightEndHour = %d, want 5", cfg.Parser.NightEndHour)
	}
	if cfg.Parser.CompiledImagePattern() == nil || !cfg.Parser.CompiledImagePattern().MatchString("PHOTO-12") {
		t.Error("image pattern not compiled")
	}
	if cfg.Analytics.BurstWindow != 15*time.Second {
		t.Errorf("BurstWindow = %v, want 15s", cfg.Analytics.BurstWindow)
	}
	if cfg.Analytics.MinTokenLength != 4 || cfg.Analytics.PodiumSize != 5 {
		t.Errorf("Analytics = %+v", cfg.Analytics)
	}
	if len(cfg.Analytics.DayLabels) != 7 {
		t.Errorf("DayLabels = %v", cfg.Analytics.DayLabels)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != LogFormatJSON {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_ValidTOML(t *testing.T) {
	content := `
[parser]
session_gap = "3h"
night_end_hour = 4

[analytics]
burst_window = "5s"
podium_size = 2

[logging]
level = "warn"
`
	path := writeTempFile(t, "config.toml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Parser.SessionGap != 3*time.Hour {
		t.Errorf("SessionGap = %v, want 3h", cfg.Parser.SessionGap)
	}
	if cfg.Analytics.BurstWindow != 5*time.Second {
		t.Errorf("BurstWindow = %v, want 5s", cfg.Analytics.BurstWindow)
	}
	if cfg.Analytics.PodiumSize != 2 {
		t.Errorf("PodiumSize = %d, want 2", cfg.Analytics.PodiumSize)
	}
	// Unset keys keep their defaults.
	if cfg.Analytics.MinTokenLength != analyzer.DefaultMinTokenLength {
		t.Errorf("MinTokenLength = %d, want default", cfg.Analytics.MinTokenLength)
	}
	if !reflect.DeepEqual(cfg.Parser.MediaMarkers, parser.DefaultMediaMarkers) {
		t.Errorf("MediaMarkers = %v, want defaults", cfg.Parser.MediaMarkers)
	}
}

func TestLoad_PartialYAMLKeepsDefaults(t *testing.T) {
	path := writeTempFile(t, "config.yml", "analytics:\n  podium_size: 1\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Parser.SessionGap != parser.DefaultSessionGap {
		t.Errorf("SessionGap = %v, want default", cfg.Parser.SessionGap)
	}
	if cfg.Parser.CompiledImagePattern() == nil {
		t.Error("default image pattern should be compiled")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTempFile(t, "invalid.yaml", `invalid: yaml: content: [`)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeTempFile(t, "invalid.toml", `[parser`)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid TOML")
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "config.json", `{}`)
	_, err := Load(context.Background(), path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvSessionGap, "90m")

	path := writeTempFile(t, "config.yaml", "logging:\n  level: debug\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Level = %q, want error", cfg.Logging.Level)
	}
	if cfg.Parser.SessionGap != 90*time.Minute {
		t.Errorf("SessionGap = %v, want 90m", cfg.Parser.SessionGap)
	}
}

func TestResolve_InvalidEnvironment(t *testing.T) {
	t.Setenv(EnvSessionGap, "forever")
	if _, err := Resolve(context.Background(), ""); err == nil {
		t.Error("Resolve() expected error for invalid session gap")
	}
}

func TestLoadEnvFile(t *testing.T) {
	// t.Setenv restores the variables after the test; unset them so the
	// dotenv file is the only source.
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvSessionGap, "")
	os.Unsetenv(EnvLogLevel)
	os.Unsetenv(EnvSessionGap)

	path := writeTempFile(t, ".env", EnvSessionGap+"=45m\n"+EnvLogLevel+"=warn\n")
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}

	cfg, err := Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.Parser.SessionGap != 45*time.Minute {
		t.Errorf("SessionGap = %v, want 45m", cfg.Parser.SessionGap)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadEnvFile_KeepsExisting(t *testing.T) {
	t.Setenv(EnvSessionGap, "2h")

	path := writeTempFile(t, ".env", EnvSessionGap+"=45m\n")
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv(EnvSessionGap); got != "2h" {
		t.Errorf("%s = %q, want 2h", EnvSessionGap, got)
	}
}

func TestLoadEnvFile_NotFound(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("LoadEnvFile() expected error for missing file")
	}
}

func TestResolve_Defaults(t *testing.T) {
	cfg, err := Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.Parser.SessionGap != 6*time.Hour {
		t.Errorf("SessionGap = %v, want 6h", cfg.Parser.SessionGap)
	}
	if cfg.Analytics.BurstWindow != 10*time.Second {
		t.Errorf("BurstWindow = %v, want 10s", cfg.Analytics.BurstWindow)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"invalid image pattern", func(c *Config) { c.Parser.ImagePattern = "[invalid" }, true},
		{"image pattern disabled", func(c *Config) { c.Parser.ImagePattern = "" }, false},
		{"empty marker", func(c *Config) { c.Parser.MediaMarkers = []string{""} }, true},
		{"no markers", func(c *Config) { c.Parser.MediaMarkers = nil }, false},
		{"zero session gap", func(c *Config) { c.Parser.SessionGap = 0 }, true},
		{"night hour too large", func(c *Config) { c.Parser.NightEndHour = 25 }, true},
		{"night hour negative", func(c *Config) { c.Parser.NightEndHour = -1 }, true},
		{"zero burst window", func(c *Config) { c.Analytics.BurstWindow = 0 }, true},
		{"zero token length", func(c *Config) { c.Analytics.MinTokenLength = 0 }, true},
		{"zero podium", func(c *Config) { c.Analytics.PodiumSize = 0 }, true},
		{"three day labels", func(c *Config) { c.Analytics.DayLabels = []string{"a", "b", "c"} }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"empty log format", func(c *Config) { c.Logging.Format = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parser.SessionGap = time.Hour
	cfg.Parser.MediaMarkers = []string{"<gone>"}
	cfg.Analytics.PodiumSize = 1
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	logger := slog.New(slog.DiscardHandler)
	p := parser.New(cfg.ParserOptions(logger)...)
	snap := p.Parse("01/01/2024, 09:00 - Alice: <gone>\n01/01/2024, 10:30 - Bob: hi\n01/01/2024, 10:31 - Bob: yo\n")

	msgs := snap.Messages()
	if !msgs[0].IsMedia {
		t.Error("custom marker not applied")
	}
	if !msgs[1].IsNewSession {
		t.Error("custom session gap not applied")
	}

	e := analyzer.New(cfg.AnalyticsOptions(logger)...)
	if got := e.Podium(snap, analyzer.CriterionMessages); len(got) != 1 || got[0].Author != "Bob" {
		t.Errorf("Podium() = %+v, want only Bob", got)
	}
}
