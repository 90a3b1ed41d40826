package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatretro/internal/logging"
	"github.com/ccollicutt/chatretro/pkg/config"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// GlobalOptions holds flags shared by every command.
type GlobalOptions struct {
	LogLevel  string
	LogFormat string
	EnvFile   string
}

// Globals is bound to the root command's persistent flags.
var Globals = &GlobalOptions{}

// loadConfig resolves the configuration and applies the global flags on top.
// Flags win over the environment, which wins over the file.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if Globals.EnvFile != "" {
		if err := config.LoadEnvFile(Globals.EnvFile); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Resolve(ctx, path)
	if err != nil {
		return nil, err
	}

	if Globals.LogLevel == "" && Globals.LogFormat == "" {
		return cfg, nil
	}

	if Globals.LogLevel != "" {
		cfg.Logging.Level = Globals.LogLevel
	}
	if Globals.LogFormat != "" {
		cfg.Logging.Format = config.LogFormat(Globals.LogFormat)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// newLogger builds the command logger, writing to the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	opts := logging.FromConfig(cfg.Logging)
	opts.Output = cmd.ErrOrStderr()
	return logging.New(opts)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
