package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/chatretro/pkg/config"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Print bool
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a chatretro configuration file without running analysis.

Checks:
  - YAML or TOML syntax
  - Duration and range values
  - Image pattern regex validity
  - Log level and format

Environment overrides are applied before validation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Print, "print", false, "Print the effective configuration as YAML")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, opts *ValidateOptions) error {
	configPath := args[0]
	ctx := commandContext(cmd)
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Media markers:  %d\n", len(cfg.Parser.MediaMarkers))
	if cfg.Parser.ImagePattern != "" {
		fmt.Fprintf(w, "  Image pattern:  %s\n", cfg.Parser.ImagePattern)
	} else {
		fmt.Fprintf(w, "  Image pattern:  disabled\n")
	}
	fmt.Fprintf(w, "  Session gap:    %s\n", cfg.Parser.SessionGap)
	fmt.Fprintf(w, "  Night ends at:  %02d:00\n", cfg.Parser.NightEndHour)
	fmt.Fprintf(w, "  Burst window:   %s\n", cfg.Analytics.BurstWindow)
	fmt.Fprintf(w, "  Podium size:    %d\n", cfg.Analytics.PodiumSize)

	if opts.Print {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		fmt.Fprintf(w, "\n%s", data)
	}

	return nil
}
