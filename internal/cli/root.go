// Package cli provides the command-line interface for chatretro.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatretro/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chatretro",
		Short: "Statistics for exported chat conversations",
		Long: `chatretro reads a plain-text chat export and reports who talks, when,
and how.

It computes:
  - Message, word and media counts per author
  - Podiums for most messages, richest vocabulary, bursts and shouting
  - A weekday/hour activity heatmap

Lines that are not message headers are skipped. Use 'chatretro diagnose'
to see which lines were dropped and why.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&commands.Globals.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&commands.Globals.LogFormat, "log-format", "", "Log format (text|json)")
	rootCmd.PersistentFlags().StringVar(&commands.Globals.EnvFile, "env-file", "", "Load CHATRETRO_* variables from a dotenv file")

	// Add subcommands
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
