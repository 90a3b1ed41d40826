package commands

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatretro/pkg/analyzer"
	"github.com/ccollicutt/chatretro/pkg/output"
	"github.com/ccollicutt/chatretro/pkg/parser"
)

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	Output     string
	ConfigPath string
	Podiums    []string
	Users      []string
	Verbose    bool
	Quiet      bool
	Progress   bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <export-file>",
		Short: "Compute statistics for a chat export",
		Long: `Analyze a chat export and print its statistics.

Reports:
  - Message, word and media counts per author
  - Podiums (messages, variety, spam, shouts)
  - Vocabulary richness and burst messages
  - Weekday/hour activity heatmap

Exit codes:
  0 - Analysis complete
  1 - No messages found in the export
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (.yaml, .yml or .toml)")
	cmd.Flags().StringSliceVar(&opts.Podiums, "podium", nil, "Podium criteria to show (messages|variety|spam|shouts, can be repeated)")
	cmd.Flags().StringSliceVar(&opts.Users, "user", nil, "Limit per-author sections to these authors (can be repeated)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show per-author detail, skipped lines and timing")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
	cmd.Flags().BoolVar(&opts.Progress, "progress", false, "Report loading progress on stderr")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	ExitCode = 0
	exportPath := args[0]
	ctx := commandContext(cmd)
	start := time.Now()

	cfg, err := loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cmd, cfg)

	criteria, err := parseCriteria(opts.Podiums)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	var notifier parser.Notifier
	if opts.Progress {
		notifier = progressNotifier(cmd.ErrOrStderr())
	}

	p := parser.New(cfg.ParserOptions(logger)...)
	snap, err := parser.LoadFile(exportPath, p, notifier)
	if err != nil {
		return fmt.Errorf("loading export: %w", err)
	}

	authors := snap.Authors()
	for _, u := range opts.Users {
		if !slices.Contains(authors, u) {
			logger.Warn("author not found in export", "author", u)
		}
	}

	engine := analyzer.New(cfg.AnalyticsOptions(logger)...)
	report := output.NewReport(snap, engine, output.ReportOptions{
		Criteria: criteria,
		Authors:  opts.Users,
	})
	report.Metadata.Source = exportPath
	report.Metadata.ConfigFile = opts.ConfigPath
	report.Metadata.AnalyzedAt = time.Now()
	report.Metadata.Duration = time.Since(start)

	logger.Debug("analysis complete",
		"source", exportPath,
		"messages", report.Summary.Total,
		"authors", report.Summary.Authors,
		"skipped", report.SkippedLines(),
		"duration", report.Metadata.Duration)

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Set exit code based on results
	if !report.HasMessages() {
		ExitCode = 1
	}

	return nil
}

// parseCriteria resolves podium names. Unknown names are rejected here
// rather than silently ranked by messages.
func parseCriteria(names []string) ([]analyzer.Criterion, error) {
	criteria := make([]analyzer.Criterion, 0, len(names))
	for _, name := range names {
		c, ok := analyzer.ParseCriterion(name)
		if !ok {
			return nil, fmt.Errorf("unknown podium criterion %q (use messages, variety, spam or shouts)", name)
		}
		if !slices.Contains(criteria, c) {
			criteria = append(criteria, c)
		}
	}
	return criteria, nil
}

func progressNotifier(w io.Writer) parser.Notifier {
	return parser.NotifierFuncs{
		OnProgress: func(percent float64) {
			fmt.Fprintf(w, "\rLoading... %3.0f%%", percent)
		},
		OnComplete: func() {
			fmt.Fprintln(w)
		},
	}
}
