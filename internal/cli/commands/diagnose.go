package commands

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatretro/pkg/config"
	"github.com/ccollicutt/chatretro/pkg/detector"
	"github.com/ccollicutt/chatretro/pkg/parser"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	ConfigPath  string
	Samples     int
	SampleLines int
	Verbose     bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <export-file>",
		Short: "Diagnose why lines of an export are not parsed",
		Long: `Diagnose common problems with a chat export.

This command checks:
- Export file existence and accessibility
- Configuration file validity
- How many lines match the message header, with skip reasons
- Which header layout the export uses
- Whether skipped lines look like another export dialect

Example:
  chatretro diagnose chat.txt
  chatretro diagnose -v --samples 5 chat.txt  # verbose output`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (.yaml, .yml or .toml)")
	cmd.Flags().IntVar(&opts.Samples, "samples", 3, "Sample lines to show per skip reason")
	cmd.Flags().IntVar(&opts.SampleLines, "sample-lines", 100, "Lines to sample when detecting the export layout")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(cmd *cobra.Command, exportPath string, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}
	w := cmd.OutOrStdout()

	// 1. Check export file existence
	result := checkExportExists(exportPath)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 2. Load configuration
	cfg, result := checkConfig(cmd, opts.ConfigPath)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 3. Detect the header layout
	results = append(results, checkFormat(cmd, exportPath, opts))

	// 4. Parse the export
	p := parser.New(cfg.ParserOptions(newLogger(cmd, cfg))...)
	snap, err := parser.LoadFile(exportPath, p, nil)
	if err != nil {
		results = append(results, DiagnosticResult{
			Check:    "Export Read",
			Status:   "error",
			Message:  fmt.Sprintf("Cannot read file: %v", err),
			Suggests: []string{"Check file permissions"},
		})
		printDiagnostics(w, results, opts)
		return nil
	}

	// 5. Header matching and skip reasons
	results = append(results, checkHeaders(snap, opts))

	// 6. Skipped lines that look like another dialect
	results = append(results, checkDialects(snap, opts)...)

	// 7. Authors
	results = append(results, checkAuthors(snap, opts))

	printDiagnostics(w, results, opts)
	return nil
}

func checkExportExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Export File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Export file not found: %s", path)
		result.Suggests = []string{"Check the file path is correct"}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access export file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		result.Suggests = []string{"Unzip the export and point at the .txt file inside"}
		return result
	}
	if info.Size() == 0 {
		result.Status = "warning"
		result.Message = "Export file is empty (0 bytes)"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkConfig(cmd *cobra.Command, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Configuration",
	}

	cfg, err := loadConfig(commandContext(cmd), path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to load config: %v", err)
		result.Suggests = []string{
			"Run 'chatretro validate " + path + "' for details",
		}
		return nil, result
	}

	result.Status = "ok"
	if path == "" {
		result.Message = "No config file, using defaults"
	} else {
		result.Message = fmt.Sprintf("Loaded %s", path)
	}
	result.Details = []string{
		fmt.Sprintf("Media markers: %q", cfg.Parser.MediaMarkers),
		fmt.Sprintf("Image pattern: %s", cfg.Parser.ImagePattern),
		fmt.Sprintf("Session gap: %s", cfg.Parser.SessionGap),
	}
	return cfg, result
}

func checkHeaders(snap *parser.Snapshot, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Message Headers",
	}

	lines := snap.LinesRead()
	matched := snap.Len()
	counts := snap.SkipCounts()

	switch {
	case lines == 0:
		result.Status = "warning"
		result.Message = "Export contains no lines"
		return result
	case matched == 0:
		result.Status = "error"
		result.Message = fmt.Sprintf("No line out of %d matches the message header", lines)
		result.Suggests = []string{
			"Expected lines like 'dd/mm/yyyy, hh:mm - Author: text'",
		}
	case matched < lines/2:
		result.Status = "warning"
		result.Message = fmt.Sprintf("Only %d/%d lines are messages", matched, lines)
		result.Suggests = []string{
			"Multi-line messages are dropped after their first line",
		}
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("%d/%d lines are messages", matched, lines)
	}

	reasons := make([]parser.SkipReason, 0, len(counts))
	for r := range counts {
		reasons = append(reasons, r)
	}
	slices.Sort(reasons)

	samples := make(map[parser.SkipReason][]string)
	for _, sk := range snap.Skipped() {
		if len(samples[sk.Reason]) < opts.Samples {
			samples[sk.Reason] = append(samples[sk.Reason],
				fmt.Sprintf("line %d: %s", sk.Line, truncate(sk.Raw, 80)))
		}
	}

	for _, r := range reasons {
		result.Details = append(result.Details, fmt.Sprintf("Skipped (%s): %d", r, counts[r]))
		result.Details = append(result.Details, samples[r]...)
	}

	if counts[parser.SkipInvalidTimestamp] > 0 {
		result.Suggests = append(result.Suggests,
			"Some headers carry impossible dates; the export may use mm/dd/yyyy")
	}

	return result
}

func checkFormat(cmd *cobra.Command, path string, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Export Format",
	}

	d := detector.New(detector.WithSampleSize(opts.SampleLines))
	detResult, err := d.DetectFromFile(commandContext(cmd), path)
	if err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Cannot sample file: %v", err)
		return result
	}

	best := detResult.BestMatch()
	switch {
	case best == nil:
		result.Status = "warning"
		result.Message = fmt.Sprintf("No known header layout in the first %d lines", detResult.SampledLines)
		result.Suggests = []string{
			"Expected lines like 'dd/mm/yyyy, hh:mm - Author: text'",
		}
		return result
	case best.Dialect.Supported:
		result.Status = "ok"
	default:
		result.Status = "error"
		result.Suggests = []string{best.Dialect.Hint}
	}

	result.Message = fmt.Sprintf("Detected: %s (%.0f%% of %d sampled lines)",
		best.Dialect.Name, best.Confidence*100, detResult.SampledLines)
	result.Details = []string{
		"Sample:",
		truncate(best.SampleLine, 80),
	}
	if detResult.AmbiguityNote != "" {
		result.Suggests = append(result.Suggests, detResult.AmbiguityNote)
	}
	return result
}

func checkDialects(snap *parser.Snapshot, opts *DiagnoseOptions) []DiagnosticResult {
	results := []DiagnosticResult{}

	skipped := snap.Skipped()
	lines := make([]string, 0, len(skipped))
	for _, sk := range skipped {
		lines = append(lines, sk.Raw)
	}

	detResult := detector.New().DetectFromLines(lines)
	for _, m := range detResult.Unsupported() {
		results = append(results, DiagnosticResult{
			Check:    fmt.Sprintf("Dialect: %s", m.Dialect.Name),
			Status:   "warning",
			Message:  fmt.Sprintf("%d skipped line(s) look like %s", m.MatchCount, m.Dialect.Name),
			Details:  []string{"Sample:", truncate(m.SampleLine, 80)},
			Suggests: []string{m.Dialect.Hint},
		})
	}

	if len(results) == 0 && opts.Verbose {
		results = append(results, DiagnosticResult{
			Check:   "Dialect",
			Status:  "ok",
			Message: "No skipped line matches a known foreign layout",
		})
	}

	return results
}

func checkAuthors(snap *parser.Snapshot, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Authors",
	}

	authors := snap.Authors()
	switch {
	case len(authors) == 0:
		result.Status = "warning"
		result.Message = "No authors found"
		return result
	case slices.Contains(authors, ""):
		result.Status = "warning"
		result.Message = fmt.Sprintf("%d author(s), one with an empty name", len(authors))
		result.Suggests = []string{"Lines like '... - : text' produce an empty author"}
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("%d author(s)", len(authors))
	}

	if opts.Verbose {
		for _, a := range authors {
			result.Details = append(result.Details, fmt.Sprintf("%q", a))
		}
	}
	return result
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== chatretro Export Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		// Status icon
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	// Summary
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before running analysis.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nExport is usable but some lines will be ignored.")
	} else {
		fmt.Fprintln(w, "\nExport looks good!")
	}
}

// truncate shortens s to at most maxWidth terminal cells.
func truncate(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "...")
}
