package output

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ccollicutt/chatretro/pkg/analyzer"
	"github.com/ccollicutt/chatretro/pkg/parser"
)

// maxAuthorWidth caps the author column in terminal cells.
const maxAuthorWidth = 24

// heatRamp shades heatmap cells from empty to busiest.
const heatRamp = " .:-=+*#%@"

// podiumTitles are the display names of the rankings.
var podiumTitles = map[analyzer.Criterion]string{
	analyzer.CriterionMessages: "Messages",
	analyzer.CriterionVariety:  "Variety",
	analyzer.CriterionSpam:     "Spam-O-Meter",
	analyzer.CriterionShouts:   "Shouts",
}

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "ChatRetro: %d messages, %d authors, %d media, %.1f days\n",
		report.Summary.Total,
		report.Summary.Authors,
		report.Summary.Media,
		report.Summary.TimespanDays)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== ChatRetro Report ===")
	if report.Metadata.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", report.Metadata.Source)
	}
	fmt.Fprintln(w)

	if !report.HasMessages() {
		fmt.Fprintln(w, "No messages found")
		f.formatFooter(report, w)
		return nil
	}

	f.formatAuthors(report, w)
	f.formatPodiums(report, w)
	f.formatVocabulary(report, w)
	f.formatSpam(report, w)
	f.formatHeatmap(report, w)
	f.formatFooter(report, w)
	return nil
}

func (f *TextFormatter) formatAuthors(report *Report, w io.Writer) {
	fmt.Fprintln(w, "[AUTHORS]")
	width := authorColumnWidth(report.Users, func(u analyzer.UserStats) string { return u.Author })
	for _, u := range report.Users {
		fmt.Fprintf(w, "  %s  %5d msgs  %6d words  avg %5.1f chars",
			padAuthor(u.Author, width), u.Messages, u.Words, u.AvgLength)
		if f.opts.Verbose {
			fmt.Fprintf(w, "  night %d  shouts %d  sessions %d", u.NightOwl, u.Shouts, u.SessionStarters)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatPodiums(report *Report, w io.Writer) {
	for _, p := range report.Podiums {
		title, ok := podiumTitles[p.Criterion]
		if !ok {
			title = string(p.Criterion)
		}
		fmt.Fprintf(w, "[PODIUM] %s\n", title)
		if len(p.Entries) == 0 {
			fmt.Fprintln(w, "  No entries")
		}
		width := authorColumnWidth(p.Entries, func(e analyzer.PodiumEntry) string { return e.Author })
		for _, e := range p.Entries {
			fmt.Fprintf(w, "  %d. %s  %s\n", e.Rank, padAuthor(e.Author, width), formatScore(p.Criterion, e.Score))
		}
		fmt.Fprintln(w)
	}
}

func formatScore(c analyzer.Criterion, score float64) string {
	switch c {
	case analyzer.CriterionVariety:
		return fmt.Sprintf("%.1f words/msg", score)
	case analyzer.CriterionSpam:
		return fmt.Sprintf("%.0f%% bursts", score)
	case analyzer.CriterionShouts:
		return fmt.Sprintf("%.0f shouts", score)
	default:
		return fmt.Sprintf("%.0f msgs", score)
	}
}

func (f *TextFormatter) formatVocabulary(report *Report, w io.Writer) {
	fmt.Fprintln(w, "[VOCABULARY]")
	width := authorColumnWidth(report.Vocabulary, func(v analyzer.Vocabulary) string { return v.Author })
	for _, v := range report.Vocabulary {
		fmt.Fprintf(w, "  %s  %5.1f words/msg  %5.1f%% unique\n",
			padAuthor(v.Author, width), v.Variety, v.UniqueRatio)
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatSpam(report *Report, w io.Writer) {
	fmt.Fprintln(w, "[SPAM]")
	width := authorColumnWidth(report.Spam, func(s analyzer.Spam) string { return s.Author })
	for _, s := range report.Spam {
		fmt.Fprintf(w, "  %s  %s\n", padAuthor(s.Author, width), s.Label())
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatHeatmap(report *Report, w io.Writer) {
	if len(report.Heatmap) == 0 {
		return
	}

	peak := 0
	for _, c := range report.Heatmap {
		peak = max(peak, c.Count)
	}

	var labels [7]string
	var rows [7][24]int
	for _, c := range report.Heatmap {
		if c.DayIndex < 0 || c.DayIndex >= len(rows) || c.Hour < 0 || c.Hour >= len(rows[0]) {
			continue
		}
		labels[c.DayIndex] = c.Day
		rows[c.DayIndex][c.Hour] = c.Count
	}

	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l))
	}

	fmt.Fprintln(w, "[HEATMAP]")
	fmt.Fprintf(w, "  %s  ", strings.Repeat(" ", labelWidth))
	for h := 0; h < 24; h += 6 {
		fmt.Fprintf(w, "%-6d", h)
	}
	fmt.Fprintln(w)
	for day, row := range rows {
		var b strings.Builder
		for _, count := range row {
			b.WriteByte(shade(count, peak))
		}
		fmt.Fprintf(w, "  %s  %s\n", runewidth.FillRight(labels[day], labelWidth), b.String())
	}
	if f.opts.Verbose {
		fmt.Fprintf(w, "  Peak: %d messages in one hour slot\n", peak)
	}
	fmt.Fprintln(w)
}

// shade maps a count onto heatRamp relative to the busiest cell.
func shade(count, peak int) byte {
	if count <= 0 || peak <= 0 {
		return heatRamp[0]
	}
	idx := 1 + (count*(len(heatRamp)-2))/peak
	return heatRamp[min(idx, len(heatRamp)-1)]
}

func (f *TextFormatter) formatFooter(report *Report, w io.Writer) {
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d messages from %d authors, %d media, spanning %.1f days\n",
		report.Summary.Total,
		report.Summary.Authors,
		report.Summary.Media,
		report.Summary.TimespanDays)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Lines read: %d\n", report.Metadata.LinesRead)
		reasons := make([]parser.SkipReason, 0, len(report.Metadata.Skipped))
		for r := range report.Metadata.Skipped {
			reasons = append(reasons, r)
		}
		slices.Sort(reasons)
		for _, r := range reasons {
			fmt.Fprintf(w, "Skipped (%s): %d\n", r, report.Metadata.Skipped[r])
		}
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}
}

func authorColumnWidth[T any](rows []T, author func(T) string) int {
	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(author(r)))
	}
	return min(width, maxAuthorWidth)
}

// padAuthor fits a name into width terminal cells, truncating long names.
func padAuthor(name string, width int) string {
	if runewidth.StringWidth(name) > width {
		name = runewidth.Truncate(name, width, "…")
	}
	return runewidth.FillRight(name, width)
}
