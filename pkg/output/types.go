// Package output provides formatting and output generation for chat statistics.
package output

import (
	"time"

	"github.com/ccollicutt/chatretro/pkg/analyzer"
	"github.com/ccollicutt/chatretro/pkg/parser"
)

// Report is the complete analysis output for one export.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// MessageCounts maps each author to their message count.
	MessageCounts map[string]int `json:"message_counts"`

	// Users holds per-author statistics in author order.
	Users []analyzer.UserStats `json:"users"`

	// Vocabulary holds per-author vocabulary richness.
	Vocabulary []analyzer.Vocabulary `json:"vocabulary"`

	// Spam holds per-author burst counts.
	Spam []analyzer.Spam `json:"spam"`

	// Podiums holds one ranking per requested criterion.
	Podiums []Podium `json:"podiums"`

	// Heatmap holds all weekday/hour cells, Monday first.
	Heatmap []analyzer.HeatCell `json:"heatmap"`

	// Metadata provides context about the analysis.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	analyzer.GlobalStats

	// Authors is the number of distinct authors.
	Authors int `json:"authors"`
}

// Podium is a ranking for one criterion.
type Podium struct {
	Criterion analyzer.Criterion     `json:"criterion"`
	Entries   []analyzer.PodiumEntry `json:"entries"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// Source is the export file that was analyzed.
	Source string `json:"source,omitempty"`

	// ConfigFile is the configuration file used, if any.
	ConfigFile string `json:"config_file,omitempty"`

	// LinesRead is the number of raw lines examined.
	LinesRead int `json:"lines_read"`

	// Skipped counts dropped lines by reason.
	Skipped map[parser.SkipReason]int `json:"skipped"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long loading and analysis took.
	Duration time.Duration `json:"duration"`
}

// ReportOptions selects what goes into a report.
type ReportOptions struct {
	// Criteria lists the podiums to build. Empty means all criteria.
	Criteria []analyzer.Criterion

	// Authors restricts per-author sections. Empty means all authors.
	Authors []string
}

// NewReport runs every query of the engine against the snapshot.
func NewReport(snap *parser.Snapshot, engine *analyzer.Engine, opts ReportOptions) *Report {
	criteria := opts.Criteria
	if len(criteria) == 0 {
		criteria = analyzer.Criteria
	}

	report := &Report{
		Summary: Summary{
			GlobalStats: engine.GlobalStats(snap),
			Authors:     len(snap.Authors()),
		},
		MessageCounts: engine.MessageCountsByAuthor(snap),
		Heatmap:       engine.Heatmap(snap),
		Metadata: Metadata{
			LinesRead: snap.LinesRead(),
			Skipped:   snap.SkipCounts(),
		},
	}

	keep := authorFilter(opts.Authors)

	for _, u := range engine.AllUserStats(snap) {
		if keep(u.Author) {
			report.Users = append(report.Users, u)
		}
	}
	for _, v := range engine.VocabularyRichness(snap) {
		if keep(v.Author) {
			report.Vocabulary = append(report.Vocabulary, v)
		}
	}
	for _, s := range engine.SpamMetrics(snap) {
		if keep(s.Author) {
			report.Spam = append(report.Spam, s)
		}
	}

	for _, c := range criteria {
		report.Podiums = append(report.Podiums, Podium{
			Criterion: c,
			Entries:   engine.Podium(snap, c),
		})
	}

	return report
}

func authorFilter(authors []string) func(string) bool {
	if len(authors) == 0 {
		return func(string) bool { return true }
	}
	set := make(map[string]bool, len(authors))
	for _, a := range authors {
		set[a] = true
	}
	return func(author string) bool { return set[author] }
}

// HasMessages returns true if the export produced any message.
func (r *Report) HasMessages() bool {
	return r.Summary.Total > 0
}

// SkippedLines returns the total number of dropped lines.
func (r *Report) SkippedLines() int {
	total := 0
	for _, n := range r.Metadata.Skipped {
		total += n
	}
	return total
}
