// Package detector recognizes the header layout of chat export files.
package detector

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"
)

const defaultSampleSize = 100

// mmddNote is attached to results whose best dialect is usually month-first.
const mmddNote = "This dialect usually writes dates as mm/dd. " +
	"chatretro reads dd/mm/yyyy, so re-export with a day-first date format."

// DetectionResult holds the result of analyzing an export.
type DetectionResult struct {
	Matches       []DialectMatch // Dialects that matched, most lines first
	SampledLines  int            // Non-blank lines examined
	ParsedLines   int            // Lines matched by the best dialect
	AmbiguityNote string         // Set when the best dialect is usually mm/dd
}

// DialectMatch is one dialect and the share of sampled lines it matched.
type DialectMatch struct {
	Dialect    *Dialect
	Confidence float64   // MatchCount / SampledLines
	MatchCount int       // Lines whose header matched and whose timestamp parsed
	SampleLine string    // First matching line
	ParsedTime time.Time // Timestamp of SampleLine
}

// Detector samples export lines to identify their dialect.
type Detector struct {
	dialects   []*Dialect
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets how many non-blank lines DetectFromFile reads.
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a Detector over DefaultDialects.
func New(opts ...Option) *Detector {
	d := &Detector{
		dialects:   DefaultDialects(),
		sampleSize: defaultSampleSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples the head of an export and reports the dialects it
// uses.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	lines, err := d.head(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("sampling %s: %w", path, err)
	}
	return d.DetectFromLines(lines), nil
}

// head returns the first sampleSize non-blank lines of r.
func (d *Detector) head(ctx context.Context, r io.Reader) ([]string, error) {
	lines := make([]string, 0, d.sampleSize)
	sc := bufio.NewScanner(r)
	for len(lines) < d.sampleSize && sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(sc.Text()) != "" {
			lines = append(lines, sc.Text())
		}
	}
	return lines, sc.Err()
}

// DetectFromLines matches every non-blank line against every dialect. A line
// counts for a dialect only when its timestamp is a real date and time.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	tally := make([]DialectMatch, len(d.dialects))
	result := &DetectionResult{}

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.SampledLines++

		for i, dialect := range d.dialects {
			ts, ok := dialect.match(line)
			if !ok {
				continue
			}
			m := &tally[i]
			if m.MatchCount == 0 {
				m.Dialect = dialect
				m.SampleLine = line
				m.ParsedTime = ts
			}
			m.MatchCount++
		}
	}

	for _, m := range tally {
		if m.MatchCount == 0 {
			continue
		}
		m.Confidence = float64(m.MatchCount) / float64(result.SampledLines)
		result.Matches = append(result.Matches, m)
	}
	if len(result.Matches) == 0 {
		return result
	}

	// Ties go to the dialect the parser can read, then by name.
	slices.SortFunc(result.Matches, func(a, b DialectMatch) int {
		if c := cmp.Compare(b.MatchCount, a.MatchCount); c != 0 {
			return c
		}
		if a.Dialect.Supported != b.Dialect.Supported {
			if a.Dialect.Supported {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Dialect.Name, b.Dialect.Name)
	})

	best := result.Matches[0]
	result.ParsedLines = best.MatchCount
	if best.Dialect.Ambiguous {
		result.AmbiguityNote = mmddNote
	}
	return result
}

// match reports whether line opens with this dialect's header and returns
// the parsed timestamp.
func (dl *Dialect) match(line string) (time.Time, bool) {
	m := dl.Pattern.FindStringSubmatch(line)
	if len(m) < 2 {
		return time.Time{}, false
	}
	return parseTimestamp(m[1], dl.Layout)
}

// parseTimestamp validates a captured timestamp against its layout.
func parseTimestamp(ts, layout string) (time.Time, bool) {
	// Recent exports put a narrow no-break space before AM/PM.
	ts = strings.ReplaceAll(ts, "\u202f", " ")
	t, err := time.Parse(layout, ts)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BestMatch returns the dialect with the most matching lines, or nil.
func (r *DetectionResult) BestMatch() *DialectMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one dialect matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}

// Unsupported returns the matches for dialects the parser cannot read.
func (r *DetectionResult) Unsupported() []DialectMatch {
	var out []DialectMatch
	for _, m := range r.Matches {
		if !m.Dialect.Supported {
			out = append(out, m)
		}
	}
	return out
}
