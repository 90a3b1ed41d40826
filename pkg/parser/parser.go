package parser

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"
)

// Parser converts export text into snapshots.
// A Parser holds only configuration and may be shared between goroutines.
type Parser struct {
	media        mediaDetector
	sessionGap   time.Duration
	nightEndHour int
	logger       *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithMediaMarkers replaces the media-omitted placeholder strings.
func WithMediaMarkers(markers []string) Option {
	return func(p *Parser) {
		p.media.markers = slices.Clone(markers)
	}
}

// WithImagePattern replaces the attachment filename pattern. A nil pattern disables it.
func WithImagePattern(re *regexp.Regexp) Option {
	return func(p *Parser) {
		p.media.image = re
	}
}

// WithSessionGap sets the silence after which a message opens a new session.
func WithSessionGap(d time.Duration) Option {
	return func(p *Parser) {
		if d > 0 {
			p.sessionGap = d
		}
	}
}

// WithNightEndHour sets the hour before which messages count as night messages.
func WithNightEndHour(hour int) Option {
	return func(p *Parser) {
		if hour >= 0 && hour <= 24 {
			p.nightEndHour = hour
		}
	}
}

// WithLogger sets the logger used for skipped-line diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Parser with default settings.
func New(opts ...Option) *Parser {
	p := &Parser{
		media: mediaDetector{
			markers: slices.Clone(DefaultMediaMarkers),
			image:   regexp.MustCompile(DefaultImagePattern),
		},
		sessionGap:   DefaultSessionGap,
		nightEndHour: DefaultNightEndHour,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LineResult is the outcome of parsing a single line.
type LineResult struct {
	Message Message
	Reason  SkipReason
}

// OK returns true if the line produced a message.
func (r LineResult) OK() bool {
	return r.Reason == SkipNone
}

// ParseLine parses one line in isolation. Delta and session fields are left
// zero because they depend on the surrounding lines.
func (p *Parser) ParseLine(line string) LineResult {
	h, reason := ParseHeader(line)
	if reason != SkipNone {
		return LineResult{Reason: reason}
	}
	return LineResult{Message: p.buildMessage(h, 0)}
}

// Parse parses the full text of an export. It never fails: lines that do not
// produce a message are recorded in the snapshot's skip list.
// Continuation lines of multi-line messages are dropped, not appended.
func (p *Parser) Parse(text string) *Snapshot {
	lines := strings.Split(text, "\n")
	// A trailing newline does not introduce an extra line.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	snap := &Snapshot{
		messages: make([]Message, 0, len(lines)),
		lines:    len(lines),
	}

	var prev *time.Time
	for i, line := range lines {
		lineNum := i + 1

		h, reason := ParseHeader(line)
		if reason != SkipNone {
			snap.skipped = append(snap.skipped, SkippedLine{Line: lineNum, Raw: line, Reason: reason})
			p.logger.LogAttrs(context.Background(), slog.LevelDebug, "skipping line",
				slog.Int("line", lineNum),
				slog.String("reason", string(reason)))
			continue
		}

		msg := p.buildMessage(h, lineNum)
		if prev != nil {
			msg.SincePrevious = msg.Timestamp.Sub(*prev)
		}
		msg.IsNewSession = prev == nil || msg.SincePrevious > p.sessionGap

		snap.messages = append(snap.messages, msg)
		ts := msg.Timestamp
		prev = &ts
	}

	snap.authors = collectAuthors(snap.messages)

	p.logger.Debug("parsed export",
		"lines", snap.lines,
		"messages", len(snap.messages),
		"skipped", len(snap.skipped),
		"authors", len(snap.authors))

	return snap
}

func collectAuthors(messages []Message) []string {
	seen := make(map[string]bool)
	authors := make([]string, 0)
	for _, m := range messages {
		if !seen[m.Author] {
			seen[m.Author] = true
			authors = append(authors, m.Author)
		}
	}
	slices.Sort(authors)
	return authors
}
