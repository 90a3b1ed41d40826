// Package parser turns exported chat-log text into typed message records.
package parser

import (
	"slices"
	"time"
)

// Message is a single chat message parsed from a header line.
type Message struct {
	// Timestamp is the wall-clock time written in the export.
	// It carries no zone information and is stored as UTC.
	Timestamp time.Time `json:"timestamp"`

	// Author is the display name exactly as written before the first ": ".
	Author string `json:"author"`

	// Text is the raw message body.
	Text string `json:"text"`

	// Line is the 1-based line number in the source text.
	Line int `json:"line"`

	Hour    int `json:"hour"`
	Weekday int `json:"weekday"` // 0=Monday .. 6=Sunday

	WordCount    int `json:"word_count"`
	CharLength   int `json:"char_length"`
	Exclamations int `json:"exclamations"`

	IsMedia   bool `json:"is_media"`
	IsNight   bool `json:"is_night"`
	IsAllCaps bool `json:"is_all_caps"`

	// SincePrevious is the gap from the previous parsed message, zero for the first.
	// It is negative when the export goes back in time.
	SincePrevious time.Duration `json:"since_previous"`

	// IsNewSession marks the first message and any message after a long silence.
	IsNewSession bool `json:"is_new_session"`
}

// SecondsSincePrevious returns SincePrevious in seconds.
func (m *Message) SecondsSincePrevious() float64 {
	return m.SincePrevious.Seconds()
}

// SkipReason explains why a line did not produce a message.
type SkipReason string

const (
	// SkipNone means the line produced a message.
	SkipNone SkipReason = ""

	// SkipNotHeader means the line does not match the header grammar.
	SkipNotHeader SkipReason = "not_header"

	// SkipInvalidTimestamp means the header matched but its date or time is impossible.
	SkipInvalidTimestamp SkipReason = "invalid_timestamp"
)

// SkippedLine records a line that was dropped during parsing.
type SkippedLine struct {
	Line   int        `json:"line"`
	Raw    string     `json:"raw"`
	Reason SkipReason `json:"reason"`
}

// Snapshot is the immutable result of one parse call.
// Accessors return copies so callers cannot mutate shared state.
type Snapshot struct {
	messages []Message
	authors  []string
	skipped  []SkippedLine
	lines    int
}

// Len returns the number of parsed messages.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.messages)
}

// Messages returns the parsed messages in file order.
func (s *Snapshot) Messages() []Message {
	if s == nil {
		return nil
	}
	return slices.Clone(s.messages)
}

// Authors returns the distinct authors sorted in byte order.
func (s *Snapshot) Authors() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.authors)
}

// Skipped returns every line that did not produce a message.
func (s *Snapshot) Skipped() []SkippedLine {
	if s == nil {
		return nil
	}
	return slices.Clone(s.skipped)
}

// LinesRead returns the number of raw lines examined.
func (s *Snapshot) LinesRead() int {
	if s == nil {
		return 0
	}
	return s.lines
}

// SkipCounts tallies skipped lines by reason.
func (s *Snapshot) SkipCounts() map[SkipReason]int {
	counts := make(map[SkipReason]int)
	if s == nil {
		return counts
	}
	for _, sk := range s.skipped {
		counts[sk.Reason]++
	}
	return counts
}

// NewSnapshot builds a snapshot from messages that did not come from Parse,
// such as records decoded from another export format. Derived fields are
// kept as given and the author set is collected from the messages.
func NewSnapshot(messages []Message) *Snapshot {
	msgs := slices.Clone(messages)
	return &Snapshot{
		messages: msgs,
		authors:  collectAuthors(msgs),
		lines:    len(msgs),
	}
}
