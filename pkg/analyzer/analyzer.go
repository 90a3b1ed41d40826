package analyzer

import (
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/ccollicutt/chatretro/pkg/parser"
)

// Default engine settings.
const (
	DefaultBurstWindow    = 10 * time.Second
	DefaultMinTokenLength = 3
	DefaultPodiumSize     = 3
)

// DefaultDayLabels names weekdays in Monday-first order.
var DefaultDayLabels = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Engine answers statistics queries over snapshots.
// It holds only immutable settings, so one Engine can serve any number of
// snapshots from any number of goroutines.
type Engine struct {
	burstWindow    time.Duration
	minTokenLength int
	podiumSize     int
	dayLabels      [7]string
	logger         *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithBurstWindow sets the gap under which a message counts as a burst.
func WithBurstWindow(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.burstWindow = d
		}
	}
}

// WithMinTokenLength sets the shortest token, in characters, kept for vocabulary stats.
func WithMinTokenLength(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minTokenLength = n
		}
	}
}

// WithPodiumSize sets how many authors a podium holds.
func WithPodiumSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.podiumSize = n
		}
	}
}

// WithDayLabels replaces the weekday names used in the heatmap.
// Anything other than exactly seven labels is ignored.
func WithDayLabels(labels []string) Option {
	return func(e *Engine) {
		if len(labels) == len(e.dayLabels) {
			copy(e.dayLabels[:], labels)
		}
	}
}

// WithLogger sets the logger used for query diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine with default settings.
func New(opts ...Option) *Engine {
	e := &Engine{
		burstWindow:    DefaultBurstWindow,
		minTokenLength: DefaultMinTokenLength,
		podiumSize:     DefaultPodiumSize,
		dayLabels:      DefaultDayLabels,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DayLabels returns the weekday names in Monday-first order.
func (e *Engine) DayLabels() []string {
	return slices.Clone(e.dayLabels[:])
}

// byAuthor groups messages by author, keeping file order within each group.
func byAuthor(messages []parser.Message) map[string][]parser.Message {
	groups := make(map[string][]parser.Message)
	for _, m := range messages {
		groups[m.Author] = append(groups[m.Author], m)
	}
	return groups
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
