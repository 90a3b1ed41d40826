package analyzer

import (
	"math"

	"github.com/ccollicutt/chatretro/pkg/parser"
)

const hoursPerDay = 24

// GlobalStats returns message totals and the span of the conversation.
func (e *Engine) GlobalStats(s *parser.Snapshot) GlobalStats {
	msgs := s.Messages()
	stats := GlobalStats{Total: len(msgs)}

	for _, m := range msgs {
		if m.IsMedia {
			stats.Media++
		}
	}

	if len(msgs) >= 2 {
		span := msgs[len(msgs)-1].Timestamp.Sub(msgs[0].Timestamp)
		stats.TimespanDays = round1(math.Abs(span.Hours()) / hoursPerDay)
	}

	return stats
}

// MessageCountsByAuthor returns the number of messages per author.
func (e *Engine) MessageCountsByAuthor(s *parser.Snapshot) map[string]int {
	counts := make(map[string]int)
	for _, m := range s.Messages() {
		counts[m.Author]++
	}
	return counts
}

// UserStats summarizes one author. Unknown authors get zero values.
func (e *Engine) UserStats(s *parser.Snapshot, author string) UserStats {
	stats := UserStats{Author: author}

	totalLen := 0
	for _, m := range s.Messages() {
		if m.Author != author {
			continue
		}
		stats.Messages++
		stats.Words += m.WordCount
		totalLen += m.CharLength
		stats.Shouts += m.Exclamations
		if m.IsNight {
			stats.NightOwl++
		}
		if m.IsNewSession {
			stats.SessionStarters++
		}
	}

	if stats.Messages > 0 {
		stats.AvgLength = round1(float64(totalLen) / float64(stats.Messages))
	}

	return stats
}

// AllUserStats returns UserStats for every author in author-set order.
func (e *Engine) AllUserStats(s *parser.Snapshot) []UserStats {
	authors := s.Authors()
	out := make([]UserStats, 0, len(authors))
	for _, author := range authors {
		out = append(out, e.UserStats(s, author))
	}
	return out
}

// Heatmap counts messages per weekday and hour. All 168 cells are present,
// Monday first, hours ascending.
func (e *Engine) Heatmap(s *parser.Snapshot) []HeatCell {
	var grid [7][hoursPerDay]int
	for _, m := range s.Messages() {
		if m.Weekday < 0 || m.Weekday >= len(grid) || m.Hour < 0 || m.Hour >= hoursPerDay {
			continue
		}
		grid[m.Weekday][m.Hour]++
	}

	cells := make([]HeatCell, 0, len(grid)*hoursPerDay)
	for day, row := range grid {
		for hour, count := range row {
			cells = append(cells, HeatCell{
				Day:      e.dayLabels[day],
				DayIndex: day,
				Hour:     hour,
				Count:    count,
			})
		}
	}
	return cells
}
