// Package analyzer computes descriptive statistics over parsed chat snapshots.
package analyzer

import "fmt"

// Criterion names a podium ranking.
type Criterion string

const (
	CriterionMessages Criterion = "messages"
	CriterionVariety  Criterion = "variety"
	CriterionSpam     Criterion = "spam"
	CriterionShouts   Criterion = "shouts"
)

// Criteria lists every ranking criterion in display order.
var Criteria = []Criterion{CriterionMessages, CriterionVariety, CriterionSpam, CriterionShouts}

// GlobalStats summarizes a whole snapshot.
type GlobalStats struct {
	// Total is the number of messages.
	Total int `json:"total"`

	// Media is the number of media messages.
	Media int `json:"media"`

	// TimespanDays is the distance between the first and last message in
	// days, rounded to one decimal. Never negative.
	TimespanDays float64 `json:"timespan_days"`
}

// UserStats summarizes one author's messages.
type UserStats struct {
	Author          string  `json:"author"`
	Messages        int     `json:"messages"`
	Words           int     `json:"words"`
	AvgLength       float64 `json:"avg_length"`
	NightOwl        int     `json:"night_owl"`
	Shouts          int     `json:"shouts"`
	SessionStarters int     `json:"session_starters"`
}

// HeatCell is one weekday/hour bucket of the activity heatmap.
type HeatCell struct {
	Day      string `json:"day"`
	DayIndex int    `json:"day_index"` // 0=Monday .. 6=Sunday
	Hour     int    `json:"hour"`
	Count    int    `json:"count"`
}

// Vocabulary describes how varied an author's wording is.
type Vocabulary struct {
	Author string `json:"author"`

	// Variety is the average number of retained tokens per message.
	Variety float64 `json:"variety"`

	// UniqueRatio is the percentage of distinct tokens among retained tokens.
	UniqueRatio float64 `json:"unique_ratio"`
}

// Spam counts an author's burst messages.
type Spam struct {
	Author string `json:"author"`
	Bursts int    `json:"bursts"`

	// Percent is Score rounded to the nearest integer.
	Percent int `json:"percent"`

	// Score is the share of burst messages as an unrounded percentage.
	Score float64 `json:"score"`
}

// Label renders the burst count the way it is shown to users.
func (s Spam) Label() string {
	return fmt.Sprintf("%d bursts (%d%%)", s.Bursts, s.Percent)
}

// PodiumEntry is one ranked author.
type PodiumEntry struct {
	Rank   int     `json:"rank"`
	Author string  `json:"author"`
	Score  float64 `json:"score"`
}
