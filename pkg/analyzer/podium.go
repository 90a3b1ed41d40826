package analyzer

import (
	"slices"
	"strings"

	"github.com/ccollicutt/chatretro/pkg/parser"
)

// criterionAliases maps accepted names, lowercased, to criteria.
var criterionAliases = map[string]Criterion{
	"messages":     CriterionMessages,
	"variety":      CriterionVariety,
	"spam":         CriterionSpam,
	"spam-o-meter": CriterionSpam,
	"shouts":       CriterionShouts,
}

// ParseCriterion resolves a criterion name case-insensitively.
// The second result is false, and the criterion is CriterionMessages, when
// the name is unknown.
func ParseCriterion(name string) (Criterion, bool) {
	c, ok := criterionAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return CriterionMessages, false
	}
	return c, true
}

// Podium ranks authors by the criterion, highest first, and returns the top
// of the ranking. Ties keep author-set order. Unknown criteria rank by
// message count.
func (e *Engine) Podium(s *parser.Snapshot, criterion Criterion) []PodiumEntry {
	if !slices.Contains(Criteria, criterion) {
		e.logger.Debug("unknown podium criterion, ranking by messages", "criterion", string(criterion))
		criterion = CriterionMessages
	}

	scores := e.scores(s, criterion)
	slices.SortStableFunc(scores, func(a, b PodiumEntry) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(scores) > e.podiumSize {
		scores = scores[:e.podiumSize]
	}
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}

// scores returns one unranked entry per author, in author-set order.
func (e *Engine) scores(s *parser.Snapshot, criterion Criterion) []PodiumEntry {
	authors := s.Authors()
	out := make([]PodiumEntry, 0, len(authors))

	switch criterion {
	case CriterionVariety:
		for _, v := range e.VocabularyRichness(s) {
			out = append(out, PodiumEntry{Author: v.Author, Score: v.Variety})
		}
	case CriterionSpam:
		for _, sp := range e.SpamMetrics(s) {
			out = append(out, PodiumEntry{Author: sp.Author, Score: sp.Score})
		}
	case CriterionShouts:
		for _, u := range e.AllUserStats(s) {
			out = append(out, PodiumEntry{Author: u.Author, Score: float64(u.Shouts)})
		}
	default:
		counts := e.MessageCountsByAuthor(s)
		for _, author := range authors {
			out = append(out, PodiumEntry{Author: author, Score: float64(counts[author])})
		}
	}
	return out
}
