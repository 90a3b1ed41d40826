package analyzer

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ccollicutt/chatretro/pkg/parser"
)

// VocabularyRichness measures word variety for every author, in author-set order.
func (e *Engine) VocabularyRichness(s *parser.Snapshot) []Vocabulary {
	groups := byAuthor(s.Messages())
	authors := s.Authors()

	out := make([]Vocabulary, 0, len(authors))
	for _, author := range authors {
		msgs := groups[author]
		tokens := 0
		distinct := make(map[string]struct{})

		for _, m := range msgs {
			for _, tok := range e.tokenize(m.Text) {
				tokens++
				distinct[tok] = struct{}{}
			}
		}

		v := Vocabulary{Author: author}
		if len(msgs) > 0 {
			v.Variety = round1(float64(tokens) / float64(len(msgs)))
		}
		if tokens > 0 {
			v.UniqueRatio = round1(float64(len(distinct)) / float64(tokens) * 100)
		}
		out = append(out, v)
	}
	return out
}

// tokenize lowercases text, splits on whitespace and drops short tokens.
func (e *Engine) tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	kept := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= e.minTokenLength {
			kept = append(kept, f)
		}
	}
	return kept
}

// SpamMetrics counts burst messages for every author, in author-set order.
// A burst is a message sent less than the burst window after the previous
// message; a zero gap does not count.
func (e *Engine) SpamMetrics(s *parser.Snapshot) []Spam {
	groups := byAuthor(s.Messages())
	authors := s.Authors()

	out := make([]Spam, 0, len(authors))
	for _, author := range authors {
		msgs := groups[author]
		sp := Spam{Author: author}
		for _, m := range msgs {
			if m.SincePrevious > 0 && m.SincePrevious < e.burstWindow {
				sp.Bursts++
			}
		}
		if len(msgs) > 0 {
			sp.Score = float64(sp.Bursts) / float64(len(msgs)) * 100
			sp.Percent = int(math.Round(sp.Score))
		}
		out = append(out, sp)
	}
	return out
}
