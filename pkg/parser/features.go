package parser

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Default feature settings.
const (
	DefaultSessionGap   = 6 * time.Hour
	DefaultNightEndHour = 6
	DefaultImagePattern = `IMG-\d{8}-WA\d+`
)

// DefaultMediaMarkers are the placeholders export tools write instead of attachments.
var DefaultMediaMarkers = []string{
	"<Médias omis>",
	"<Media omitted>",
}

// mediaDetector reports whether a message body stands for an attachment.
type mediaDetector struct {
	markers []string
	image   *regexp.Regexp
}

func (d *mediaDetector) isMedia(text string) bool {
	for _, marker := range d.markers {
		if marker != "" && strings.Contains(text, marker) {
			return true
		}
	}
	return d.image != nil && d.image.MatchString(text)
}

// weekdayIndex maps time.Weekday onto a Monday-first week.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// isAllCaps is true for text longer than two characters that is unchanged by
// upper-casing and holds at least one letter. Letters from scripts without
// case count.
func isAllCaps(text string) bool {
	if utf8.RuneCountInString(text) <= 2 {
		return false
	}
	if text != strings.ToUpper(text) {
		return false
	}
	for _, r := range text {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// buildMessage derives every feature that depends only on the header.
// Delta and session fields are filled in by the parser.
func (p *Parser) buildMessage(h Header, line int) Message {
	hour := h.Timestamp.Hour()
	return Message{
		Timestamp:    h.Timestamp,
		Author:       h.Author,
		Text:         h.Text,
		Line:         line,
		Hour:         hour,
		Weekday:      weekdayIndex(h.Timestamp),
		WordCount:    len(strings.Fields(h.Text)),
		CharLength:   utf8.RuneCountInString(h.Text),
		Exclamations: strings.Count(h.Text, "!"),
		IsMedia:      p.media.isMedia(h.Text),
		IsNight:      hour < p.nightEndHour,
		IsAllCaps:    isAllCaps(h.Text),
	}
}
