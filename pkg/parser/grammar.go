package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// headerPattern matches a message header line:
//
//	<day>/<month>/<year>, <hour>:<minute> - <author>: <text>
//
// Groups: 1 day, 2 month, 3 year, 4 hour, 5 minute, 6 author, 7 text.
// Separators are literal spaces. The author is non-greedy, so it ends at the
// first ": ".
var headerPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4}), (\d{1,2}):(\d{2}) - (.*?): (.*)$`)

// Header is the raw content of a matched header line.
type Header struct {
	Timestamp time.Time
	Author    string
	Text      string
}

// ParseHeader matches line against the header grammar and builds its timestamp.
// A trailing carriage return is ignored so CRLF exports behave like LF ones.
func ParseHeader(line string) (Header, SkipReason) {
	line = strings.TrimSuffix(line, "\r")

	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return Header{}, SkipNotHeader
	}

	ts, ok := buildTimestamp(m[1], m[2], m[3], m[4], m[5])
	if !ok {
		return Header{}, SkipInvalidTimestamp
	}

	return Header{
		Timestamp: ts,
		Author:    m[6],
		Text:      m[7],
	}, SkipNone
}

// buildTimestamp rejects fields that time.Date would silently normalize,
// such as month 13 or 31 February.
func buildTimestamp(dayStr, monthStr, yearStr, hourStr, minuteStr string) (time.Time, bool) {
	day, _ := strconv.Atoi(dayStr)
	month, _ := strconv.Atoi(monthStr)
	year, _ := strconv.Atoi(yearStr)
	hour, _ := strconv.Atoi(hourStr)
	minute, _ := strconv.Atoi(minuteStr)

	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	if day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, false
	}
	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), true
}

func daysIn(month time.Month, year int) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
