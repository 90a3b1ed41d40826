package detector

import "regexp"

// Dialect describes one layout of chat export message headers.
type Dialect struct {
	Name       string         // Human-readable name
	Pattern    *regexp.Regexp // Compiled regex (set during init)
	PatternStr string         // Pattern string, first group captures the timestamp
	Layout     string         // Go time layout for the captured timestamp
	Examples   []string       // Example header lines
	Supported  bool           // True if the parser reads this dialect
	Ambiguous  bool           // True if the day/month order is likely mm/dd
	Hint       string         // How to obtain a supported export
}

// DefaultDialects returns the built-in dialects to detect.
// Exactly one of them is supported by the parser.
func DefaultDialects() []*Dialect {
	dialects := []*Dialect{
		{
			Name:       "Android (24-hour)",
			PatternStr: `^(\d{1,2}/\d{1,2}/\d{4}, \d{1,2}:\d{2}) - `,
			Layout:     "2/1/2006, 15:04",
			Examples:   []string{"15/01/2024, 10:30 - Alice: Hello"},
			Supported:  true,
		},
		{
			Name:       "iOS (bracketed)",
			PatternStr: `^\[(\d{1,2}/\d{1,2}/\d{4}, \d{1,2}:\d{2}:\d{2})\] `,
			Layout:     "2/1/2006, 15:04:05",
			Examples:   []string{"[15/01/2024, 10:30:00] Alice: Hello"},
			Hint:       "Lines look like '[dd/mm/yyyy, hh:mm:ss] Author: text'; export the chat from an Android device instead",
		},
		{
			Name:       "iOS (bracketed, 12-hour)",
			PatternStr: `^\[(\d{1,2}/\d{1,2}/\d{2}, \d{1,2}:\d{2}:\d{2}[ \x{202F}][AP]M)\] `,
			Layout:     "1/2/06, 3:04:05 PM",
			Examples:   []string{"[1/15/24, 10:30:00 AM] Alice: Hello"},
			Ambiguous:  true,
			Hint:       "Lines use brackets and AM/PM; export from an Android device with a 24-hour clock",
		},
		{
			Name:       "12-hour clock",
			PatternStr: `^(\d{1,2}/\d{1,2}/\d{4}, \d{1,2}:\d{2}[ \x{202F}][AP]M) - `,
			Layout:     "1/2/2006, 3:04 PM",
			Examples:   []string{"1/15/2024, 10:30 AM - Alice: Hello"},
			Ambiguous:  true,
			Hint:       "Times use AM/PM; switch the phone to a 24-hour clock and export again",
		},
		{
			Name:       "Two-digit year",
			PatternStr: `^(\d{1,2}/\d{1,2}/\d{2}, \d{1,2}:\d{2}) - `,
			Layout:     "2/1/06, 15:04",
			Examples:   []string{"15/01/24, 10:30 - Alice: Hello"},
			Ambiguous:  true,
			Hint:       "Dates use a two-digit year; change the phone date format to dd/mm/yyyy and export again",
		},
	}

	for _, d := range dialects {
		d.Pattern = regexp.MustCompile(d.PatternStr)
	}

	return dialects
}
