package sources

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ISODate is the canonical format for Opportunity.ApplicationDeadline.
const ISODate = "2006-01-02"

var datePrefixes = []string{
	"closing date:", "deadline:", "apply by:", "due date:", "expires:", "ends:",
}

var (
	isoDateRegex   = regexp.MustCompile(`\b(20\d{2})-(\d{2})-(\d{2})\b`)
	slashDateRegex = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(20\d{2})\b`)
	monthDateRegex = regexp.MustCompile(`\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(\d{1,2}),?\s+(20\d{2})\b`)
	dayFirstRegex  = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec),?\s+(20\d{2})\b`)
)

// ParseDeadline parses a free-text deadline into a calendar date. It accepts
// a string only when it parses to a valid date; anything else reports false
// so the field is left absent rather than guessed.
func ParseDeadline(text string) (time.Time, bool) {
	text = cleanDateString(text)
	if text == "" {
		return time.Time{}, false
	}

	// ISO first, it is the most reliable.
	if t, err := time.Parse(ISODate, text); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, text); err == nil {
		return t, true
	}

	formats := []string{
		"2 January 2006",
		"02 January 2006",
		"January 2, 2006",
		"Jan 2, 2006",
		"2 Jan 2006",
		"02 Jan 2006",
		"02/01/2006", // day-first, the convention on Kenyan portals
		"2/1/2006",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, text); err == nil {
			return t, true
		}
	}

	if t := parseDateWithRegex(text); !t.IsZero() {
		return t, true
	}
	return time.Time{}, false
}

// parseDateWithRegex pulls a date out of surrounding prose.
func parseDateWithRegex(text string) time.Time {
	if m := isoDateRegex.FindString(text); m != "" {
		if t, err := time.Parse(ISODate, m); err == nil {
			return t
		}
	}

	if m := slashDateRegex.FindStringSubmatch(text); len(m) == 4 {
		// Day-first, then month-first as fallback.
		if t, err := time.Parse("2/1/2006", fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3])); err == nil {
			return t
		}
		if t, err := time.Parse("1/2/2006", fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3])); err == nil {
			return t
		}
	}

	if m := dayFirstRegex.FindStringSubmatch(text); len(m) == 4 {
		for _, format := range []string{"2 January 2006", "2 Jan 2006"} {
			if t, err := time.Parse(format, fmt.Sprintf("%s %s %s", m[1], m[2], m[3])); err == nil {
				return t
			}
		}
	}

	if m := monthDateRegex.FindStringSubmatch(text); len(m) == 4 {
		for _, format := range []string{"January 2 2006", "Jan 2 2006"} {
			if t, err := time.Parse(format, fmt.Sprintf("%s %s %s", m[1], m[2], m[3])); err == nil {
				return t
			}
		}
	}

	return time.Time{}
}

func cleanDateString(s string) string {
	s = cleanText(s)
	lower := strings.ToLower(s)
	for _, p := range datePrefixes {
		if idx := strings.Index(lower, p); idx != -1 {
			s = s[idx+len(p):]
			lower = lower[idx+len(p):]
		}
	}
	return strings.TrimSpace(s)
}
