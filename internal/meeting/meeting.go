// Package meeting parses the free-text "meeting pattern" field of a
// schedule export, e.g.
//
//	Mon/Wed | 11:30 AM - 12:50 PM | URBAUER, Room 00222
//
// into structured days, times and a normalized location.
package meeting

import (
	"regexp"
	"strings"

	"coursecal/internal/models"
)

var dayCodes = map[string]string{
	"Mon": "MO",
	"Tue": "TU",
	"Wed": "WE",
	"Thu": "TH",
	"Fri": "FR",
	"Sat": "SA",
	"Sun": "SU",
}

var (
	daySplitRe = regexp.MustCompile(`[/,&\s]+`)
	hyphenRe   = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*[AP]M)\s*-\s*(\d{1,2}:\d{2}\s*[AP]M)`)
	toRe       = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*[AP]M)\s*to\s*(\d{1,2}:\d{2}\s*[AP]M)`)
	meridiemRe = regexp.MustCompile(`(?i)\s*([AP]M)$`)
	wsRe       = regexp.MustCompile(`\s+`)
	multiWsRe  = regexp.MustCompile(`\s{2,}`)
	roomRe     = regexp.MustCompile(`(?i),?\s*Room\s*0{0,2}(\d+)`)
	leadWordRe = regexp.MustCompile(`^[A-Za-z]+`)
)

// Parse splits a raw meeting-pattern field into days, a time range and a
// location. Returns nil when the field does not have at least three
// pipe-delimited segments; that is a skip, not an error, since some rows
// are placeholders with no scheduled meeting.
func Parse(raw string) *models.Meeting {
	if raw == "" {
		return nil
	}
	s := strings.ReplaceAll(raw, "\u00a0", " ")
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 3 {
		return nil
	}

	start, end := parseTimeRange(parts[1])
	return &models.Meeting{
		Days:      parseDays(parts[0]),
		StartTime: start,
		EndTime:   end,
		// A location may itself contain pipes; everything after the
		// second segment is rejoined.
		Location: NormalizeLocation(strings.Join(parts[2:], " | ")),
	}
}

// parseDays maps day tokens to two-letter weekday codes, preserving
// source order. Unrecognized tokens are upper-cased and truncated to two
// characters as a best-effort code; this heuristic can collide with a
// legitimate code for an unrelated day and is kept as-is.
func parseDays(segment string) []string {
	var days []string
	for _, tok := range daySplitRe.Split(segment, -1) {
		if tok == "" {
			continue
		}
		if code, ok := dayCodes[tok]; ok {
			days = append(days, code)
			continue
		}
		code := strings.ToUpper(tok)
		if len(code) > 2 {
			code = code[:2]
		}
		days = append(days, code)
	}
	return days
}

// parseTimeRange matches "H:MM AM - H:MM PM" or the same with "to" as the
// separator. En/em dashes are normalized to a hyphen first. On no match
// both times are empty and downstream construction degrades to midnight.
func parseTimeRange(segment string) (string, string) {
	s := strings.NewReplacer("–", "-", "—", "-").Replace(segment)
	m := hyphenRe.FindStringSubmatch(s)
	if m == nil {
		m = toRe.FindStringSubmatch(s)
	}
	if m == nil {
		return "", ""
	}
	return normalizeClock(m[1]), normalizeClock(m[2])
}

// normalizeClock re-normalizes a matched clock time to have exactly one
// space before the AM/PM marker.
func normalizeClock(t string) string {
	return meridiemRe.ReplaceAllString(t, " $1")
}

// NormalizeLocation cleans up a location segment:
// "URBAUER, Room 00222" becomes "Urbauer 222". Whitespace runs collapse
// to single spaces, an optional ", Room"/"Room" prefix before the room
// number is dropped (along with up to two leading zeros of the number),
// and only the first word is title-cased.
func NormalizeLocation(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(wsRe.ReplaceAllString(raw, " "))
	s = roomRe.ReplaceAllString(s, " $1")
	s = leadWordRe.ReplaceAllStringFunc(s, func(w string) string {
		return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	})
	return multiWsRe.ReplaceAllString(s, " ")
}
