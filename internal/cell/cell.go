// Package cell normalizes raw spreadsheet cell values into plain strings
// and calendar dates. It is pure: the xlsx reader extracts typed values
// and this package turns them into something the parsers can consume.
package cell

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RichTextRun is one styled sub-run of a rich-text cell.
type RichTextRun struct {
	Text string
}

// RichText is a structured cell value: either a flattened Text field or a
// list of sub-runs, depending on how the sheet stored it.
type RichText struct {
	Text string
	Runs []RichTextRun
}

// ToString converts an arbitrary cell value into a plain string.
// Numbers and strings convert directly; rich text prefers the flattened
// Text field and otherwise concatenates the runs in order. nil yields "".
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case RichText:
		if t.Text != "" {
			return t.Text
		}
		return joinRuns(t.Runs)
	case []RichTextRun:
		return joinRuns(t)
	default:
		return fmt.Sprint(v)
	}
}

func joinRuns(runs []RichTextRun) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// serialEpoch is the spreadsheet date-serial epoch: serial N is N days
// after 1899-12-30.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var mdyRe = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})$`)

// CoerceDate converts a date-typed cell value into an ISO (YYYY-MM-DD)
// string. Native dates drop their time of day without any timezone shift,
// numbers are interpreted as day serials from serialEpoch, and strings are
// matched against M/D/YY, M/D/YYYY or an already-ISO date. Anything else
// is returned unchanged so the caller can surface the raw text.
func CoerceDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("2006-01-02")
	case float64:
		d := serialEpoch.Add(time.Duration(t * 24 * float64(time.Hour)))
		return d.UTC().Format("2006-01-02")
	case int:
		return serialEpoch.AddDate(0, 0, t).Format("2006-01-02")
	}

	s := strings.ReplaceAll(strings.TrimSpace(ToString(v)), "\u00a0", " ")
	if m := mdyRe.FindStringSubmatch(s); m != nil {
		yy := m[3]
		if len(yy) == 2 {
			// Two-digit years: 70..99 are 1900s, 00..69 are 2000s.
			if n, _ := strconv.Atoi(yy); n >= 70 {
				yy = "19" + yy
			} else {
				yy = "20" + yy
			}
		}
		mm, _ := strconv.Atoi(m[1])
		dd, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%s-%02d-%02d", yy, mm, dd)
	}
	// Already ISO, or unparseable; either way hand it back as-is.
	return s
}
