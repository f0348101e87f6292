package schedule

import (
	"fmt"
	"strings"
	"time"
)

// exdateChunkSize bounds how many dates go on one EXDATE line.
const exdateChunkSize = 20

// BuildWeeklyRRule produces a weekly recurrence rule with an inclusive
// UNTIL bound at 23:59:59 UTC of the end date. The bound uses the end
// date's UTC calendar fields so a date-only value cannot shift a day
// under local-timezone interpretation.
func BuildWeeklyRRule(days []string, endDate string) string {
	datePart := strings.ReplaceAll(endDate, "-", "")
	if t, err := time.Parse(isoDate, endDate); err == nil {
		datePart = t.UTC().Format("20060102")
	}
	return fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;UNTIL=%sT235959Z", strings.Join(days, ","), datePart)
}

// BuildExdateLines renders exception dates as EXDATE;VALUE=DATE lines,
// chunked to keep line length bounded. All lines attach to one event.
func BuildExdateLines(dates []string) []string {
	if len(dates) == 0 {
		return nil
	}
	vals := make([]string, len(dates))
	for i, d := range dates {
		vals[i] = strings.ReplaceAll(d, "-", "")
	}
	var lines []string
	for i := 0; i < len(vals); i += exdateChunkSize {
		end := i + exdateChunkSize
		if end > len(vals) {
			end = len(vals)
		}
		lines = append(lines, "EXDATE;VALUE=DATE:"+strings.Join(vals[i:end], ","))
	}
	return lines
}
