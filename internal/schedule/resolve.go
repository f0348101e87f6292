// Package schedule turns parsed course rows into weekly-recurring
// calendar events: clock/date resolution, academic-calendar exception
// dates, recurrence rule construction and event assembly.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var weekdayByCode = map[string]time.Weekday{
	"SU": time.Sunday,
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
}

var clockRe = regexp.MustCompile(`(?i)^\s*(\d{1,2}):(\d{2})\s*([AP]M)\s*$`)

// ParseClock resolves a 12-hour clock string like "11:30 AM" to a 24-hour
// (hour, minute) pair. Noon is hour 12 and 12:xx AM is hour 0. A string
// that does not match degrades to midnight rather than failing, so rows
// with an unparseable time segment still produce an event.
func ParseClock(s string) (hour, minute int) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	switch strings.ToUpper(m[3]) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	return hour, minute
}

// FirstOccurrenceOnOrAfter scans forward from startDate (inclusive) up to
// six additional days and returns the first date whose weekday is in the
// given code set. If nothing matches within the week, the start date is
// returned unchanged.
func FirstOccurrenceOnOrAfter(startDate string, days []string) string {
	t, err := time.Parse(isoDate, startDate)
	if err != nil {
		return startDate
	}
	wanted := make(map[time.Weekday]bool, len(days))
	for _, code := range days {
		if wd, ok := weekdayByCode[code]; ok {
			wanted[wd] = true
		}
	}
	for i := 0; i < 7; i++ {
		c := t.AddDate(0, 0, i)
		if wanted[c.Weekday()] {
			return c.Format(isoDate)
		}
	}
	return startDate
}

// BuildDateTimeLocal combines a calendar date with an hour/minute pair
// into a timezone-naive local timestamp. The timezone travels separately
// wherever this value is consumed; it is never baked into the string.
func BuildDateTimeLocal(date string, hour, minute int) string {
	return fmt.Sprintf("%sT%02d:%02d:00", date, hour, minute)
}
