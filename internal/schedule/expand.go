package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"coursecal/internal/models"
)

const defaultMaxOccurrences = 200

const localDateTime = "2006-01-02T15:04:05"

// Occurrences expands an assembled event's recurrence lines into the
// concrete class instants, in the given location. EXDATEs are applied at
// the event's start clock time so they remove whole occurrences. max
// caps the result; <= 0 means defaultMaxOccurrences.
func Occurrences(ev *models.Event, loc *time.Location, max int) ([]time.Time, error) {
	if max <= 0 {
		max = defaultMaxOccurrences
	}
	start, err := time.ParseInLocation(localDateTime, ev.Start.DateTime, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid event start %q: %w", ev.Start.DateTime, err)
	}

	var set rrule.Set
	haveRule := false
	for _, line := range ev.Recurrence {
		switch {
		case strings.HasPrefix(line, "RRULE:"):
			r, err := rrule.StrToRRule(strings.TrimPrefix(line, "RRULE:"))
			if err != nil {
				return nil, fmt.Errorf("invalid RRULE %q: %w", line, err)
			}
			r.DTStart(start)
			set.RRule(r)
			haveRule = true
		case strings.HasPrefix(line, "EXDATE;VALUE=DATE:"):
			for _, v := range strings.Split(strings.TrimPrefix(line, "EXDATE;VALUE=DATE:"), ",") {
				d, err := time.ParseInLocation("20060102", v, loc)
				if err != nil {
					continue
				}
				set.ExDate(time.Date(d.Year(), d.Month(), d.Day(), start.Hour(), start.Minute(), start.Second(), 0, loc))
			}
		}
	}

	if !haveRule {
		return []time.Time{start}, nil
	}
	occ := set.All()
	if len(occ) > max {
		occ = occ[:max]
	}
	return occ, nil
}
