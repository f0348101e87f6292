package schedule

import (
	"coursecal/internal/meeting"
	"coursecal/internal/models"
)

// Options configures event assembly for one import.
type Options struct {
	// TimeZone is the IANA zone attached to every event's start and end.
	TimeZone string
	// DaysOff is the fully expanded session-wide exception date list;
	// each event keeps only the dates inside its own course interval.
	DaysOff []string
}

// SkippedRow records a row that produced no event because its meeting
// pattern did not parse or named no weekdays.
type SkippedRow struct {
	Index  int
	Course string
}

// Assemble builds one calendar event per course row whose meeting pattern
// parses. Rows that fail to parse are skipped silently; a row may be a
// non-meeting placeholder such as an asynchronous online component.
func Assemble(rows []models.CourseRow, opts Options) ([]*models.Event, []SkippedRow) {
	var events []*models.Event
	var skipped []SkippedRow

	for i, r := range rows {
		m := meeting.Parse(r.MeetingPattern)
		if m == nil || len(m.Days) == 0 {
			skipped = append(skipped, SkippedRow{Index: i, Course: r.Course})
			continue
		}

		sh, sm := ParseClock(m.StartTime)
		eh, em := ParseClock(m.EndTime)
		first := FirstOccurrenceOnOrAfter(r.StartDate, m.Days)

		recurrence := []string{"RRULE:" + BuildWeeklyRRule(m.Days, r.EndDate)}
		recurrence = append(recurrence, BuildExdateLines(FilterRange(opts.DaysOff, r.StartDate, r.EndDate))...)

		summary := r.Course
		if r.Section != "" {
			summary += " (" + r.Section + ")"
		}

		events = append(events, &models.Event{
			Summary:  summary,
			Location: m.Location,
			Start: models.EventDateTime{
				DateTime: BuildDateTimeLocal(first, sh, sm),
				TimeZone: opts.TimeZone,
			},
			End: models.EventDateTime{
				DateTime: BuildDateTimeLocal(first, eh, em),
				TimeZone: opts.TimeZone,
			},
			Recurrence: recurrence,
			Row:        i,
		})
	}
	return events, skipped
}
