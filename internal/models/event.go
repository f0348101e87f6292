package models

// CourseRow is one row of the schedule export: a course with a single
// meeting pattern and the date range it is active for.
// Dates are ISO (YYYY-MM-DD) when coercion succeeded, otherwise the raw
// cell text is carried through unchanged.
type CourseRow struct {
	Course         string
	Section        string
	MeetingPattern string
	StartDate      string
	EndDate        string
}

// Meeting is the structured form of a meeting-pattern field.
// Days holds two-letter weekday codes (MO, TU, ...) in the order they
// appeared in the source text. Times keep the "H:MM AM" display form;
// they are empty when the time segment did not parse.
type Meeting struct {
	Days      []string
	StartTime string
	EndTime   string
	Location  string
}

// EventDateTime pairs a timezone-naive local timestamp
// (YYYY-MM-DDTHH:MM:SS, no offset) with its IANA timezone name.
// The zone is always supplied separately and never baked into the value.
type EventDateTime struct {
	DateTime string
	TimeZone string
}

// Event is the sink-facing calendar event: one weekly-recurring event per
// successfully parsed course row. Recurrence holds raw RFC 5545 content
// lines: an RRULE line followed by zero or more EXDATE lines.
// Events are never mutated after assembly.
type Event struct {
	Summary    string
	Location   string
	Start      EventDateTime
	End        EventDateTime
	Recurrence []string

	// Row is the index of the source row this event was assembled from,
	// carried along so push failures can name the offending row.
	Row int
}
