package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecal/internal/models"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in     string
		hour   int
		minute int
	}{
		{"11:30 AM", 11, 30},
		{"12:50 PM", 12, 50},
		{"12:00 PM", 12, 0},
		{"12:15 AM", 0, 15},
		{"2:00 pm", 14, 0},
		{"", 0, 0},
		{"TBA", 0, 0},
	}
	for _, tt := range tests {
		h, m := ParseClock(tt.in)
		assert.Equal(t, tt.hour, h, "hour of %q", tt.in)
		assert.Equal(t, tt.minute, m, "minute of %q", tt.in)
	}
}

func TestFirstOccurrenceOnOrAfter(t *testing.T) {
	// 2025-01-06 is a Monday.
	assert.Equal(t, "2025-01-08", FirstOccurrenceOnOrAfter("2025-01-06", []string{"WE"}))
	assert.Equal(t, "2025-01-06", FirstOccurrenceOnOrAfter("2025-01-06", []string{"MO", "WE"}))
	assert.Equal(t, "2025-01-07", FirstOccurrenceOnOrAfter("2025-01-06", []string{"TU", "TH"}))
	// No recognizable weekday codes: fall back to the start date.
	assert.Equal(t, "2025-01-06", FirstOccurrenceOnOrAfter("2025-01-06", []string{"XX"}))
	// Unparseable start date passes through.
	assert.Equal(t, "soon", FirstOccurrenceOnOrAfter("soon", []string{"MO"}))
}

func TestBuildDateTimeLocal(t *testing.T) {
	got := BuildDateTimeLocal("2025-01-08", 11, 30)
	assert.Equal(t, "2025-01-08T11:30:00", got)
	// No UTC suffix; the timezone always travels separately.
	assert.False(t, strings.HasSuffix(got, "Z"))
}

func TestExpandDaysOff(t *testing.T) {
	got := ExpandDaysOff([]DateSpan{
		{Start: "2025-09-01", End: "2025-09-01"},
		{Start: "2025-10-04", End: "2025-10-07"},
	})
	assert.Equal(t, []string{
		"2025-09-01",
		"2025-10-04", "2025-10-05", "2025-10-06", "2025-10-07",
	}, got)
}

func TestExpandDaysOffCrossesMonthEnd(t *testing.T) {
	got := ExpandDaysOff([]DateSpan{{Start: "2025-11-29", End: "2025-12-01"}})
	assert.Equal(t, []string{"2025-11-29", "2025-11-30", "2025-12-01"}, got)
}

func TestFilterRange(t *testing.T) {
	dates := []string{"2025-09-01", "2025-10-04", "2025-12-17", "2026-01-05"}
	got := FilterRange(dates, "2025-09-02", "2025-12-17")
	assert.Equal(t, []string{"2025-10-04", "2025-12-17"}, got)
}

func TestBuildWeeklyRRule(t *testing.T) {
	got := BuildWeeklyRRule([]string{"MO", "WE"}, "2025-12-17")
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO,WE;UNTIL=20251217T235959Z", got)
}

func TestBuildExdateLines(t *testing.T) {
	assert.Nil(t, BuildExdateLines(nil))

	lines := BuildExdateLines([]string{"2025-09-01", "2025-10-04"})
	require.Len(t, lines, 1)
	assert.Equal(t, "EXDATE;VALUE=DATE:20250901,20251004", lines[0])
}

func TestBuildExdateLinesChunks(t *testing.T) {
	var dates []string
	d := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		dates = append(dates, d.AddDate(0, 0, i).Format("2006-01-02"))
	}

	lines := BuildExdateLines(dates)
	require.Len(t, lines, 2)
	assert.Len(t, strings.Split(strings.TrimPrefix(lines[0], "EXDATE;VALUE=DATE:"), ","), 20)
	assert.Len(t, strings.Split(strings.TrimPrefix(lines[1], "EXDATE;VALUE=DATE:"), ","), 5)
}

func TestAssemble(t *testing.T) {
	rows := []models.CourseRow{
		{
			Course:         "CSE 3300",
			Section:        "11",
			MeetingPattern: "Mon/Wed | 11:30 AM - 12:50 PM | URBAUER, Room 00222",
			StartDate:      "2025-09-02", // a Tuesday
			EndDate:        "2025-12-17",
		},
		{
			Course:         "CSE 5000",
			MeetingPattern: "Online Asynchronous",
			StartDate:      "2025-09-02",
			EndDate:        "2025-12-17",
		},
	}
	daysOff := ExpandDaysOff([]DateSpan{
		{Start: "2025-09-01", End: "2025-09-01"},
		{Start: "2025-10-04", End: "2025-10-07"},
	})

	events, skipped := Assemble(rows, Options{TimeZone: "America/Chicago", DaysOff: daysOff})
	require.Len(t, events, 1)
	require.Len(t, skipped, 1)
	assert.Equal(t, 1, skipped[0].Index)
	assert.Equal(t, "CSE 5000", skipped[0].Course)

	ev := events[0]
	assert.Equal(t, "CSE 3300 (11)", ev.Summary)
	assert.Equal(t, "Urbauer 222", ev.Location)
	// First Monday-or-Wednesday on/after the Tuesday start is Wednesday.
	assert.Equal(t, "2025-09-03T11:30:00", ev.Start.DateTime)
	assert.Equal(t, "2025-09-03T12:50:00", ev.End.DateTime)
	assert.Equal(t, "America/Chicago", ev.Start.TimeZone)

	require.Len(t, ev.Recurrence, 2)
	assert.Equal(t, "RRULE:FREQ=WEEKLY;BYDAY=MO,WE;UNTIL=20251217T235959Z", ev.Recurrence[0])
	// Labor Day precedes the course start and is dropped.
	assert.Equal(t, "EXDATE;VALUE=DATE:20251004,20251005,20251006,20251007", ev.Recurrence[1])
	assert.Equal(t, 0, ev.Row)
}

func TestAssembleNoSection(t *testing.T) {
	rows := []models.CourseRow{{
		Course:         "Math 233",
		MeetingPattern: "Fri | 9:00 AM - 9:50 AM | Seigle 103",
		StartDate:      "2025-09-02",
		EndDate:        "2025-12-05",
	}}
	events, skipped := Assemble(rows, Options{TimeZone: "UTC"})
	require.Len(t, events, 1)
	assert.Empty(t, skipped)
	// No parentheses when the section is absent.
	assert.Equal(t, "Math 233", events[0].Summary)
}

func TestAssembleEmptyPattern(t *testing.T) {
	rows := []models.CourseRow{{
		Course:         "CSE 3300",
		MeetingPattern: "   ",
		StartDate:      "2025-09-02",
		EndDate:        "2025-12-17",
	}}
	events, skipped := Assemble(rows, Options{TimeZone: "UTC"})
	assert.Empty(t, events)
	assert.Len(t, skipped, 1)
}

func TestOccurrences(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	ev := &models.Event{
		Summary: "CSE 3300 (11)",
		Start:   models.EventDateTime{DateTime: "2025-01-06T11:30:00", TimeZone: "America/Chicago"},
		End:     models.EventDateTime{DateTime: "2025-01-06T12:50:00", TimeZone: "America/Chicago"},
		Recurrence: []string{
			"RRULE:FREQ=WEEKLY;BYDAY=MO;UNTIL=20250127T235959Z",
			"EXDATE;VALUE=DATE:20250113",
		},
	}

	occ, err := Occurrences(ev, loc, 0)
	require.NoError(t, err)
	require.Len(t, occ, 3)

	want := []time.Time{
		time.Date(2025, 1, 6, 11, 30, 0, 0, loc),
		time.Date(2025, 1, 20, 11, 30, 0, 0, loc),
		time.Date(2025, 1, 27, 11, 30, 0, 0, loc),
	}
	for i, w := range want {
		assert.True(t, w.Equal(occ[i]), "occurrence %d: want %s, got %s", i, w, occ[i])
	}
}

func TestOccurrencesNoRule(t *testing.T) {
	loc := time.UTC
	ev := &models.Event{
		Start: models.EventDateTime{DateTime: "2025-01-06T11:30:00", TimeZone: "UTC"},
	}
	occ, err := Occurrences(ev, loc, 0)
	require.NoError(t, err)
	require.Len(t, occ, 1)
	assert.True(t, occ[0].Equal(time.Date(2025, 1, 6, 11, 30, 0, 0, loc)))
}
