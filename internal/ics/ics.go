// Package ics renders assembled course events as RFC 5545 components and
// writes standalone .ics files.
package ics

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"coursecal/internal/models"
)

const prodID = "-//coursecal//EN"

// EventComponent converts an assembled event into a VEVENT. DTSTART and
// DTEND carry the local timestamp with a TZID parameter; recurrence
// lines become RRULE and EXDATE properties.
func EventComponent(event *models.Event) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, uuid.New().String())
	ve.Props.SetText(ical.PropSummary, event.Summary)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())

	setLocalDateTime(ve, ical.PropDateTimeStart, event.Start)
	setLocalDateTime(ve, ical.PropDateTimeEnd, event.End)

	if event.Location != "" {
		ve.Props.SetText(ical.PropLocation, event.Location)
	}

	for _, line := range event.Recurrence {
		switch {
		case strings.HasPrefix(line, "RRULE:"):
			p := ical.NewProp(ical.PropRecurrenceRule)
			p.Value = strings.TrimPrefix(line, "RRULE:")
			ve.Props.Add(p)
		case strings.HasPrefix(line, "EXDATE;VALUE=DATE:"):
			p := ical.NewProp(ical.PropExceptionDates)
			p.Params.Set(ical.ParamValue, "DATE")
			p.Value = strings.TrimPrefix(line, "EXDATE;VALUE=DATE:")
			ve.Props.Add(p)
		}
	}
	return ve
}

// setLocalDateTime writes a floating local timestamp with its zone as a
// TZID parameter, never as a UTC suffix.
func setLocalDateTime(ve *ical.Component, name string, dt models.EventDateTime) {
	p := ical.NewProp(name)
	if dt.TimeZone != "" {
		p.Params.Set(ical.ParamTimezoneID, dt.TimeZone)
	}
	p.Value = compactDateTime(dt.DateTime)
	ve.Props.Add(p)
}

// compactDateTime turns "2025-09-03T11:30:00" into "20250903T113000".
func compactDateTime(s string) string {
	return strings.NewReplacer("-", "", ":", "").Replace(s)
}

// Calendar wraps events in a VCALENDAR.
func Calendar(events []*models.Event) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	for _, ev := range events {
		cal.Children = append(cal.Children, EventComponent(ev))
	}
	return cal
}

// Write encodes the events as a VCALENDAR stream.
func Write(w io.Writer, events []*models.Event) error {
	return ical.NewEncoder(w).Encode(Calendar(events))
}

// WriteFile writes the events to an .ics file at path.
func WriteFile(path string, events []*models.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, events); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return f.Close()
}
