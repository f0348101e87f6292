package schedule

import "time"

// DateSpan is one academic-calendar entry: a single date when Start and
// End are equal (or End is empty), otherwise an inclusive range.
type DateSpan struct {
	Start string
	End   string
}

// ExpandDaysOff flattens academic-calendar entries into the ordered list
// of every ISO date they cover. Ranges are walked one calendar day at a
// time, inclusive of both endpoints. Single dates pass through without
// validation; an unparseable range is skipped.
func ExpandDaysOff(spans []DateSpan) []string {
	var out []string
	for _, span := range spans {
		if span.End == "" || span.End == span.Start {
			out = append(out, span.Start)
			continue
		}
		s, err := time.Parse(isoDate, span.Start)
		if err != nil {
			continue
		}
		e, err := time.Parse(isoDate, span.End)
		if err != nil {
			continue
		}
		for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
			out = append(out, d.Format(isoDate))
		}
	}
	return out
}

// FilterRange keeps the dates within [start, end] inclusive. ISO date
// strings order lexicographically, so plain string comparison suffices.
func FilterRange(dates []string, start, end string) []string {
	var out []string
	for _, d := range dates {
		if d >= start && d <= end {
			out = append(out, d)
		}
	}
	return out
}
