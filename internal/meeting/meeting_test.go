package meeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecal/internal/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *models.Meeting
	}{
		{
			name: "typical workday pattern",
			in:   "Mon/Wed | 11:30 AM - 12:50 PM | URBAUER, Room 00222",
			want: &models.Meeting{
				Days:      []string{"MO", "WE"},
				StartTime: "11:30 AM",
				EndTime:   "12:50 PM",
				Location:  "Urbauer 222",
			},
		},
		{
			name: "ampersand days and to separator",
			in:   "Tue & Thu | 2:00 PM to 3:20 PM | Location",
			want: &models.Meeting{
				Days:      []string{"TU", "TH"},
				StartTime: "2:00 PM",
				EndTime:   "3:20 PM",
				Location:  "Location",
			},
		},
		{
			name: "en dash time separator",
			in:   "Fri | 9:00 AM – 9:50 AM | Seigle 103",
			want: &models.Meeting{
				Days:      []string{"FR"},
				StartTime: "9:00 AM",
				EndTime:   "9:50 AM",
				Location:  "Seigle 103",
			},
		},
		{
			name: "pipe inside location is preserved",
			in:   "Mon | 9:00 AM - 9:50 AM | Bldg | Annex",
			want: &models.Meeting{
				Days:      []string{"MO"},
				StartTime: "9:00 AM",
				EndTime:   "9:50 AM",
				Location:  "Bldg | Annex",
			},
		},
		{
			name: "unrecognized day token falls back to truncated code",
			in:   "Thur | 1:00 PM - 1:50 PM | Somewhere",
			want: &models.Meeting{
				Days:      []string{"TH"},
				StartTime: "1:00 PM",
				EndTime:   "1:50 PM",
				Location:  "Somewhere",
			},
		},
		{
			name: "time segment mismatch leaves empty times",
			in:   "Mon/Wed | TBA | Somewhere",
			want: &models.Meeting{
				Days:      []string{"MO", "WE"},
				StartTime: "",
				EndTime:   "",
				Location:  "Somewhere",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNoMatch(t *testing.T) {
	assert.Nil(t, Parse(""))
	assert.Nil(t, Parse("Mon/Wed"))
	assert.Nil(t, Parse("Mon/Wed | 11:30 AM - 12:50 PM"))
}

func TestParseNBSP(t *testing.T) {
	got := Parse("Mon/Wed\u00a0| 11:30\u00a0AM - 12:50 PM | URBAUER, Room 00222")
	require.NotNil(t, got)
	assert.Equal(t, []string{"MO", "WE"}, got.Days)
	assert.Equal(t, "11:30 AM", got.StartTime)
}

func TestParseIdempotent(t *testing.T) {
	const in = "Mon/Wed | 11:30 AM - 12:50 PM | URBAUER, Room 00222"
	assert.Equal(t, Parse(in), Parse(in))
}

func TestParseDaysPreservesOrder(t *testing.T) {
	got := Parse("Wed,Mon/Fri | 8:00 AM - 8:50 AM | X Y")
	require.NotNil(t, got)
	assert.Equal(t, []string{"WE", "MO", "FR"}, got.Days)
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"URBAUER, Room 00222", "Urbauer 222"},
		{"MCKELVEY Room 01030", "Mckelvey 1030"},
		{"  Seigle   Hall  ", "Seigle Hall"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLocation(tt.in), "input %q", tt.in)
	}
}

func TestParseSection(t *testing.T) {
	tests := []struct {
		name    string
		section string
		course  string
		want    string
	}{
		{
			name:    "strict dept-number pattern",
			section: "CSE 3300-11 - Rapid Prototype Development",
			want:    "11",
		},
		{
			name:    "course prefix layer",
			section: "CSE 3300 - 011",
			course:  "CSE 3300 - Rapid Prototype Development",
			want:    "11",
		},
		{
			name:    "loose fallback on bare code",
			section: "A01",
			want:    "A01",
		},
		{
			name:    "loose fallback strips leading zeros",
			section: "011",
			want:    "11",
		},
		{name: "empty", section: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSection(tt.section, tt.course))
		})
	}
}
