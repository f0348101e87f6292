// Package config holds the YAML configuration: column header names,
// header-row discovery bounds, the allowed timezone list and the
// academic calendar (days with no class).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"coursecal/internal/schedule"
)

// Columns maps the five required spreadsheet headers. Matching is exact.
type Columns struct {
	Course         string `yaml:"course"`
	Section        string `yaml:"section"`
	MeetingPattern string `yaml:"meeting_pattern"`
	StartDate      string `yaml:"start_date"`
	EndDate        string `yaml:"end_date"`
}

// DaysOffEntry is one academic-calendar entry. In YAML it is written
// either as a scalar ISO date or as a two-element [start, end] inclusive
// range, matching the shape schedule exports have always used.
type DaysOffEntry struct {
	Start string
	End   string
}

// UnmarshalYAML accepts both the scalar and the two-element list form.
func (e *DaysOffEntry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		e.Start = value.Value
		e.End = value.Value
		return nil
	case yaml.SequenceNode:
		var pair []string
		if err := value.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("days_off range must have exactly two dates, got %d", len(pair))
		}
		e.Start = pair[0]
		e.End = pair[1]
		return nil
	default:
		return errors.New("days_off entry must be a date or a [start, end] pair")
	}
}

// MarshalYAML writes single dates back as scalars and ranges as pairs.
func (e DaysOffEntry) MarshalYAML() (interface{}, error) {
	if e.End == "" || e.End == e.Start {
		return e.Start, nil
	}
	return []string{e.Start, e.End}, nil
}

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the default IANA zone for created events.
	Timezone string `yaml:"timezone"`

	// Timezones is the fixed list of zones the tool accepts.
	Timezones []string `yaml:"timezones"`

	// HeaderRow is the 1-based row tried first when locating headers.
	HeaderRow int `yaml:"header_row"`

	// HeaderScanLimit bounds the fallback scan for the header row.
	HeaderScanLimit int `yaml:"header_scan_limit"`

	// Columns holds the exact-match header names.
	Columns Columns `yaml:"columns"`

	// DaysOff is the academic calendar: dates on which no class is held.
	DaysOff []DaysOffEntry `yaml:"days_off"`
}

// DefaultConfig returns the built-in configuration: Workday export
// headers and the Fall 2025 academic calendar.
func DefaultConfig() *Config {
	return &Config{
		Timezone: "America/Chicago",
		Timezones: []string{
			"America/Los_Angeles",
			"America/Chicago",
			"America/New_York",
			"UTC",
		},
		HeaderRow:       3,
		HeaderScanLimit: 30,
		Columns: Columns{
			Course:         "Course Listing",
			Section:        "Section",
			MeetingPattern: "Meeting Patterns",
			StartDate:      "Start Date",
			EndDate:        "End Date",
		},
		DaysOff: []DaysOffEntry{
			{Start: "2025-09-01", End: "2025-09-01"}, // Labor Day
			{Start: "2025-10-04", End: "2025-10-07"}, // Fall break
			{Start: "2025-11-26", End: "2025-11-30"}, // Thanksgiving break
			{Start: "2025-12-08", End: "2025-12-10"}, // Reading days
			{Start: "2025-12-11", End: "2025-12-17"}, // Final exams
		},
	}
}

// Normalize fills missing or zero values with defaults so partially
// filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if len(c.Timezones) == 0 {
		c.Timezones = def.Timezones
	}
	if c.HeaderRow <= 0 {
		c.HeaderRow = def.HeaderRow
	}
	if c.HeaderScanLimit <= 0 {
		c.HeaderScanLimit = def.HeaderScanLimit
	}
	if c.Columns.Course == "" {
		c.Columns.Course = def.Columns.Course
	}
	if c.Columns.Section == "" {
		c.Columns.Section = def.Columns.Section
	}
	if c.Columns.MeetingPattern == "" {
		c.Columns.MeetingPattern = def.Columns.MeetingPattern
	}
	if c.Columns.StartDate == "" {
		c.Columns.StartDate = def.Columns.StartDate
	}
	if c.Columns.EndDate == "" {
		c.Columns.EndDate = def.Columns.EndDate
	}
	if c.DaysOff == nil {
		c.DaysOff = def.DaysOff
	}
}

// AllowsTimezone reports whether tz is in the configured list.
func (c *Config) AllowsTimezone(tz string) bool {
	for _, t := range c.Timezones {
		if t == tz {
			return true
		}
	}
	return false
}

// DaysOffSpans converts the configured entries into schedule date spans.
func (c *Config) DaysOffSpans() []schedule.DateSpan {
	spans := make([]schedule.DateSpan, len(c.DaysOff))
	for i, e := range c.DaysOff {
		spans[i] = schedule.DateSpan{Start: e.Start, End: e.End}
	}
	return spans
}

// Load loads configuration from the given YAML path. A missing file is a
// first run: a default config is written there (so the academic calendar
// can be edited) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the configuration atomically: temp file in the same
// directory, 0600 perms, then rename.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".coursecal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
