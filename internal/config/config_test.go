package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDaysOffEntryUnmarshal(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte(`
days_off:
  - "2025-09-01"
  - ["2025-10-04", "2025-10-07"]
`), &cfg)
	require.NoError(t, err)
	require.Len(t, cfg.DaysOff, 2)
	assert.Equal(t, DaysOffEntry{Start: "2025-09-01", End: "2025-09-01"}, cfg.DaysOff[0])
	assert.Equal(t, DaysOffEntry{Start: "2025-10-04", End: "2025-10-07"}, cfg.DaysOff[1])
}

func TestDaysOffEntryUnmarshalRejectsBadRange(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte(`
days_off:
  - ["2025-10-04", "2025-10-05", "2025-10-06"]
`), &cfg)
	assert.Error(t, err)
}

func TestDaysOffEntryMarshalRoundTrip(t *testing.T) {
	in := []DaysOffEntry{
		{Start: "2025-09-01", End: "2025-09-01"},
		{Start: "2025-10-04", End: "2025-10-07"},
	}
	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	var out []DaysOffEntry
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestNormalizeFillsDefaults(t *testing.T) {
	var cfg Config
	cfg.Normalize()

	assert.Equal(t, "America/Chicago", cfg.Timezone)
	assert.Equal(t, 3, cfg.HeaderRow)
	assert.Equal(t, 30, cfg.HeaderScanLimit)
	assert.Equal(t, "Course Listing", cfg.Columns.Course)
	assert.Equal(t, "Meeting Patterns", cfg.Columns.MeetingPattern)
	assert.NotEmpty(t, cfg.DaysOff)
	assert.True(t, cfg.AllowsTimezone("UTC"))
	assert.False(t, cfg.AllowsTimezone("Europe/Paris"))
}

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coursecal.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", cfg.Timezone)

	// The file now exists and loads back equivalently.
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coursecal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: UTC\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Timezone)
	// Everything else falls back to defaults.
	assert.Equal(t, "Course Listing", cfg.Columns.Course)
	assert.Equal(t, 3, cfg.HeaderRow)
}
