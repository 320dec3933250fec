package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pinNow fixes the package clock at a known instant for the duration of a test.
func pinNow(t *testing.T, instant time.Time) {
	t.Helper()
	orig := nowFunc
	nowFunc = func() time.Time { return instant }
	t.Cleanup(func() { nowFunc = orig })
}

func TestParseDate(t *testing.T) {
	t.Run("bare calendar date binds to midnight in reference zone", func(t *testing.T) {
		res := ParseDate("2025-07-04")
		require.True(t, res.OK)
		assert.Equal(t, 2025, res.Instant.Year())
		assert.Equal(t, time.July, res.Instant.Month())
		assert.Equal(t, 4, res.Instant.Day())
		assert.Equal(t, 0, res.Instant.Hour())
		assert.Equal(t, Location(), res.Instant.Location())
	})

	t.Run("full timestamp is normalized to reference zone", func(t *testing.T) {
		res := ParseDate("2025-07-04T12:00:00Z")
		require.True(t, res.OK)
		assert.Equal(t, Location(), res.Instant.Location())
		// UTC noon is 5am Pacific in July (DST).
		assert.Equal(t, 5, res.Instant.Hour())
	})

	t.Run("timestamp without offset is read in the reference zone", func(t *testing.T) {
		res := ParseDate("2025-07-04T15:30")
		require.True(t, res.OK)
		assert.Equal(t, Location(), res.Instant.Location())
		assert.Equal(t, 15, res.Instant.Hour())
		assert.Equal(t, 4, res.Instant.Day())
	})

	t.Run("offset-less early-morning timestamp keeps its stated day", func(t *testing.T) {
		// A naive 01:30 read as UTC would render as the previous Pacific day.
		res := ParseDate("2025-07-04T01:30")
		require.True(t, res.OK)
		assert.Equal(t, 4, res.Instant.Day())
		assert.Equal(t, "July 4, 2025", PrettyDate("2025-07-04T01:30"))
	})

	t.Run("garbage passes through unparsed", func(t *testing.T) {
		res := ParseDate("next tuesday")
		assert.False(t, res.OK)
		assert.Equal(t, "next tuesday", res.Raw)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.False(t, ParseDate("").OK)
	})
}

func TestParseClock_TimeOnlyPolicy(t *testing.T) {
	pinNow(t, time.Date(2025, time.July, 4, 9, 0, 0, 0, time.UTC))

	res := ParseClock("15:45")
	require.True(t, res.OK)

	// The time-of-day is bound to today's date in the reference zone, not to
	// any record date.
	today := Now()
	assert.Equal(t, today.Year(), res.Instant.Year())
	assert.Equal(t, today.Month(), res.Instant.Month())
	assert.Equal(t, today.Day(), res.Instant.Day())
	assert.Equal(t, 15, res.Instant.Hour())
	assert.Equal(t, 45, res.Instant.Minute())
}

func TestPrettyRendering(t *testing.T) {
	t.Run("long form date", func(t *testing.T) {
		assert.Equal(t, "July 4, 2025", PrettyDate("2025-07-04"))
	})

	t.Run("twelve hour clock with lowercase meridiem", func(t *testing.T) {
		assert.Equal(t, "3:45 pm", PrettyTime("15:45"))
		assert.Equal(t, "9:05 am", PrettyTime("09:05"))
	})

	t.Run("unparseable values pass through unchanged", func(t *testing.T) {
		assert.Equal(t, "someday", PrettyDate("someday"))
		assert.Equal(t, "late", PrettyTime("late"))
		assert.Equal(t, "", PrettyDate(""))
	})
}

// Rendering never raises for any (date, time) pair the store can contain.
func TestPrettyNeverPanics(t *testing.T) {
	inputs := []string{
		"", "2025-01-31", "2025-13-40", "2025-07-04T25:61", "12:30", "99:99",
		"T", ":", "null", "2025-07-04T12:00:00+09:00", "tomorrow",
	}
	for _, d := range inputs {
		for _, c := range inputs {
			assert.NotPanics(t, func() {
				_ = PrettyDate(d)
				_ = PrettyTime(c)
			})
		}
	}
}

func TestToday(t *testing.T) {
	// 6am UTC on July 5 is still July 4 in Los Angeles.
	pinNow(t, time.Date(2025, time.July, 5, 6, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-07-04", Today())
}
