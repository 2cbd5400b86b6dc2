package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestParseTimeOfDay_Valid checks that well-formed 24-hour values parse and
// render back zero-padded.
func TestParseTimeOfDay_Valid(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"00:00":  "00:00",
		"23:59":  "23:59",
		"07:05":  "07:05",
		"7:5":    "07:05",
		" 14:30": "14:30",
	}
	for input, want := range cases {
		got, err := ParseTimeOfDay(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got.String(), input)
	}
}

// TestParseTimeOfDay_Invalid checks that malformed or out-of-range values are
// rejected with a ValidationError.
func TestParseTimeOfDay_Invalid(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"abc",
		"25:00",
		"24:00",
		"12:60",
		"-1:30",
		"12:-5",
		"12",
		"12:30:00",
		"12;30",
		"aa:bb",
	}
	for _, input := range inputs {
		_, err := ParseTimeOfDay(input)
		require.Error(t, err, input)
		require.True(t, IsValidation(err), input)
	}
}

// TestTimeOfDayMatches verifies minute-level matching against a wall-clock time.
func TestTimeOfDayMatches(t *testing.T) {
	t.Parallel()

	tod := TimeOfDay{Hour: 7, Minute: 30}
	require.True(t, tod.Matches(time.Date(2024, 5, 1, 7, 30, 0, 0, time.Local)))
	require.True(t, tod.Matches(time.Date(2024, 5, 1, 7, 30, 59, 0, time.Local)))
	require.False(t, tod.Matches(time.Date(2024, 5, 1, 7, 31, 0, 0, time.Local)))
	require.False(t, tod.Matches(time.Date(2024, 5, 1, 8, 30, 0, 0, time.Local)))
}

// TestValidateSnoozeMinutes checks the 1-60 minute bounds.
func TestValidateSnoozeMinutes(t *testing.T) {
	t.Parallel()

	for _, minutes := range []int{MinSnoozeMinutes, DefaultSnoozeMinutes, 10, 15, MaxSnoozeMinutes} {
		require.NoError(t, ValidateSnoozeMinutes(minutes))
	}

	for _, minutes := range []int{0, -1, 61, 1000} {
		err := ValidateSnoozeMinutes(minutes)
		require.Error(t, err)
		require.True(t, IsValidation(err))
	}
}

// TestAlarmClone verifies that Clone returns an independent copy and handles nil safely.
func TestAlarmClone(t *testing.T) {
	t.Parallel()

	require.Nil(t, (*Alarm)(nil).Clone())

	a := &Alarm{
		ID:            3,
		Time:          TimeOfDay{Hour: 6, Minute: 45},
		Label:         "Workout",
		Tone:          "bell",
		Enabled:       true,
		SnoozeMinutes: 10,
		CreatedAt:     time.Now(),
	}

	b := a.Clone()
	require.Equal(t, a, b)
	require.NotSame(t, a, b)

	b.Label = "changed"
	require.Equal(t, "Workout", a.Label)
}

// TestDefaultLabel checks the substituted label format for unnamed alarms.
func TestDefaultLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Alarm at 07:30", DefaultLabel(TimeOfDay{Hour: 7, Minute: 30}))
}
