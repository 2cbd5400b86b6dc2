package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// acceptAllTones is a resolver that accepts any reference in tests.
func acceptAllTones(ref string) (string, error) {
	return ref, nil
}

// rejectAllTones is a resolver that fails every reference in tests.
func rejectAllTones(ref string) (string, error) {
	return "", domain.NewValidationError("tone", "audio file %q does not exist", ref)
}

// testAlarm builds a valid alarm for the given hour and minute.
func testAlarm(hour, minute int) *domain.Alarm {
	return &domain.Alarm{
		Time:          domain.TimeOfDay{Hour: hour, Minute: minute},
		Label:         fmt.Sprintf("alarm %02d:%02d", hour, minute),
		Tone:          "beep",
		Enabled:       true,
		SnoozeMinutes: 5,
	}
}

// TestAdd_AssignsSequentialIDs verifies ids reflect insertion order and List
// returns exactly the added records in that order.
func TestAdd_AssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	s := New(acceptAllTones)

	const n = 5
	for i := 0; i < n; i++ {
		id, err := s.Add(testAlarm(6+i, 15))
		require.NoError(t, err)
		require.Equal(t, uint64(i+1), id)
	}

	listed := s.List()
	require.Len(t, listed, n)

	for i, a := range listed {
		require.Equal(t, uint64(i+1), a.ID)
		require.Equal(t, 6+i, a.Time.Hour)
	}
}

// TestAdd_Validation covers the rejection paths: bad time, bad snooze,
// unresolvable tone.
func TestAdd_Validation(t *testing.T) {
	t.Parallel()

	s := New(acceptAllTones)

	_, err := s.Add(nil)
	require.True(t, domain.IsValidation(err))

	bad := testAlarm(7, 0)
	bad.Time.Hour = 25
	_, err = s.Add(bad)
	require.True(t, domain.IsValidation(err))

	bad = testAlarm(7, 0)
	bad.SnoozeMinutes = 61
	_, err = s.Add(bad)
	require.True(t, domain.IsValidation(err))

	rejecting := New(rejectAllTones)
	_, err = rejecting.Add(testAlarm(7, 0))
	require.True(t, domain.IsValidation(err))
	require.Equal(t, 0, rejecting.Len())
}

// TestAdd_Defaults verifies the substituted label and snooze duration.
func TestAdd_Defaults(t *testing.T) {
	t.Parallel()

	s := New(acceptAllTones)

	a := testAlarm(9, 30)
	a.Label = ""
	a.SnoozeMinutes = 0

	id, err := s.Add(a)
	require.NoError(t, err)

	got, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, "Alarm at 09:30", got.Label)
	require.Equal(t, domain.DefaultSnoozeMinutes, got.SnoozeMinutes)
	require.False(t, got.CreatedAt.IsZero())
}

// TestAdd_DoesNotRetainCallerValue ensures mutating the argument after Add
// cannot change the stored record.
func TestAdd_DoesNotRetainCallerValue(t *testing.T) {
	t.Parallel()

	s := New(acceptAllTones)

	a := testAlarm(7, 0)
	id, err := s.Add(a)
	require.NoError(t, err)

	a.Label = "mutated"

	got, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, "alarm 07:00", got.Label)
}

// TestToggle_DoubleToggleRestoresState checks toggle idempotence over two calls.
func TestToggle_DoubleToggleRestoresState(t *testing.T) {
	t.Parallel()

	s := New(acceptAllTones)
	id, err := s.Add(testAlarm(7, 0))
	require.NoError(t, err)

	first, err := s.Toggle(id)
	require.NoError(t, err)
	require.False(t, first.Enabled)

	second, err := s.Toggle(id)
	require.NoError(t, err)
	require.True(t, second.Enabled)

	_, err = s.Toggle(999)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestDelete_UnknownIDLeavesStoreUnchanged verifies the NotFound failure mode.
func TestDelete_UnknownIDLeavesStoreUnchanged(t *testing.T) {
	t.Parallel()

	s := New(acceptAllTones)
	id, err := s.Add(testAlarm(7, 0))
	require.NoError(t, err)

	require.ErrorIs(t, s.Delete(999), ErrNotFound)
	require.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(id))
	require.Equal(t, 0, s.Len())

	// Ids are not reused after deletion.
	next, err := s.Add(testAlarm(8, 0))
	require.NoError(t, err)
	require.Equal(t, uint64(2), next)
}

// TestUpdateSnooze validates bounds and the NotFound failure mode.
func TestUpdateSnooze(t *testing.T) {
	t.Parallel()

	s := New(acceptAllTones)
	id, err := s.Add(testAlarm(7, 0))
	require.NoError(t, err)

	require.NoError(t, s.UpdateSnooze(id, 15))

	got, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, 15, got.SnoozeMinutes)

	err = s.UpdateSnooze(id, 0)
	require.True(t, domain.IsValidation(err))

	err = s.UpdateSnooze(id, 61)
	require.True(t, domain.IsValidation(err))

	require.ErrorIs(t, s.UpdateSnooze(999, 10), ErrNotFound)
}

// TestEnabledCount counts only enabled alarms.
func TestEnabledCount(t *testing.T) {
	t.Parallel()

	s := New(acceptAllTones)

	id1, err := s.Add(testAlarm(7, 0))
	require.NoError(t, err)

	_, err = s.Add(testAlarm(8, 0))
	require.NoError(t, err)

	require.Equal(t, 2, s.EnabledCount())

	_, err = s.Toggle(id1)
	require.NoError(t, err)
	require.Equal(t, 1, s.EnabledCount())
}

// TestDuplicateTimesPermitted verifies no uniqueness is enforced across fields.
func TestDuplicateTimesPermitted(t *testing.T) {
	t.Parallel()

	s := New(acceptAllTones)

	for i := 0; i < 3; i++ {
		_, err := s.Add(testAlarm(7, 0))
		require.NoError(t, err)
	}

	require.Equal(t, 3, s.Len())
}
