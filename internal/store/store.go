package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// ErrNotFound is returned when an operation names an alarm id that is not in
// the store.
var ErrNotFound = errors.New("alarm not found")

// ToneResolver validates a tone reference and returns its playable path.
// The store only needs the validation side; the path is recomputed at fire
// time by the monitor.
type ToneResolver func(ref string) (string, error)

// Store is the ordered, mutex-guarded collection of alarms shared by the
// interactive menu and the background monitor. All structural mutations and
// reads go through one lock; at this scale nothing finer is warranted.
type Store struct {
	// resolveTone validates tone references at insertion time.
	resolveTone ToneResolver

	// mu serializes all access to alarms and nextID.
	mu sync.Mutex
	// alarms holds the records in insertion order.
	alarms []*domain.Alarm
	// nextID is the identifier handed to the next added alarm. IDs are never
	// reused, so deleting an alarm cannot redirect another one's id.
	nextID uint64
}

// New creates an empty store using the provided tone resolver.
func New(resolveTone ToneResolver) *Store {
	return &Store{
		resolveTone: resolveTone,
		nextID:      1,
	}
}

// Add validates the alarm and appends it to the store, returning the
// assigned id. Validation failures are ValidationErrors: a malformed time of
// day, a snooze duration outside bounds, or an unresolvable tone reference.
// The caller's value is never retained.
func (s *Store) Add(a *domain.Alarm) (uint64, error) {
	if a == nil {
		return 0, domain.NewValidationError("alarm", "alarm must not be nil")
	}

	if err := a.Time.Validate(); err != nil {
		return 0, err
	}

	if a.SnoozeMinutes == 0 {
		a.SnoozeMinutes = domain.DefaultSnoozeMinutes
	}

	if err := domain.ValidateSnoozeMinutes(a.SnoozeMinutes); err != nil {
		return 0, err
	}

	if s.resolveTone != nil {
		if _, err := s.resolveTone(a.Tone); err != nil {
			return 0, err
		}
	}

	record := a.Clone()
	if record.Label == "" {
		record.Label = domain.DefaultLabel(record.Time)
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.nextID
	s.nextID++
	s.alarms = append(s.alarms, record)

	return record.ID, nil
}

// List returns a snapshot of all alarms in insertion order. The returned
// clones are safe to hold across store mutations.
func (s *Store) List() []*domain.Alarm {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Alarm, 0, len(s.alarms))
	for _, a := range s.alarms {
		result = append(result, a.Clone())
	}

	return result
}

// Get returns a clone of the alarm with the given id.
func (s *Store) Get(id uint64) (*domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, _, err := s.locked(id)
	if err != nil {
		return nil, err
	}

	return a.Clone(), nil
}

// Toggle flips the enabled flag of the alarm with the given id and returns
// the updated record. Toggling twice restores the original state.
func (s *Store) Toggle(id uint64) (*domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, _, err := s.locked(id)
	if err != nil {
		return nil, err
	}

	a.Enabled = !a.Enabled

	return a.Clone(), nil
}

// Delete removes the alarm with the given id. On failure the store is
// unchanged.
func (s *Store) Delete(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, i, err := s.locked(id)
	if err != nil {
		return err
	}

	s.alarms = append(s.alarms[:i], s.alarms[i+1:]...)

	return nil
}

// UpdateSnooze changes the snooze duration of the alarm with the given id.
func (s *Store) UpdateSnooze(id uint64, minutes int) error {
	if err := domain.ValidateSnoozeMinutes(minutes); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, _, err := s.locked(id)
	if err != nil {
		return err
	}

	a.SnoozeMinutes = minutes

	return nil
}

// Len returns the number of stored alarms.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.alarms)
}

// EnabledCount returns the number of enabled alarms.
func (s *Store) EnabledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0

	for _, a := range s.alarms {
		if a.Enabled {
			count++
		}
	}

	return count
}

// locked finds an alarm and its index by id. Callers must hold mu.
func (s *Store) locked(id uint64) (*domain.Alarm, int, error) {
	for i, a := range s.alarms {
		if a.ID == id {
			return a, i, nil
		}
	}

	return nil, 0, fmt.Errorf("alarm %d: %w", id, ErrNotFound)
}
