package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/pathakanu/healthAI/internal/kvstore"
	"github.com/pathakanu/healthAI/internal/metrics"
	"github.com/pathakanu/healthAI/internal/model"
)

// StorageKey is the durable key holding the whole reminder list.
const StorageKey = "healthAI_reminders"

// Input carries the user-editable fields of a reminder.
type Input struct {
	MedicineName string          `json:"medicineName" validate:"required"`
	Dosage       string          `json:"dosage" validate:"required"`
	Time         string          `json:"time" validate:"required,clock"`
	Frequency    model.Frequency `json:"frequency" validate:"omitempty,frequency"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(TimeLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
		return model.Frequency(fl.Field().String()).Valid()
	})
	return v
}

// normalize trims the input and fills the default frequency.
func (in Input) normalize() Input {
	in.MedicineName = strings.TrimSpace(in.MedicineName)
	in.Dosage = strings.TrimSpace(in.Dosage)
	in.Time = strings.TrimSpace(in.Time)
	if t, err := time.Parse(TimeLayout, in.Time); err == nil {
		in.Time = t.Format(TimeLayout)
	}
	in.Frequency = model.Frequency(strings.TrimSpace(string(in.Frequency)))
	if in.Frequency == "" {
		in.Frequency = model.FrequencyDaily
	}
	return in
}

// Validate reports the first invalid field as a *ValidationError.
func (in Input) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "reminder", Reason: err.Error()}
	}
	fe := fieldErrs[0]
	reason := "is required"
	switch fe.Tag() {
	case "clock":
		reason = "must be HH:MM"
	case "frequency":
		reason = "must be one of once, daily, twice, three, weekly"
	}
	return &ValidationError{Field: fe.Field(), Reason: reason}
}

// Store owns the ordered reminder list and mirrors it to a kvstore.Store.
// Every mutation rewrites the whole list under StorageKey.
type Store struct {
	mu        sync.Mutex
	kv        kvstore.Store
	reminders []model.Reminder
	nextID    int
	stale     bool
	now       func() time.Time
	metrics   *metrics.Collectors
	logger    *log.Logger
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithMetrics records mutations and storage failures.
func WithMetrics(m *metrics.Collectors) StoreOption {
	return func(s *Store) { s.metrics = m }
}

// NewStore returns an empty store. Call Load to restore persisted reminders.
func NewStore(kv kvstore.Store, logger *log.Logger, opts ...StoreOption) *Store {
	s := &Store{
		kv:     kv,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one. A missing blob
// yields an empty list. An unreadable or malformed blob also yields an empty
// list, and the returned *StorageError says why; the store stays usable.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders = nil
	s.nextID = 0
	s.stale = true

	blob, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		s.stale = false
		return nil
	}
	if err != nil {
		s.metrics.StorageError("read")
		return &StorageError{Op: "read", Err: err}
	}

	var saved []model.Reminder
	if err := json.Unmarshal(blob, &saved); err != nil {
		s.metrics.StorageError("decode")
		return &StorageError{Op: "decode", Err: err}
	}

	s.stale = false
	seen := make(map[int]bool, len(saved))
	for _, r := range saved {
		if seen[r.ID] {
			s.logger.Warn("reminders: dropping duplicate id from storage", "id", r.ID)
			continue
		}
		seen[r.ID] = true
		s.reminders = append(s.reminders, r)
		if r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
	}
	return nil
}

// errStaleList refuses to overwrite storage that the last Load could not read.
var errStaleList = errors.New("last load failed, refusing to overwrite stored reminders")

// Persist writes the current list, overwriting the previous value. After a
// failed Load it refuses until a mutation has written a new list.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale {
		return &StorageError{Op: "write", Err: errStaleList}
	}
	return s.write(ctx, s.reminders)
}

func (s *Store) write(ctx context.Context, reminders []model.Reminder) error {
	if reminders == nil {
		reminders = []model.Reminder{}
	}
	blob, err := json.Marshal(reminders)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := s.kv.Put(ctx, StorageKey, blob); err != nil {
		s.metrics.StorageError("write")
		return &StorageError{Op: "write", Err: err}
	}
	s.stale = false
	return nil
}

// Add validates in, appends a reminder with the next id and persists the list.
// On any error the in-memory list is left as it was.
func (s *Store) Add(ctx context.Context, in Input) (model.Reminder, error) {
	in = in.normalize()
	if err := in.Validate(); err != nil {
		s.metrics.ReminderMutation("add", "invalid")
		return model.Reminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, next := s.appendLocked(s.reminders, in)
	if err := s.write(ctx, next); err != nil {
		s.metrics.ReminderMutation("add", "error")
		return model.Reminder{}, err
	}
	s.reminders = next
	s.nextID++
	s.metrics.ReminderMutation("add", "ok")
	return r, nil
}

func (s *Store) appendLocked(base []model.Reminder, in Input) (model.Reminder, []model.Reminder) {
	r := model.Reminder{
		ID:           s.nextID,
		MedicineName: in.MedicineName,
		Dosage:       in.Dosage,
		Time:         in.Time,
		Frequency:    in.Frequency,
		CreatedAt:    s.now(),
	}
	next := make([]model.Reminder, 0, len(base)+1)
	next = append(next, base...)
	return r, append(next, r)
}

// Delete removes the reminder with id. It reports whether anything was removed;
// an unknown id leaves the store untouched and is not an error.
func (s *Store) Delete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := without(s.reminders, id)
	if !found {
		return false, nil
	}
	if err := s.write(ctx, next); err != nil {
		s.metrics.ReminderMutation("delete", "error")
		return false, err
	}
	s.reminders = next
	s.metrics.ReminderMutation("delete", "ok")
	return true, nil
}

// Edit deletes id and adds in as a new reminder, which gets a fresh id.
// Both steps are persisted together; invalid input changes nothing.
func (s *Store) Edit(ctx context.Context, id int, in Input) (model.Reminder, error) {
	in = in.normalize()
	if err := in.Validate(); err != nil {
		s.metrics.ReminderMutation("edit", "invalid")
		return model.Reminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	remaining, _ := without(s.reminders, id)
	r, next := s.appendLocked(remaining, in)
	if err := s.write(ctx, next); err != nil {
		s.metrics.ReminderMutation("edit", "error")
		return model.Reminder{}, err
	}
	s.reminders = next
	s.nextID++
	s.metrics.ReminderMutation("edit", "ok")
	return r, nil
}

// Get returns the reminder with id, if present.
func (s *Store) Get(id int) (model.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reminders {
		if r.ID == id {
			return r, true
		}
	}
	return model.Reminder{}, false
}

// List returns a copy of the reminders in insertion order.
func (s *Store) List() []model.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Reminder{}, s.reminders...)
}

func without(reminders []model.Reminder, id int) ([]model.Reminder, bool) {
	for i, r := range reminders {
		if r.ID == id {
			next := make([]model.Reminder, 0, len(reminders)-1)
			next = append(next, reminders[:i]...)
			return append(next, reminders[i+1:]...), true
		}
	}
	return reminders, false
}
