package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned when no record matches an email
var ErrNotFound = errors.New("employee not found")

// ErrCorruptSlot is returned when the persisted slot does not hold a roster
var ErrCorruptSlot = errors.New("failed to parse persisted roster")

// ChangeKind identifies which mutation produced a Change
type ChangeKind string

const (
	ChangeInitialize ChangeKind = "initialize"
	ChangeAppend     ChangeKind = "append"
	ChangeRemove     ChangeKind = "remove"
	ChangeStatus     ChangeKind = "status"
	ChangeNotes      ChangeKind = "notes"
	ChangeReset      ChangeKind = "reset"
	ChangeReload     ChangeKind = "reload"
)

// Change describes one committed mutation, delivered to subscribers
type Change struct {
	Kind     ChangeKind
	Email    string
	Affected int
	Count    int
}

// Store is the authoritative roster. Every mutation rewrites the whole
// sequence into the blob store's slot. A Store is owned by a single
// goroutine; callers receive copies, never aliases.
type Store struct {
	blob BlobStore
	key  string
	log  *slog.Logger

	employees   []Employee
	subscribers map[int]func(Change)
	nextSubID   int
	persistErr  error
	usedSeed    bool
}

// NewStore creates a store over the given slot. Call Initialize before use.
func NewStore(blob BlobStore, key string) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Store{
		blob:        blob,
		key:         key,
		log:         slog.Default(),
		subscribers: make(map[int]func(Change)),
	}
}

// SetLogger replaces the diagnostics logger
func (s *Store) SetLogger(l *slog.Logger) {
	if l != nil {
		s.log = l
	}
}

// Key returns the storage slot name
func (s *Store) Key() string {
	return s.key
}

// Initialize loads the persisted roster, seeding the default dataset when
// the slot is absent, unreadable or corrupt. The defaults are written back
// only for an empty or corrupt slot; any other read failure leaves the slot
// untouched. It never fails.
func (s *Store) Initialize() {
	employees, err := s.read()
	switch {
	case err == nil:
		s.employees = employees
		s.usedSeed = false
		s.persist()
	case errors.Is(err, ErrSlotEmpty):
		s.employees = DefaultEmployees()
		s.usedSeed = true
		s.persist()
	case errors.Is(err, ErrCorruptSlot):
		s.log.Warn("persisted roster corrupt, using defaults", "key", s.key, "err", err)
		s.employees = DefaultEmployees()
		s.usedSeed = true
		s.persist()
	default:
		s.log.Warn("persisted roster unreadable, using defaults without saving", "key", s.key, "err", err)
		s.employees = DefaultEmployees()
		s.usedSeed = true
	}
	s.notify(Change{Kind: ChangeInitialize, Count: len(s.employees)})
}

// SeededDefaults reports whether Initialize fell back to the default dataset
func (s *Store) SeededDefaults() bool {
	return s.usedSeed
}

// Reload re-reads the slot after an external write. A missing or corrupt
// slot leaves the in-memory roster untouched and returns the error.
func (s *Store) Reload() (bool, error) {
	employees, err := s.read()
	if err != nil {
		return false, err
	}
	if equalEmployees(s.employees, employees) {
		return false, nil
	}
	s.employees = employees
	s.notify(Change{Kind: ChangeReload, Count: len(s.employees)})
	return true, nil
}

func (s *Store) read() ([]Employee, error) {
	data, err := s.blob.Get(s.key)
	if err != nil {
		return nil, err
	}
	var employees []Employee
	if err := json.Unmarshal(data, &employees); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSlot, err)
	}
	if employees == nil {
		return nil, fmt.Errorf("%w: not a list", ErrCorruptSlot)
	}
	for i := range employees {
		s.normalizeStatus(&employees[i])
	}
	return employees, nil
}

// normalizeStatus maps a missing or unrecognized status to Active and
// canonicalizes the spelling of a recognized one
func (s *Store) normalizeStatus(e *Employee) {
	st, err := ParseStatus(string(e.Status))
	if err != nil {
		s.log.Warn("persisted record has invalid status, using Active", "email", e.Email, "status", string(e.Status))
		st = StatusActive
	}
	e.Status = st
}

// Employees returns a copy of the roster in insertion order
func (s *Store) Employees() []Employee {
	out := make([]Employee, len(s.employees))
	for i, e := range s.employees {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the number of records
func (s *Store) Len() int {
	return len(s.employees)
}

// Find returns a copy of the first record with the given email
func (s *Store) Find(email string) (Employee, error) {
	for _, e := range s.employees {
		if e.Email == email {
			return e.Clone(), nil
		}
	}
	return Employee{}, fmt.Errorf("%w: %s", ErrNotFound, email)
}

// Contains reports whether any record has the given email
func (s *Store) Contains(email string) bool {
	_, err := s.Find(email)
	return err == nil
}

// Append adds a record to the end of the roster. Duplicate emails are
// accepted; by-email operations then affect every match.
func (s *Store) Append(e Employee) {
	if s.Contains(e.Email) {
		s.log.Warn("appending record with duplicate email", "email", e.Email)
	}
	s.employees = append(s.employees, e.Clone())
	s.persist()
	s.notify(Change{Kind: ChangeAppend, Email: e.Email, Affected: 1, Count: len(s.employees)})
}

// Remove deletes every record with the given email once the gate confirms.
// It returns the number removed and whether the gate agreed.
func (s *Store) Remove(email string, gate Confirmer) (int, bool) {
	if gate == nil || !gate.Confirm(DeletePrompt) {
		return 0, false
	}
	kept := make([]Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if e.Email != email {
			kept = append(kept, e)
		}
	}
	removed := len(s.employees) - len(kept)
	if removed == 0 {
		return 0, true
	}
	s.employees = kept
	s.persist()
	s.notify(Change{Kind: ChangeRemove, Email: email, Affected: removed, Count: len(s.employees)})
	return removed, true
}

// SetStatus rewrites the status of every record with the given email
func (s *Store) SetStatus(email string, status Status) int {
	n := s.update(email, func(e *Employee) { e.Status = status })
	if n > 0 {
		s.persist()
		s.notify(Change{Kind: ChangeStatus, Email: email, Affected: n, Count: len(s.employees)})
	}
	return n
}

// SetNotes rewrites the notes of every record with the given email
func (s *Store) SetNotes(email, notes string) int {
	n := s.update(email, func(e *Employee) { e.Notes = notes })
	if n > 0 {
		s.persist()
		s.notify(Change{Kind: ChangeNotes, Email: email, Affected: n, Count: len(s.employees)})
	}
	return n
}

// ResetToDefaults replaces the roster with the default dataset once the
// gate confirms
func (s *Store) ResetToDefaults(gate Confirmer) bool {
	if gate == nil || !gate.Confirm(ResetPrompt) {
		return false
	}
	s.employees = DefaultEmployees()
	s.persist()
	s.notify(Change{Kind: ChangeReset, Count: len(s.employees)})
	return true
}

func (s *Store) update(email string, apply func(*Employee)) int {
	n := 0
	for i := range s.employees {
		if s.employees[i].Email == email {
			apply(&s.employees[i])
			n++
		}
	}
	return n
}

// persist writes the full roster. Failures are kept and logged; the
// in-memory roster stays authoritative.
func (s *Store) persist() {
	data, err := json.Marshal(s.employees)
	if err == nil {
		err = s.blob.Put(s.key, data)
	}
	if err != nil {
		s.log.Warn("failed to persist roster", "key", s.key, "err", err)
	}
	s.persistErr = err
}

// LastPersistError returns the error from the most recent write, if any
func (s *Store) LastPersistError() error {
	return s.persistErr
}

// Subscribe registers fn for every committed change and returns a function
// that removes it
func (s *Store) Subscribe(fn func(Change)) func() {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() { delete(s.subscribers, id) }
}

func (s *Store) notify(c Change) {
	for _, fn := range s.subscribers {
		fn(c)
	}
}

func equalEmployees(a, b []Employee) bool {
	if len(a) != len(b) {
		return false
	}
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	return errA == nil && errB == nil && string(ja) == string(jb)
}
