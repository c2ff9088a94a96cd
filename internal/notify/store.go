// Package notify holds the in-memory notification queue and the renderer that
// owns each notification's auto-dismiss timer.
package notify

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/naveenspark/nudge/internal/clock"
	"github.com/naveenspark/nudge/pkg/domain"
)

// Op identifies the mutation that produced an Event.
type Op int

const (
	OpAdded Op = iota + 1
	OpRemoved
)

func (o Op) String() string {
	switch o {
	case OpAdded:
		return "added"
	case OpRemoved:
		return "removed"
	}
	return "unknown"
}

// Event is pushed to observers after every add or remove. Snapshot is the
// full collection as of Revision; revisions strictly increase.
type Event struct {
	Revision uint64
	Op       Op
	ID       uuid.UUID
	Snapshot []domain.Notification
}

// Store is the ordered collection of active notifications. Insertion order is
// display order, most recent last. Safe for concurrent use.
type Store struct {
	clock clock.Clock
	newID func() uuid.UUID

	mu      sync.Mutex
	items   []domain.Notification
	rev     uint64
	subs    map[int]func(Event)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp CreatedAt.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithIDFunc replaces uuid.New as the id source.
func WithIDFunc(fn func() uuid.UUID) Option {
	return func(s *Store) { s.newID = fn }
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		clock: clock.Real(),
		newID: uuid.New,
		subs:  make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a notification built from spec and returns its fresh id.
// Identical specs are not deduplicated.
func (s *Store) Add(spec domain.Spec) uuid.UUID {
	n := domain.Notification{
		ID:        s.newID(),
		Kind:      spec.Kind,
		Title:     spec.Title,
		Message:   spec.Message,
		Duration:  spec.Duration,
		Action:    spec.Action,
		CreatedAt: s.clock.Now(),
	}
	if !n.Kind.Valid() {
		n.Kind = domain.KindInfo
	}
	if n.Duration < 0 {
		n.Duration = 0
	}

	s.mu.Lock()
	s.items = append(s.items, n)
	ev, subs := s.eventLocked(OpAdded, n.ID)
	s.mu.Unlock()

	dispatch(subs, ev)
	return n.ID
}

// Remove deletes the notification with id. Removing an absent id is a no-op;
// the result reports whether anything was removed.
func (s *Store) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.items = slices.Delete(s.items, idx, idx+1)
	ev, subs := s.eventLocked(OpRemoved, id)
	s.mu.Unlock()

	dispatch(subs, ev)
	return true
}

// List returns a snapshot of the current notifications in insertion order.
func (s *Store) List() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Get returns the notification with id, if present.
func (s *Store) Get(id uuid.UUID) (domain.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.items[idx], true
	}
	return domain.Notification{}, false
}

// Len returns the number of notifications currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers fn to receive every subsequent Event. fn runs on the
// goroutine that mutated the store, outside the store lock. The returned
// func unregisters fn.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// snapshot returns the current revision together with the collection.
func (s *Store) snapshot() (uint64, []domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev, s.copyLocked()
}

func (s *Store) indexLocked(id uuid.UUID) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) copyLocked() []domain.Notification {
	out := make([]domain.Notification, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) eventLocked(op Op, id uuid.UUID) (Event, []func(Event)) {
	s.rev++
	ev := Event{Revision: s.rev, Op: op, ID: id, Snapshot: s.copyLocked()}
	subs := make([]func(Event), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	return ev, subs
}

func dispatch(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}
