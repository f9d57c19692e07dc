// Package memory implements the event, swap request and user repositories in
// process memory. It backs local runs (storage.driver: memory) and the
// service tests, and offers the same unit-of-work contract as the PostgreSQL
// adapter: RunInTx either applies every write made by fn or none of them.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
)

// Store holds all records behind a single RWMutex.
type Store struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]domain.User
	emails map[string]uuid.UUID
	events map[uuid.UUID]domain.Event
	swaps  map[uuid.UUID]domain.SwapRequest
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for updated_at/responded_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		users:  make(map[uuid.UUID]domain.User),
		emails: make(map[string]uuid.UUID),
		events: make(map[uuid.UUID]domain.Event),
		swaps:  make(map[uuid.UUID]domain.SwapRequest),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Events returns the event repository view of the store.
func (s *Store) Events() *EventRepo { return &EventRepo{s: s} }

// Swaps returns the swap request repository view of the store.
func (s *Store) Swaps() *SwapRepo { return &SwapRepo{s: s} }

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Ping reports the store as available unless ctx is already done.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// journal collects undo steps for the writes of one RunInTx call.
type journal struct {
	store *Store
	undo  []func()
}

func (j *journal) record(fn func()) {
	j.undo = append(j.undo, fn)
}

// rollback replays the undo steps newest first.
func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

type journalKey struct{}

func (s *Store) journalFrom(ctx context.Context) (*journal, bool) {
	j, ok := ctx.Value(journalKey{}).(*journal)
	if !ok || j.store != s {
		return nil, false
	}
	return j, true
}

// RunInTx runs fn while holding the store's write lock. Every write made
// through a repository with the ctx passed to fn is journaled; if fn returns
// an error or panics, the journal is replayed so the store is left exactly as
// it was. Nested calls join the outer unit.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := s.journalFrom(ctx); ok {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	j := &journal{store: s}

	defer func() {
		if r := recover(); r != nil {
			j.rollback()
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		j.rollback()
		return err
	}
	return nil
}

// read runs fn under the read lock unless ctx already holds the write lock.
func (s *Store) read(ctx context.Context, fn func()) {
	if _, ok := s.journalFrom(ctx); ok {
		fn()
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

// write runs fn under the write lock unless ctx already holds it. Outside a
// unit of work the journal is discarded: a single write is already atomic.
func (s *Store) write(ctx context.Context, fn func(j *journal) error) error {
	if j, ok := s.journalFrom(ctx); ok {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(j)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&journal{store: s})
}
