package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
)

// EventRepo stores events.
type EventRepo struct {
	s *Store
}

// Find returns events matching filter ordered by start time.
func (r *EventRepo) Find(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	var out []*domain.Event
	r.s.read(ctx, func() {
		for _, e := range r.s.events {
			if filter.OwnerID != nil && e.UserID != *filter.OwnerID {
				continue
			}
			if filter.ExcludeOwnerID != nil && e.UserID == *filter.ExcludeOwnerID {
				continue
			}
			if filter.Status != nil && e.Status != *filter.Status {
				continue
			}
			out = append(out, &e)
		}
	})

	slices.SortFunc(out, func(a, b *domain.Event) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	if out == nil {
		out = []*domain.Event{}
	}
	return out, nil
}

// GetByID returns an event by id.
func (r *EventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var (
		e  domain.Event
		ok bool
	)
	r.s.read(ctx, func() { e, ok = r.s.events[id] })
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return &e, nil
}

// GetByIDForUpdate returns an event. Inside RunInTx the whole store is
// already locked, so this is the same as GetByID.
func (r *EventRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return r.GetByID(ctx, id)
}

// GetByIDs returns the events with the given ids. Missing ids are skipped.
func (r *EventRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0, len(ids))
	r.s.read(ctx, func() {
		for _, id := range ids {
			if e, ok := r.s.events[id]; ok {
				out = append(out, &e)
			}
		}
	})
	return out, nil
}

// Create stores a new event with version 1.
func (r *EventRepo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	created := *e
	created.Version = 1

	err := r.s.write(ctx, func(j *journal) error {
		if _, exists := r.s.events[e.ID]; exists {
			return fmt.Errorf("event %s: %w", e.ID, domain.ErrAlreadyExists)
		}
		r.s.events[e.ID] = created
		j.record(func() { delete(r.s.events, e.ID) })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Save replaces the stored event if its version still equals e.Version and
// bumps the version. A stale version yields domain.ErrConflict.
func (r *EventRepo) Save(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	var saved domain.Event
	err := r.s.write(ctx, func(j *journal) error {
		prev, ok := r.s.events[e.ID]
		if !ok {
			return fmt.Errorf("event %s: %w", e.ID, domain.ErrNotFound)
		}
		if prev.Version != e.Version {
			return fmt.Errorf("event %s: %w", e.ID, domain.ErrConflict)
		}

		saved = *e
		saved.CreatedAt = prev.CreatedAt
		saved.Version = prev.Version + 1
		saved.UpdatedAt = r.s.now()
		r.s.events[e.ID] = saved
		j.record(func() { r.s.events[e.ID] = prev })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// CompareAndSetStatus moves the event from one status to another.
// A status mismatch yields domain.ErrInvalidState.
func (r *EventRepo) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to domain.EventStatus) (*domain.Event, error) {
	var saved domain.Event
	err := r.s.write(ctx, func(j *journal) error {
		prev, ok := r.s.events[id]
		if !ok {
			return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
		}
		if prev.Status != from {
			return fmt.Errorf("event %s is %s, not %s: %w", id, prev.Status, from, domain.ErrInvalidState)
		}

		saved = prev
		saved.Status = to
		saved.Version++
		saved.UpdatedAt = r.s.now()
		r.s.events[id] = saved
		j.record(func() { r.s.events[id] = prev })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Delete removes an event.
func (r *EventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(j *journal) error {
		prev, ok := r.s.events[id]
		if !ok {
			return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
		}
		delete(r.s.events, id)
		j.record(func() { r.s.events[id] = prev })
		return nil
	})
}
