package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a bookable time slot owned by one user.
type Event struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    EventStatus
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy reports whether userID currently owns the event.
func (e *Event) IsOwnedBy(userID uuid.UUID) bool {
	return e.UserID == userID
}

// IsPending reports whether the event is locked by an unresolved swap request.
func (e *Event) IsPending() bool {
	return e.Status == EventStatusSwapPending
}

// EventFilter selects events. Nil fields are ignored.
type EventFilter struct {
	OwnerID        *uuid.UUID
	ExcludeOwnerID *uuid.UUID
	Status         *EventStatus
}

// EventUpdateParams holds a partial update of an event. Nil means unchanged.
type EventUpdateParams struct {
	Title     *string
	StartTime *time.Time
	EndTime   *time.Time
	Status    *EventStatus
}

// Apply copies the non-nil params onto a copy of e and returns it.
func (p EventUpdateParams) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	return e
}
