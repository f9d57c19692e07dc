// Package event implements owner-scoped management of time slots.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
)

type eventRepo interface {
	Find(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Save(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements event CRUD for the event owner.
type Service struct {
	log    *slog.Logger
	events eventRepo
	tx     txManager
}

// NewService creates a new event service.
func NewService(logger *slog.Logger, events eventRepo, tx txManager) *Service {
	return &Service{
		log:    logger.With("service", "event"),
		events: events,
		tx:     tx,
	}
}

// loadOwned locks the event and hides it from anyone but its owner.
func (s *Service) loadOwned(ctx context.Context, userID, eventID uuid.UUID) (*domain.Event, error) {
	e, err := s.events.GetByIDForUpdate(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !e.IsOwnedBy(userID) {
		return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}
	return e, nil
}
