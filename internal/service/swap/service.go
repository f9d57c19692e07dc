// Package swap coordinates the negotiation of slot swaps between two users.
//
// Every transition that touches more than one record runs as a single unit of
// work: both slots and the request change together or not at all.
package swap

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type eventRepo interface {
	Find(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Save(ctx context.Context, e *domain.Event) (*domain.Event, error)
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to domain.EventStatus) (*domain.Event, error)
}

type swapRepo interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error)
	Create(ctx context.Context, req *domain.SwapRequest) (*domain.SwapRequest, error)
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to domain.SwapStatus) (*domain.SwapRequest, error)
	FindByParticipant(ctx context.Context, userID uuid.UUID) (*domain.SwapRequestList, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the swap negotiation protocol.
type Service struct {
	log    *slog.Logger
	events eventRepo
	swaps  swapRepo
	tx     txManager
}

// NewService creates a new swap service.
func NewService(logger *slog.Logger, events eventRepo, swaps swapRepo, tx txManager) *Service {
	return &Service{
		log:    logger.With("service", "swap"),
		events: events,
		swaps:  swaps,
		tx:     tx,
	}
}

// lockPair row-locks both events in ascending id order, so two transitions
// over the same pair always acquire locks in the same sequence.
func (s *Service) lockPair(ctx context.Context, myID, theirID uuid.UUID) (mine, theirs *domain.Event, err error) {
	first, second := myID, theirID
	if bytes.Compare(first[:], second[:]) > 0 {
		first, second = second, first
	}

	locked := make(map[uuid.UUID]*domain.Event, 2)
	for _, id := range []uuid.UUID{first, second} {
		e, err := s.events.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		locked[id] = e
	}
	return locked[myID], locked[theirID], nil
}

// classify passes caller-facing errors through and reports anything else that
// aborted a unit of work as a failed transaction.
func classify(op string, err error) error {
	if domain.IsDomainError(err) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return domain.NewTransactionError(op, err)
}
