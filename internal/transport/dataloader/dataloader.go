// Package dataloader provides per-request DataLoaders that batch the owner and
// slot lookups needed to enrich REST responses into single repository calls.
// DataLoaders call repositories directly, bypassing the service layer; callers
// only ask for records referenced by data the service already authorized.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// ---------------------------------------------------------------------------
// Repository interfaces (consumer-defined)
// ---------------------------------------------------------------------------

type userRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
}

type eventRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Event, error)
}

// Repos holds all repositories required by DataLoaders.
type Repos struct {
	Users  userRepo
	Events eventRepo
}

// ---------------------------------------------------------------------------
// Loaders holds all per-request DataLoader instances.
// ---------------------------------------------------------------------------

// Loaders is created per request via NewLoaders. A missing record loads as nil.
type Loaders struct {
	UserByID  *dataloader.Loader[uuid.UUID, *domain.User]
	EventByID *dataloader.Loader[uuid.UUID, *domain.Event]
}

// NewLoaders creates a new set of DataLoaders backed by the given repositories.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		UserByID:  newLoader(newUsersBatchFn(repos.Users)),
		EventByID: newLoader(newEventsBatchFn(repos.Events)),
	}
}

// newLoader creates a dataloader.Loader with standard batch parameters.
func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is middleware configured?")
	}
	return l
}
