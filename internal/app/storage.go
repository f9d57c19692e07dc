package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/slotswap-backend/internal/adapter/memory"
	"github.com/heartmarshall/slotswap-backend/internal/adapter/postgres"
	eventrepo "github.com/heartmarshall/slotswap-backend/internal/adapter/postgres/event"
	swaprepo "github.com/heartmarshall/slotswap-backend/internal/adapter/postgres/swaprequest"
	userrepo "github.com/heartmarshall/slotswap-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/slotswap-backend/internal/config"
	"github.com/heartmarshall/slotswap-backend/internal/domain"
)

// eventStore is the union of what the event service, the swap service and
// the dataloaders need from event storage.
type eventStore interface {
	Find(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Event, error)
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Save(ctx context.Context, e *domain.Event) (*domain.Event, error)
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to domain.EventStatus) (*domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type swapStore interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error)
	Create(ctx context.Context, req *domain.SwapRequest) (*domain.SwapRequest, error)
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to domain.SwapStatus) (*domain.SwapRequest, error)
	FindByParticipant(ctx context.Context, userID uuid.UUID) (*domain.SwapRequestList, error)
}

type userStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Storage bundles the repositories of one backend with its unit of work.
type Storage struct {
	Name   string
	Events eventStore
	Swaps  swapStore
	Users  userStore
	Tx     txManager
	Pinger pinger
	Close  func()
}

// OpenStorage connects the backend selected by cfg.Storage.Driver.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		return NewMemoryStorage(memory.New()), nil
	case config.StorageDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		st := NewPostgresStorage(pool)
		st.Close = pool.Close
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// NewPostgresStorage exposes a connection pool as Storage. The caller keeps
// ownership of the pool.
func NewPostgresStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{
		Name:   config.StorageDriverPostgres,
		Events: eventrepo.New(pool),
		Swaps:  swaprepo.New(pool),
		Users:  userrepo.New(pool),
		Tx:     postgres.NewTxManager(pool),
		Pinger: pool,
		Close:  func() {},
	}
}

// NewMemoryStorage exposes an in-process store as Storage.
func NewMemoryStorage(store *memory.Store) *Storage {
	return &Storage{
		Name:   config.StorageDriverMemory,
		Events: store.Events(),
		Swaps:  store.Swaps(),
		Users:  store.Users(),
		Tx:     store,
		Pinger: store,
		Close:  func() {},
	}
}
