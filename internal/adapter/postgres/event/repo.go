// Package event implements the Event repository using PostgreSQL.
package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/slotswap-backend/internal/adapter/postgres"
	"github.com/heartmarshall/slotswap-backend/internal/domain"
)

const table = "events"

var columns = []string{
	"id", "user_id", "title", "start_time", "end_time",
	"status", "version", "created_at", "updated_at",
}

// row is the scan target for a single events row.
type row struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Title     string    `db:"title"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Status    string    `db:"status"`
	Version   int64     `db:"version"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.Event {
	return &domain.Event{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		StartTime: r.StartTime.UTC(),
		EndTime:   r.EndTime.UTC(),
		Status:    domain.EventStatus(r.Status),
		Version:   r.Version,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new event repository. db is usually a *pgxpool.Pool; inside
// TxManager.RunInTx the transaction from ctx is used instead.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// Find returns events matching filter ordered by start time.
func (r *Repo) Find(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	qb := postgres.Builder().Select(columns...).From(table).OrderBy("start_time ASC", "id ASC")

	if filter.OwnerID != nil {
		qb = qb.Where(squirrel.Eq{"user_id": *filter.OwnerID})
	}
	if filter.ExcludeOwnerID != nil {
		qb = qb.Where(squirrel.NotEq{"user_id": *filter.ExcludeOwnerID})
	}
	if filter.Status != nil {
		qb = qb.Where(squirrel.Eq{"status": filter.Status.String()})
	}

	return r.selectMany(ctx, qb)
}

// GetByID returns an event by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	qb := postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"id": id})
	return r.selectOne(ctx, qb, id)
}

// GetByIDForUpdate returns an event and locks its row until the enclosing
// transaction ends. Outside a transaction the lock is released immediately.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	qb := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE")
	return r.selectOne(ctx, qb, id)
}

// GetByIDs returns the events with the given ids. Missing ids are skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Event, error) {
	if len(ids) == 0 {
		return []*domain.Event{}, nil
	}
	qb := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC")
	return r.selectMany(ctx, qb)
}

// Create inserts a new event and returns the persisted row.
func (r *Repo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	qb := postgres.Builder().Insert(table).
		Columns(columns...).
		Values(e.ID, e.UserID, e.Title, e.StartTime, e.EndTime,
			e.Status.String(), 1, e.CreatedAt, e.UpdatedAt).
		Suffix("RETURNING " + returning())
	return r.selectOne(ctx, qb, e.ID)
}

// Save writes all mutable fields of e if the stored version still equals
// e.Version, and bumps the version. A stale version yields domain.ErrConflict.
func (r *Repo) Save(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	qb := postgres.Builder().Update(table).
		Set("user_id", e.UserID).
		Set("title", e.Title).
		Set("start_time", e.StartTime).
		Set("end_time", e.EndTime).
		Set("status", e.Status.String()).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": e.ID, "version": e.Version}).
		Suffix("RETURNING " + returning())

	saved, err := r.selectOne(ctx, qb, e.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, r.missOrConflict(ctx, e.ID, domain.ErrConflict)
	}
	return saved, err
}

// CompareAndSetStatus moves the event from one status to another atomically.
// If the stored status differs from `from`, domain.ErrInvalidState is returned.
func (r *Repo) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to domain.EventStatus) (*domain.Event, error) {
	qb := postgres.Builder().Update(table).
		Set("status", to.String()).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from.String()}).
		Suffix("RETURNING " + returning())

	saved, err := r.selectOne(ctx, qb, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, r.missOrConflict(ctx, id, domain.ErrInvalidState)
	}
	return saved, err
}

// Delete removes an event by primary key.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete event: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "event", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// missOrConflict distinguishes a missing row from a guarded update that
// matched no row.
func (r *Repo) missOrConflict(ctx context.Context, id uuid.UUID, guardErr error) error {
	query, args, err := postgres.Builder().
		Select("1").From(table).Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return fmt.Errorf("build exists event: %w", err)
	}

	var exists bool
	if err := r.q(ctx).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return postgres.MapError(err, "event", id)
	}
	if !exists {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return fmt.Errorf("event %s: %w", id, guardErr)
}

func (r *Repo) selectOne(ctx context.Context, qb squirrel.Sqlizer, id uuid.UUID) (*domain.Event, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build event query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, r.q(ctx), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "event", id)
	}
	return dst.toDomain(), nil
}

func (r *Repo) selectMany(ctx context.Context, qb squirrel.Sqlizer) ([]*domain.Event, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build event query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "event", uuid.Nil)
	}

	events := make([]*domain.Event, 0, len(rows))
	for _, rw := range rows {
		events = append(events, rw.toDomain())
	}
	return events, nil
}

func returning() string {
	return strings.Join(columns, ", ")
}
