// Package swaprequest implements the SwapRequest repository using PostgreSQL.
package swaprequest

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

const table = "swap_requests"

var columns = []string{
	"id", "requester_id", "target_id", "my_slot_id", "their_slot_id",
	"status", "responded_at", "created_at", "updated_at",
}

type row struct {
	ID          uuid.UUID  `db:"id"`
	RequesterID uuid.UUID  `db:"requester_id"`
	TargetID    uuid.UUID  `db:"target_id"`
	MySlotID    uuid.UUID  `db:"my_slot_id"`
	TheirSlotID uuid.UUID  `db:"their_slot_id"`
	Status      string     `db:"status"`
	RespondedAt *time.Time `db:"responded_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (r row) toDomain() *domain.SwapRequest {
	req := &domain.SwapRequest{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		TargetID:    r.TargetID,
		MySlotID:    r.MySlotID,
		TheirSlotID: r.TheirSlotID,
		Status:      domain.SwapStatus(r.Status),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
	if r.RespondedAt != nil {
		t := r.RespondedAt.UTC()
		req.RespondedAt = &t
	}
	return req
}

// Repo provides swap request persistence backed by PostgreSQL.
// Requests are never deleted.
type Repo struct {
	db postgres.Querier
}

// New creates a new swap request repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// Find returns requests matching filter, newest first.
func (r *Repo) Find(ctx context.Context, filter domain.SwapRequestFilter) ([]*domain.SwapRequest, error) {
	qb := postgres.Builder().Select(columns...).From(table).OrderBy("created_at DESC", "id ASC")

	if filter.RequesterID != nil {
		qb = qb.Where(squirrel.Eq{"requester_id": *filter.RequesterID})
	}
	if filter.TargetID != nil {
		qb = qb.Where(squirrel.Eq{"target_id": *filter.TargetID})
	}
	if filter.Status != nil {
		qb = qb.Where(squirrel.Eq{"status": filter.Status.String()})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build swap request query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "swap_request", uuid.Nil)
	}

	reqs := make([]*domain.SwapRequest, 0, len(rows))
	for _, rw := range rows {
		reqs = append(reqs, rw.toDomain())
	}
	return reqs, nil
}

// FindByParticipant returns the requests addressed to userID (incoming) and
// the ones userID sent (outgoing).
func (r *Repo) FindByParticipant(ctx context.Context, userID uuid.UUID) (*domain.SwapRequestList, error) {
	incoming, err := r.Find(ctx, domain.SwapRequestFilter{TargetID: &userID})
	if err != nil {
		return nil, fmt.Errorf("find incoming: %w", err)
	}
	outgoing, err := r.Find(ctx, domain.SwapRequestFilter{RequesterID: &userID})
	if err != nil {
		return nil, fmt.Errorf("find outgoing: %w", err)
	}
	return &domain.SwapRequestList{Incoming: incoming, Outgoing: outgoing}, nil
}

// GetByID returns a request by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	qb := postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"id": id})
	return r.selectOne(ctx, qb, id)
}

// GetByIDForUpdate returns a request and locks its row until the enclosing
// transaction ends.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	qb := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE")
	return r.selectOne(ctx, qb, id)
}

// Create inserts a new request and returns the persisted row.
func (r *Repo) Create(ctx context.Context, req *domain.SwapRequest) (*domain.SwapRequest, error) {
	qb := postgres.Builder().Insert(table).
		Columns(columns...).
		Values(req.ID, req.RequesterID, req.TargetID, req.MySlotID, req.TheirSlotID,
			req.Status.String(), req.RespondedAt, req.CreatedAt, req.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", "))
	return r.selectOne(ctx, qb, req.ID)
}

// CompareAndSetStatus moves the request from one status to another
// atomically and stamps responded_at when the new status is terminal.
// A status mismatch yields domain.ErrInvalidState.
func (r *Repo) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to domain.SwapStatus) (*domain.SwapRequest, error) {
	ub := postgres.Builder().Update(table).
		Set("status", to.String()).
		Set("updated_at", squirrel.Expr("now()"))
	if to.IsTerminal() {
		ub = ub.Set("responded_at", squirrel.Expr("now()"))
	}
	ub = ub.Where(squirrel.Eq{"id": id, "status": from.String()}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	saved, err := r.selectOne(ctx, ub, id)
	if !errors.Is(err, domain.ErrNotFound) {
		return saved, err
	}

	// Guarded update matched nothing: tell a missing row from a status mismatch.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("swap_request %s: %w", id, domain.ErrInvalidState)
}

func (r *Repo) selectOne(ctx context.Context, qb squirrel.Sqlizer, id uuid.UUID) (*domain.SwapRequest, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build swap request query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, r.q(ctx), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "swap_request", id)
	}
	return dst.toDomain(), nil
}
