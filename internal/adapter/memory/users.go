package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
)

// UserRepo stores users. Emails are unique after normalization.
type UserRepo struct {
	s *Store
}

// Create stores a new user.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	created := *u
	created.Email = domain.NormalizeEmail(u.Email)

	err := r.s.write(ctx, func(j *journal) error {
		if _, exists := r.s.users[u.ID]; exists {
			return fmt.Errorf("user %s: %w", u.ID, domain.ErrAlreadyExists)
		}
		if _, taken := r.s.emails[created.Email]; taken {
			return fmt.Errorf("user %s: email: %w", u.ID, domain.ErrAlreadyExists)
		}
		r.s.users[u.ID] = created
		r.s.emails[created.Email] = u.ID
		j.record(func() {
			delete(r.s.users, u.ID)
			delete(r.s.emails, created.Email)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID returns a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var (
		u  domain.User
		ok bool
	)
	r.s.read(ctx, func() { u, ok = r.s.users[id] })
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

// GetByEmail returns a user by (normalized) email address.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var (
		u  domain.User
		ok bool
	)
	r.s.read(ctx, func() {
		var id uuid.UUID
		if id, ok = r.s.emails[domain.NormalizeEmail(email)]; ok {
			u = r.s.users[id]
		}
	})
	if !ok {
		return nil, fmt.Errorf("user %s: %w", uuid.Nil, domain.ErrNotFound)
	}
	return &u, nil
}

// GetByIDs returns the users with the given ids. Missing ids are skipped.
func (r *UserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(ids))
	r.s.read(ctx, func() {
		for _, id := range ids {
			if u, ok := r.s.users[id]; ok {
				out = append(out, &u)
			}
		}
	})
	return out, nil
}
