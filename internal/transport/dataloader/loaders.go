package dataloader

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
)

func newUsersBatchFn(repo userRepo) dataloader.BatchFunc[uuid.UUID, *domain.User] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.User] {
		users, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.User](len(keys), err)
		}

		byID := make(map[uuid.UUID]*domain.User, len(users))
		for _, u := range users {
			byID[u.ID] = u
		}

		return mapResults(keys, byID)
	}
}

func newEventsBatchFn(repo eventRepo) dataloader.BatchFunc[uuid.UUID, *domain.Event] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.Event] {
		events, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.Event](len(keys), err)
		}

		byID := make(map[uuid.UUID]*domain.Event, len(events))
		for _, e := range events {
			byID[e.ID] = e
		}

		return mapResults(keys, byID)
	}
}

// errorResults returns a slice of error results for all keys.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps results back to key order. Missing keys yield the zero value.
func mapResults[V any](keys []uuid.UUID, byID map[uuid.UUID]V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		results[i] = &dataloader.Result[V]{Data: byID[key]}
	}
	return results
}
