package swap_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/slotswap-backend/internal/adapter/memory"
	"github.com/heartmarshall/slotswap-backend/internal/domain"
	"github.com/heartmarshall/slotswap-backend/internal/service/swap"
	"github.com/heartmarshall/slotswap-backend/pkg/ctxutil"
)

type world struct {
	store *memory.Store
	svc   *swap.Service
}

func newWorld() *world {
	store := memory.New()
	return &world{
		store: store,
		svc:   swap.NewService(slog.Default(), store.Events(), store.Swaps(), store),
	}
}

func as(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func (w *world) slot(t *testing.T, owner uuid.UUID, status domain.EventStatus) *domain.Event {
	t.Helper()
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Minute)
	e, err := w.store.Events().Create(context.Background(), &domain.Event{
		ID:        uuid.New(),
		UserID:    owner,
		Title:     "slot",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    status,
	})
	require.NoError(t, err)
	return e
}

func (w *world) event(t *testing.T, id uuid.UUID) *domain.Event {
	t.Helper()
	e, err := w.store.Events().GetByID(context.Background(), id)
	require.NoError(t, err)
	return e
}

// checkInvariants verifies the cross-record rules that every committed state
// must satisfy.
func (w *world) checkInvariants(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	events, err := w.store.Events().Find(ctx, domain.EventFilter{})
	require.NoError(t, err)
	reqs, err := w.store.Swaps().Find(ctx, domain.SwapRequestFilter{})
	require.NoError(t, err)

	byID := make(map[uuid.UUID]*domain.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	pendingRefs := make(map[uuid.UUID]int)
	for _, r := range reqs {
		require.NotEqual(t, r.MySlotID, r.TheirSlotID)
		if r.Status != domain.SwapStatusPending {
			assert.NotNil(t, r.RespondedAt, "terminal request %s has no responded_at", r.ID)
			continue
		}
		for _, id := range r.SlotIDs() {
			pendingRefs[id]++
			e, ok := byID[id]
			require.True(t, ok, "pending request %s references missing event %s", r.ID, id)
			assert.Equal(t, domain.EventStatusSwapPending, e.Status, "slot %s of pending request %s", id, r.ID)
		}
	}

	for _, e := range events {
		if e.Status == domain.EventStatusSwapPending {
			assert.Equal(t, 1, pendingRefs[e.ID], "SWAP_PENDING event %s must be referenced by exactly one pending request", e.ID)
		} else {
			assert.Zero(t, pendingRefs[e.ID], "event %s is %s but referenced by a pending request", e.ID, e.Status)
		}
	}
}

func TestScenario_AcceptExchangesOwnership(t *testing.T) {
	t.Parallel()
	w := newWorld()
	alice, bob := uuid.New(), uuid.New()
	a := w.slot(t, alice, domain.EventStatusSwappable)
	b := w.slot(t, bob, domain.EventStatusSwappable)

	req, err := w.svc.CreateRequest(as(alice), swap.CreateRequestInput{MySlotID: a.ID, TheirSlotID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, bob, req.TargetID)
	assert.Equal(t, domain.EventStatusSwapPending, w.event(t, a.ID).Status)
	assert.Equal(t, domain.EventStatusSwapPending, w.event(t, b.ID).Status)
	w.checkInvariants(t)

	// Neither slot is offered while pending.
	offered, err := w.svc.ListSwappable(as(uuid.New()))
	require.NoError(t, err)
	assert.Empty(t, offered)

	done, err := w.svc.Respond(as(bob), swap.RespondInput{RequestID: req.ID, Accept: true})
	require.NoError(t, err)
	assert.Equal(t, domain.SwapStatusAccepted, done.Status)
	assert.NotNil(t, done.RespondedAt)

	gotA, gotB := w.event(t, a.ID), w.event(t, b.ID)
	assert.Equal(t, bob, gotA.UserID)
	assert.Equal(t, alice, gotB.UserID)
	assert.Equal(t, domain.EventStatusBusy, gotA.Status)
	assert.Equal(t, domain.EventStatusBusy, gotB.Status)
	w.checkInvariants(t)

	_, err = w.svc.Respond(as(bob), swap.RespondInput{RequestID: req.ID, Accept: false})
	require.ErrorIs(t, err, domain.ErrInvalidState, "a request is answered at most once")
}

func TestScenario_RejectKeepsOwnership(t *testing.T) {
	t.Parallel()
	w := newWorld()
	alice, bob := uuid.New(), uuid.New()
	a := w.slot(t, alice, domain.EventStatusSwappable)
	b := w.slot(t, bob, domain.EventStatusSwappable)

	req, err := w.svc.CreateRequest(as(alice), swap.CreateRequestInput{MySlotID: a.ID, TheirSlotID: b.ID})
	require.NoError(t, err)

	_, err = w.svc.Respond(as(alice), swap.RespondInput{RequestID: req.ID, Accept: true})
	require.ErrorIs(t, err, domain.ErrForbidden, "the requester cannot answer their own request")

	done, err := w.svc.Respond(as(bob), swap.RespondInput{RequestID: req.ID, Accept: false})
	require.NoError(t, err)
	assert.Equal(t, domain.SwapStatusRejected, done.Status)

	gotA, gotB := w.event(t, a.ID), w.event(t, b.ID)
	assert.Equal(t, alice, gotA.UserID)
	assert.Equal(t, bob, gotB.UserID)
	assert.Equal(t, domain.EventStatusSwappable, gotA.Status)
	assert.Equal(t, domain.EventStatusSwappable, gotB.Status)
	w.checkInvariants(t)

	lists, err := w.svc.ListRequests(as(bob))
	require.NoError(t, err)
	require.Len(t, lists.Incoming, 1)
	assert.Empty(t, lists.Outgoing)
	assert.Equal(t, domain.SwapStatusRejected, lists.Incoming[0].Status)
}

func TestScenario_ConcurrentRequestsForSameSlot(t *testing.T) {
	t.Parallel()
	w := newWorld()
	bob := uuid.New()
	target := w.slot(t, bob, domain.EventStatusSwappable)

	const requesters = 16
	type offer struct {
		user uuid.UUID
		slot *domain.Event
	}
	offers := make([]offer, requesters)
	for i := range offers {
		u := uuid.New()
		offers[i] = offer{user: u, slot: w.slot(t, u, domain.EventStatusSwappable)}
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins []uuid.UUID
	)
	for _, o := range offers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, err := w.svc.CreateRequest(as(o.user), swap.CreateRequestInput{MySlotID: o.slot.ID, TheirSlotID: target.ID})
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInvalidState)
				return
			}
			mu.Lock()
			wins = append(wins, req.ID)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, wins, 1, "exactly one request may claim the slot")
	w.checkInvariants(t)

	// Losers keep their slots on offer.
	offered, err := w.svc.ListSwappable(as(bob))
	require.NoError(t, err)
	assert.Len(t, offered, requesters-1)
}

func TestScenario_ConcurrentResponses(t *testing.T) {
	t.Parallel()
	w := newWorld()
	alice, bob := uuid.New(), uuid.New()
	a := w.slot(t, alice, domain.EventStatusSwappable)
	b := w.slot(t, bob, domain.EventStatusSwappable)

	req, err := w.svc.CreateRequest(as(alice), swap.CreateRequestInput{MySlotID: a.ID, TheirSlotID: b.ID})
	require.NoError(t, err)

	const responders = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins []domain.SwapStatus
	)
	for i := range responders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := w.svc.Respond(as(bob), swap.RespondInput{RequestID: req.ID, Accept: i%2 == 0})
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInvalidState)
				return
			}
			mu.Lock()
			wins = append(wins, got.Status)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, wins, 1, "exactly one response may resolve the request")
	w.checkInvariants(t)

	gotA := w.event(t, a.ID)
	switch wins[0] {
	case domain.SwapStatusAccepted:
		assert.Equal(t, bob, gotA.UserID)
		assert.Equal(t, domain.EventStatusBusy, gotA.Status)
	case domain.SwapStatusRejected:
		assert.Equal(t, alice, gotA.UserID)
		assert.Equal(t, domain.EventStatusSwappable, gotA.Status)
	}
}

// flakyEvents fails the n-th status CAS with a storage error.
type flakyEvents struct {
	*memory.EventRepo
	mu     sync.Mutex
	calls  int
	failOn int
}

func (f *flakyEvents) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to domain.EventStatus) (*domain.Event, error) {
	f.mu.Lock()
	f.calls++
	fail := f.calls == f.failOn
	f.mu.Unlock()
	if fail {
		return nil, errors.New("injected storage failure")
	}
	return f.EventRepo.CompareAndSetStatus(ctx, id, from, to)
}

// flakySaves fails the n-th Save with a storage error.
type flakySaves struct {
	*memory.EventRepo
	calls  int
	failOn int
}

func (f *flakySaves) Save(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	f.calls++
	if f.calls == f.failOn {
		return nil, errors.New("injected storage failure")
	}
	return f.EventRepo.Save(ctx, e)
}

func TestScenario_CreateFailureRollsBack(t *testing.T) {
	t.Parallel()
	store := memory.New()
	events := &flakyEvents{EventRepo: store.Events(), failOn: 2}
	svc := swap.NewService(slog.Default(), events, store.Swaps(), store)
	w := &world{store: store, svc: svc}

	alice, bob := uuid.New(), uuid.New()
	a := w.slot(t, alice, domain.EventStatusSwappable)
	b := w.slot(t, bob, domain.EventStatusSwappable)

	_, err := svc.CreateRequest(as(alice), swap.CreateRequestInput{MySlotID: a.ID, TheirSlotID: b.ID})
	require.ErrorIs(t, err, domain.ErrTransactionFailed)

	assert.Equal(t, domain.EventStatusSwappable, w.event(t, a.ID).Status)
	assert.Equal(t, domain.EventStatusSwappable, w.event(t, b.ID).Status)
	reqs, err := store.Swaps().Find(context.Background(), domain.SwapRequestFilter{})
	require.NoError(t, err)
	assert.Empty(t, reqs, "no request may survive a failed unit")
	w.checkInvariants(t)
}

func TestScenario_AcceptFailureRollsBack(t *testing.T) {
	t.Parallel()
	store := memory.New()
	events := &flakySaves{EventRepo: store.Events(), failOn: 2}
	svc := swap.NewService(slog.Default(), events, store.Swaps(), store)
	w := &world{store: store, svc: svc}

	alice, bob := uuid.New(), uuid.New()
	a := w.slot(t, alice, domain.EventStatusSwappable)
	b := w.slot(t, bob, domain.EventStatusSwappable)

	req, err := svc.CreateRequest(as(alice), swap.CreateRequestInput{MySlotID: a.ID, TheirSlotID: b.ID})
	require.NoError(t, err)

	_, err = svc.Respond(as(bob), swap.RespondInput{RequestID: req.ID, Accept: true})
	require.ErrorIs(t, err, domain.ErrTransactionFailed)

	// The first slot's owner change and the request CAS are both undone.
	stored, err := store.Swaps().GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SwapStatusPending, stored.Status)
	assert.Nil(t, stored.RespondedAt)
	assert.Equal(t, alice, w.event(t, a.ID).UserID)
	assert.Equal(t, bob, w.event(t, b.ID).UserID)
	w.checkInvariants(t)

	// The request is still answerable once storage recovers.
	done, err := svc.Respond(as(bob), swap.RespondInput{RequestID: req.ID, Accept: true})
	require.NoError(t, err)
	assert.Equal(t, domain.SwapStatusAccepted, done.Status)
	w.checkInvariants(t)
}

func TestScenario_RandomOperationsKeepInvariants(t *testing.T) {
	t.Parallel()
	w := newWorld()
	rng := rand.New(rand.NewPCG(42, 7))

	users := make([]uuid.UUID, 4)
	var slots []*domain.Event
	for i := range users {
		users[i] = uuid.New()
		for range 3 {
			status := domain.EventStatusSwappable
			if rng.IntN(4) == 0 {
				status = domain.EventStatusBusy
			}
			slots = append(slots, w.slot(t, users[i], status))
		}
	}

	for step := range 300 {
		ctx := context.Background()
		switch rng.IntN(2) {
		case 0:
			mine := slots[rng.IntN(len(slots))]
			theirs := slots[rng.IntN(len(slots))]
			cur := w.event(t, mine.ID)
			_, err := w.svc.CreateRequest(as(cur.UserID), swap.CreateRequestInput{MySlotID: mine.ID, TheirSlotID: theirs.ID})
			if err != nil && !domain.IsDomainError(err) {
				t.Fatalf("step %d: unexpected error: %v", step, err)
			}
		case 1:
			pending := domain.SwapStatusPending
			reqs, err := w.store.Swaps().Find(ctx, domain.SwapRequestFilter{Status: &pending})
			require.NoError(t, err)
			if len(reqs) == 0 {
				continue
			}
			req := reqs[rng.IntN(len(reqs))]
			_, err = w.svc.Respond(as(req.TargetID), swap.RespondInput{RequestID: req.ID, Accept: rng.IntN(2) == 0})
			require.NoError(t, err, fmt.Sprintf("step %d", step))
		}
		w.checkInvariants(t)
	}
}
