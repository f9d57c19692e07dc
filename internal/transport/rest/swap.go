package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
	"github.com/heartmarshall/slotswap-backend/internal/service/swap"
	"github.com/heartmarshall/slotswap-backend/internal/transport/dataloader"
)

type swapService interface {
	ListSwappable(ctx context.Context) ([]*domain.Event, error)
	CreateRequest(ctx context.Context, input swap.CreateRequestInput) (*domain.SwapRequest, error)
	Respond(ctx context.Context, input swap.RespondInput) (*domain.SwapRequest, error)
	ListRequests(ctx context.Context) (*domain.SwapRequestList, error)
}

// SwapHandler serves the swap marketplace and negotiation endpoints.
// Responses are enriched with owners and slots through the request's loaders.
type SwapHandler struct {
	svc swapService
	log *slog.Logger
}

// NewSwapHandler creates a SwapHandler.
func NewSwapHandler(svc swapService, logger *slog.Logger) *SwapHandler {
	return &SwapHandler{svc: svc, log: logger.With("handler", "swap")}
}

type createSwapRequest struct {
	MySlotID    uuid.UUID `json:"mySlotId"`
	TheirSlotID uuid.UUID `json:"theirSlotId"`
}

type respondSwapRequest struct {
	Accept *bool `json:"accept"`
}

type respondSwapResponse struct {
	Message string              `json:"message"`
	SwapReq swapRequestResponse `json:"swapReq"`
}

// ListSwappable handles GET /api/swappable-slots.
func (h *SwapHandler) ListSwappable(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListSwappable(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	ownerIDs := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		ownerIDs = append(ownerIDs, e.UserID)
	}
	owners, err := loadUsers(r.Context(), ownerIDs)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := toEventResponses(events)
	for i := range out {
		out[i].Owner = toUserResponse(owners[events[i].UserID])
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateRequest handles POST /api/swap-request.
func (h *SwapHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req createSwapRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.svc.CreateRequest(r.Context(), swap.CreateRequestInput{
		MySlotID:    req.MySlotID,
		TheirSlotID: req.TheirSlotID,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out, err := present(r.Context(), []*domain.SwapRequest{created})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out[0])
}

// Respond handles POST /api/swap-response/{id}.
func (h *SwapHandler) Respond(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req respondSwapRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Accept == nil {
		handleError(h.log, w, r, domain.NewValidationError("accept", "required"))
		return
	}

	resolved, err := h.svc.Respond(r.Context(), swap.RespondInput{RequestID: id, Accept: *req.Accept})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out, err := present(r.Context(), []*domain.SwapRequest{resolved})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	verb := "rejected"
	if *req.Accept {
		verb = "accepted"
	}
	writeJSON(w, http.StatusOK, respondSwapResponse{
		Message: "Swap " + verb,
		SwapReq: out[0],
	})
}

// ListRequests handles GET /api/swap-requests.
func (h *SwapHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListRequests(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	all := make([]*domain.SwapRequest, 0, len(list.Incoming)+len(list.Outgoing))
	all = append(all, list.Incoming...)
	all = append(all, list.Outgoing...)

	out, err := present(r.Context(), all)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	n := len(list.Incoming)
	writeJSON(w, http.StatusOK, swapRequestListResponse{
		Incoming: out[:n:n],
		Outgoing: out[n:],
	})
}

// present converts requests to responses with both participants and both
// slots filled in. Users and events are loaded concurrently.
func present(ctx context.Context, reqs []*domain.SwapRequest) ([]swapRequestResponse, error) {
	userIDs := make([]uuid.UUID, 0, 2*len(reqs))
	slotIDs := make([]uuid.UUID, 0, 2*len(reqs))
	for _, req := range reqs {
		userIDs = append(userIDs, req.RequesterID, req.TargetID)
		slotIDs = append(slotIDs, req.MySlotID, req.TheirSlotID)
	}

	var (
		users map[uuid.UUID]*domain.User
		slots map[uuid.UUID]*domain.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = loadUsers(gctx, userIDs)
		return err
	})
	g.Go(func() error {
		var err error
		slots, err = loadEvents(gctx, slotIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]swapRequestResponse, 0, len(reqs))
	for _, req := range reqs {
		resp := toSwapRequestResponse(req)
		resp.Requester = toUserResponse(users[req.RequesterID])
		resp.Target = toUserResponse(users[req.TargetID])
		resp.MySlot = toEventResponse(slots[req.MySlotID])
		resp.TheirSlot = toEventResponse(slots[req.TheirSlotID])
		out = append(out, resp)
	}
	return out, nil
}

func loadUsers(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.User, error) {
	ids = dedupe(ids)
	users, errs := dataloader.FromContext(ctx).UserByID.LoadMany(ctx, ids)()
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	byID := make(map[uuid.UUID]*domain.User, len(ids))
	for i, id := range ids {
		byID[id] = users[i]
	}
	return byID, nil
}

func loadEvents(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Event, error) {
	ids = dedupe(ids)
	events, errs := dataloader.FromContext(ctx).EventByID.LoadMany(ctx, ids)()
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	byID := make(map[uuid.UUID]*domain.Event, len(ids))
	for i, id := range ids {
		byID[id] = events[i]
	}
	return byID, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
