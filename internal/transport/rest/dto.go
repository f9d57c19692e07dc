package rest

import (
	"time"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
)

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type eventResponse struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Owner     *userResponse `json:"owner,omitempty"`
	Title     string        `json:"title"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Status    string        `json:"status"`
	Version   int64         `json:"version"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type swapRequestResponse struct {
	ID          string         `json:"id"`
	RequesterID string         `json:"requesterId"`
	TargetID    string         `json:"targetId"`
	Requester   *userResponse  `json:"requester,omitempty"`
	Target      *userResponse  `json:"target,omitempty"`
	MySlotID    string         `json:"mySlotId"`
	TheirSlotID string         `json:"theirSlotId"`
	MySlot      *eventResponse `json:"mySlot,omitempty"`
	TheirSlot   *eventResponse `json:"theirSlot,omitempty"`
	Status      string         `json:"status"`
	RespondedAt *time.Time     `json:"respondedAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type swapRequestListResponse struct {
	Incoming []swapRequestResponse `json:"incoming"`
	Outgoing []swapRequestResponse `json:"outgoing"`
}

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{ID: u.ID.String(), Name: u.Name, Email: u.Email}
}

func toEventResponse(e *domain.Event) *eventResponse {
	if e == nil {
		return nil
	}
	return &eventResponse{
		ID:        e.ID.String(),
		UserID:    e.UserID.String(),
		Title:     e.Title,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Status:    e.Status.String(),
		Version:   e.Version,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toEventResponses(events []*domain.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, *toEventResponse(e))
	}
	return out
}

func toSwapRequestResponse(req *domain.SwapRequest) swapRequestResponse {
	return swapRequestResponse{
		ID:          req.ID.String(),
		RequesterID: req.RequesterID.String(),
		TargetID:    req.TargetID.String(),
		MySlotID:    req.MySlotID.String(),
		TheirSlotID: req.TheirSlotID.String(),
		Status:      req.Status.String(),
		RespondedAt: req.RespondedAt,
		CreatedAt:   req.CreatedAt,
	}
}
