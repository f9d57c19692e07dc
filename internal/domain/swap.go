package domain

import (
	"time"

	"github.com/google/uuid"
)

// SwapRequest is a proposal to exchange ownership of two events.
// MySlotID belongs to the requester, TheirSlotID to the target.
type SwapRequest struct {
	ID          uuid.UUID
	RequesterID uuid.UUID
	TargetID    uuid.UUID
	MySlotID    uuid.UUID
	TheirSlotID uuid.UUID
	Status      SwapStatus
	RespondedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SlotIDs returns both referenced events.
func (r *SwapRequest) SlotIDs() [2]uuid.UUID {
	return [2]uuid.UUID{r.MySlotID, r.TheirSlotID}
}

// References reports whether the request points at the given event.
func (r *SwapRequest) References(eventID uuid.UUID) bool {
	return r.MySlotID == eventID || r.TheirSlotID == eventID
}

// SwapRequestFilter selects swap requests. Nil fields are ignored.
type SwapRequestFilter struct {
	RequesterID *uuid.UUID
	TargetID    *uuid.UUID
	Status      *SwapStatus
}

// SwapRequestList partitions the requests a user participates in.
type SwapRequestList struct {
	Incoming []*SwapRequest
	Outgoing []*SwapRequest
}

// SwapOutcome is the set of record changes a response produces.
type SwapOutcome struct {
	Request    SwapStatus
	Slots      EventStatus
	SwapOwners bool
}

// SwapOutcomeFor returns the transition applied when the target responds.
//
//	accept: PENDING -> ACCEPTED, slots SWAP_PENDING -> BUSY, owners exchanged
//	reject: PENDING -> REJECTED, slots SWAP_PENDING -> SWAPPABLE
func SwapOutcomeFor(accept bool) SwapOutcome {
	if accept {
		return SwapOutcome{
			Request:    SwapStatusAccepted,
			Slots:      EventStatusBusy,
			SwapOwners: true,
		}
	}
	return SwapOutcome{
		Request: SwapStatusRejected,
		Slots:   EventStatusSwappable,
	}
}
