package domain

// EventStatus is the availability of a time slot.
type EventStatus string

const (
	EventStatusBusy        EventStatus = "BUSY"
	EventStatusSwappable   EventStatus = "SWAPPABLE"
	EventStatusSwapPending EventStatus = "SWAP_PENDING"
)

func (s EventStatus) String() string { return string(s) }

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusBusy, EventStatusSwappable, EventStatusSwapPending:
		return true
	}
	return false
}

// IsOwnerSettable reports whether an owner may put an event into this status
// directly. SWAP_PENDING is reachable only through a swap request.
func (s EventStatus) IsOwnerSettable() bool {
	return s == EventStatusBusy || s == EventStatusSwappable
}

// SwapStatus is the lifecycle state of a swap request.
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "PENDING"
	SwapStatusAccepted SwapStatus = "ACCEPTED"
	SwapStatusRejected SwapStatus = "REJECTED"
)

func (s SwapStatus) String() string { return string(s) }

func (s SwapStatus) IsValid() bool {
	switch s {
	case SwapStatusPending, SwapStatusAccepted, SwapStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted.
func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusAccepted || s == SwapStatusRejected
}
