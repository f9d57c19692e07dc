package swap

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
)

// CreateRequestInput proposes exchanging the caller's slot for another user's.
type CreateRequestInput struct {
	MySlotID    uuid.UUID
	TheirSlotID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateRequestInput) Validate() error {
	var errs []domain.FieldError

	if i.MySlotID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "mySlotId", Message: "required"})
	}
	if i.TheirSlotID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "theirSlotId", Message: "required"})
	}
	if i.MySlotID != uuid.Nil && i.MySlotID == i.TheirSlotID {
		errs = append(errs, domain.FieldError{Field: "theirSlotId", Message: "must differ from mySlotId"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RespondInput accepts or rejects a pending swap request.
type RespondInput struct {
	RequestID uuid.UUID
	Accept    bool
}

// Validate checks all fields and collects all errors.
func (i RespondInput) Validate() error {
	if i.RequestID == uuid.Nil {
		return domain.NewValidationError("requestId", "required")
	}
	return nil
}
