package event

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
)

// MaxTitleLength is the maximum length of an event title in characters.
const MaxTitleLength = 200

// CreateEventInput holds the parameters for creating an event.
type CreateEventInput struct {
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    *domain.EventStatus
}

// Validate checks all fields and collects all errors.
func (i CreateEventInput) Validate() error {
	var errs []domain.FieldError

	errs = appendTitleErrors(errs, i.Title)

	if i.StartTime.IsZero() {
		errs = append(errs, domain.FieldError{Field: "startTime", Message: "required"})
	}
	if i.EndTime.IsZero() {
		errs = append(errs, domain.FieldError{Field: "endTime", Message: "required"})
	}
	if !i.StartTime.IsZero() && !i.EndTime.IsZero() && !i.EndTime.After(i.StartTime) {
		errs = append(errs, domain.FieldError{Field: "endTime", Message: "must be after startTime"})
	}

	if i.Status != nil && !i.Status.IsOwnerSettable() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be BUSY or SWAPPABLE"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateEventInput holds a partial update. Nil fields are left unchanged.
type UpdateEventInput struct {
	EventID   uuid.UUID
	Title     *string
	StartTime *time.Time
	EndTime   *time.Time
	Status    *domain.EventStatus
}

// Validate checks all fields and collects all errors.
func (i UpdateEventInput) Validate() error {
	var errs []domain.FieldError

	if i.EventID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Title == nil && i.StartTime == nil && i.EndTime == nil && i.Status == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil {
		errs = appendTitleErrors(errs, *i.Title)
	}
	if i.StartTime != nil && i.StartTime.IsZero() {
		errs = append(errs, domain.FieldError{Field: "startTime", Message: "invalid"})
	}
	if i.EndTime != nil && i.EndTime.IsZero() {
		errs = append(errs, domain.FieldError{Field: "endTime", Message: "invalid"})
	}
	if i.Status != nil && !i.Status.IsOwnerSettable() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be BUSY or SWAPPABLE"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// params converts the input into a domain update with the title trimmed.
func (i UpdateEventInput) params() domain.EventUpdateParams {
	p := domain.EventUpdateParams{
		StartTime: i.StartTime,
		EndTime:   i.EndTime,
		Status:    i.Status,
	}
	if i.Title != nil {
		t := strings.TrimSpace(*i.Title)
		p.Title = &t
	}
	return p
}

// DeleteEventInput identifies the event to delete.
type DeleteEventInput struct {
	EventID uuid.UUID
}

// Validate checks all fields.
func (i DeleteEventInput) Validate() error {
	if i.EventID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	return nil
}

func appendTitleErrors(errs []domain.FieldError, title string) []domain.FieldError {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return append(errs, domain.FieldError{Field: "title", Message: "too long (max 200)"})
	}
	return errs
}
