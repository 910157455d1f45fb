package journal

import (
	"time"

	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/domain"
)

// SubmitInput holds parameters for the submit operation. Date is
// optional; when nil the server's current UTC date is used.
type SubmitInput struct {
	Transcription string
	Date          *time.Time
}

// Validate validates the submit input.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	if i.Transcription == "" {
		errs = append(errs, domain.FieldError{Field: "transcription", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds filter parameters for listing entries.
// All fields are optional (nil = no filtering on that dimension).
type ListInput struct {
	Category *string
	Status   *string
	Tag      *string
	Search   *string
}

// Validate validates the list input.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Category != nil && !domain.IdeaCategory(*i.Category).IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}
	if i.Status != nil && !domain.IdeaStatus(*i.Status).IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// MergeInput holds parameters for the merge operation.
type MergeInput struct {
	TargetID uuid.UUID
	SourceID uuid.UUID
}

// Validate validates the merge input.
func (i MergeInput) Validate() error {
	var errs []domain.FieldError

	if i.TargetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "targetId", Message: "required"})
	}
	if i.SourceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "sourceId", Message: "required"})
	}
	if i.TargetID != uuid.Nil && i.TargetID == i.SourceID {
		errs = append(errs, domain.FieldError{Field: "sourceId", Message: "cannot merge an entry into itself"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
