package writing

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/adapter/s3store"
	"github.com/ideagarden/backend/internal/domain"
)

// UploadInput holds parameters for the image upload operation.
type UploadInput struct {
	IdeaID      uuid.UUID
	FileName    string
	ContentType string
	Body        io.Reader
}

// Validate validates the upload input.
func (i UploadInput) Validate() error {
	var errs []domain.FieldError

	if i.Body == nil {
		errs = append(errs, domain.FieldError{Field: "file", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UploadImage stores an image for the idea's workspace and returns its
// public URL. The idea must exist.
func (s *Service) UploadImage(ctx context.Context, input UploadInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	if _, err := s.ideas.GetByID(ctx, input.IdeaID); err != nil {
		return "", fmt.Errorf("writing.UploadImage: %w", err)
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := s3store.ObjectKey(input.IdeaID, input.FileName)
	url, err := s.uploader.Upload(ctx, key, contentType, input.Body)
	if err != nil {
		return "", fmt.Errorf("writing.UploadImage: %w", err)
	}

	s.log.InfoContext(ctx, "image uploaded",
		"idea_id", input.IdeaID.String(),
		"key", key)

	return url, nil
}
