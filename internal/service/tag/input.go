package tag

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

const maxTagNameLen = 50

// CreateTagInput holds the parameters for creating a tag.
type CreateTagInput struct {
	Name string
}

// Validate checks all fields and collects all errors.
func (i CreateTagInput) Validate() error {
	var errs []domain.FieldError

	name := domain.NormalizeTagName(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxTagNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 50 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateTagInput holds the parameters for renaming a tag.
type UpdateTagInput struct {
	TagID uuid.UUID
	Name  string
}

// Validate checks all fields and collects all errors.
func (i UpdateTagInput) Validate() error {
	var errs []domain.FieldError

	if i.TagID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "tag_id", Message: "required"})
	}
	name := domain.NormalizeTagName(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxTagNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 50 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteTagInput holds the parameters for deleting a tag.
type DeleteTagInput struct {
	TagID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteTagInput) Validate() error {
	if i.TagID == uuid.Nil {
		return domain.NewValidationError("tag_id", "required")
	}
	return nil
}
