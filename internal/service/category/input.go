package category

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

const maxCategoryNameLen = 100

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CreateCategoryInput holds the parameters for creating a category.
type CreateCategoryInput struct {
	Name  string
	Color string // empty means the default color
	Icon  *string
}

// Validate checks all fields and collects all errors.
func (i CreateCategoryInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxCategoryNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 100 characters"})
	}
	if i.Color != "" && !hexColorRe.MatchString(i.Color) {
		errs = append(errs, domain.FieldError{Field: "color", Message: "must be a #RRGGBB hex color"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateCategoryInput holds the parameters for updating a category.
type UpdateCategoryInput struct {
	CategoryID uuid.UUID
	Name       *string
	Color      *string
	Icon       *string // ptr("") clears the icon
}

// Validate checks all fields and collects all errors.
func (i UpdateCategoryInput) Validate() error {
	var errs []domain.FieldError

	if i.CategoryID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "category_id", Message: "required"})
	}
	if i.Name == nil && i.Color == nil && i.Icon == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		name := strings.TrimSpace(*i.Name)
		if name == "" {
			errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
		}
		if len(name) > maxCategoryNameLen {
			errs = append(errs, domain.FieldError{Field: "name", Message: "max 100 characters"})
		}
	}
	if i.Color != nil && !hexColorRe.MatchString(*i.Color) {
		errs = append(errs, domain.FieldError{Field: "color", Message: "must be a #RRGGBB hex color"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteCategoryInput holds the parameters for deleting a category.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteCategoryInput) Validate() error {
	if i.CategoryID == uuid.Nil {
		return domain.NewValidationError("category_id", "required")
	}
	return nil
}
