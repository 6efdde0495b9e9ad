package user

import (
	"regexp"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

const (
	minPasswordLen = 8
	// bcrypt truncates past 72 bytes.
	maxPasswordLen = 72
	maxEmailLen    = 254
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterInput holds parameters for registration. Email is expected to be
// normalized (trimmed, lowercased) before validation.
type RegisterInput struct {
	Email    string
	Password string
}

// Validate validates the registration input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if len(i.Email) > maxEmailLen || !emailRe.MatchString(i.Email) {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email address"})
	}

	switch {
	case i.Password == "":
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	case len(i.Password) < minPasswordLen:
		errs = append(errs, domain.FieldError{Field: "password", Message: "min 8 characters"})
	case len(i.Password) > maxPasswordLen:
		errs = append(errs, domain.FieldError{Field: "password", Message: "max 72 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for login.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateSettingsInput holds partial settings updates. nil means "don't
// change".
type UpdateSettingsInput struct {
	StraicoAPIKey    *string
	PreferredModel   *string
	UseSmartSelector *bool
	SelectorPricing  *domain.SelectorPricing
}

// Validate validates the settings input.
func (i UpdateSettingsInput) Validate() error {
	var errs []domain.FieldError

	if i.StraicoAPIKey == nil && i.PreferredModel == nil && i.UseSmartSelector == nil && i.SelectorPricing == nil {
		errs = append(errs, domain.FieldError{Field: "settings", Message: "no fields to update"})
	}
	if i.SelectorPricing != nil && !i.SelectorPricing.IsValid() {
		errs = append(errs, domain.FieldError{Field: "selector_pricing", Message: "must be one of quality, balance, budget"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
