package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSettings holds per-user AI gateway preferences.
type UserSettings struct {
	UserID           uuid.UUID
	StraicoAPIKey    string
	PreferredModel   string
	UseSmartSelector bool
	SelectorPricing  SelectorPricing
	UpdatedAt        time.Time
}

// DefaultUserSettings returns UserSettings with sensible defaults.
func DefaultUserSettings(userID uuid.UUID) UserSettings {
	return UserSettings{
		UserID:          userID,
		SelectorPricing: SelectorBalance,
	}
}
