// Package user implements registration, login and per-user settings.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

// userRepo defines the user repository interface needed by the user service.
type userRepo interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// settingsRepo defines the settings repository interface needed by the user
// service. Get returns defaults when no row exists yet.
type settingsRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	Upsert(ctx context.Context, s domain.UserSettings) (*domain.UserSettings, error)
}

// tokenIssuer mints access tokens for authenticated users.
type tokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
}

// AuthResult is a successful registration or login.
type AuthResult struct {
	AccessToken string
	User        *domain.User
}

// Service implements user operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	settings settingsRepo
	jwt      tokenIssuer
}

// NewService creates a new User service.
func NewService(logger *slog.Logger, users userRepo, settings settingsRepo, jwt tokenIssuer) *Service {
	return &Service{
		log:      logger.With("service", "user"),
		users:    users,
		settings: settings,
		jwt:      jwt,
	}
}
