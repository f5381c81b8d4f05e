package repository

import (
	"context"
	"time"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByResetToken matches only tokens whose expiry is still in the future.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*domain.User, error)
	// Update persists the whole mutable portion of the user document.
	Update(ctx context.Context, user *domain.User) error
	// PurgeExpiredResetTokens clears reset tokens whose expiry is before now
	// and reports how many users were touched.
	PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
