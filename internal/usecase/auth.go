package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/Abaaza/wallmastersbackend/internal/repository"
	"github.com/Abaaza/wallmastersbackend/internal/token"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// AuthUsecase is the request-level entry point for registration, login,
// password changes and refresh-token rotation.
type AuthUsecase struct {
	users  repository.UserRepository
	tokens *token.Service
}

func NewAuthUsecase(users repository.UserRepository, tokens *token.Service) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens}
}

// Session is what credential exchanges hand back: the user plus fresh tokens.
// RefreshToken is empty for flows that only issue an access token.
type Session struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

func (u *AuthUsecase) Register(ctx context.Context, name, email, password string) (*Session, error) {
	_, err := u.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrUserExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := u.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	access, err := u.tokens.IssueAccessToken(created.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &Session{User: created, AccessToken: access}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := u.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := u.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	user.RefreshToken = refresh
	if err := u.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func (u *AuthUsecase) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrIncorrectPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Refresh rotates the refresh token: the presented token must match the
// stored value for some user and still verify cryptographically. Both tokens
// are reissued and the new refresh token overwrites the stored one, so a
// superseded token fails here even before its expiry.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	user, err := u.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}

	if _, err := u.tokens.VerifyRefreshToken(refreshToken); err != nil {
		return nil, domain.ErrRefreshTokenInvalid
	}

	access, err := u.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := u.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	user.RefreshToken = refresh
	if err := u.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// CurrentUser loads the user behind an already-verified access token.
func (u *AuthUsecase) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
