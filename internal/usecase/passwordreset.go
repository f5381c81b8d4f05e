package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/Abaaza/wallmastersbackend/internal/email"
	"github.com/Abaaza/wallmastersbackend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 1 * time.Hour

type PasswordResetUsecase struct {
	users         repository.UserRepository
	email         email.Sender
	resetLinkBase string
	tokenTTL      time.Duration
	now           func() time.Time
}

func NewPasswordResetUsecase(users repository.UserRepository, emailSender email.Sender, resetLinkBase string) *PasswordResetUsecase {
	return &PasswordResetUsecase{
		users:         users,
		email:         emailSender,
		resetLinkBase: resetLinkBase,
		tokenTTL:      resetTokenTTL,
		now:           time.Now,
	}
}

// RequestReset stores a fresh single-use token on the matching user and
// emails the reset link. The caller is told when no user matches.
func (u *PasswordResetUsecase) RequestReset(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	raw := make([]byte, 32)
	if _, err = io.ReadFull(rand.Reader, raw); err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	resetToken := hex.EncodeToString(raw)

	expiresAt := u.now().Add(u.tokenTTL)
	user.ResetToken = resetToken
	user.ResetTokenExpiresAt = &expiresAt
	if err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := u.resetLinkBase + "/reset-password/" + resetToken
	body := fmt.Sprintf(
		`<p>Please use the following link to reset your password:</p><p><a href="%s">%s</a></p>`,
		link, link,
	)
	if err := u.email.Send(ctx, user.Email, "Password Reset", body); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// ConsumeReset swaps the credential material for a user whose stored token
// matches and has not expired, then clears the token. Clearing is what makes
// the token single-use: a second call with the same value finds no user.
func (u *PasswordResetUsecase) ConsumeReset(ctx context.Context, resetToken, newPassword string) error {
	user, err := u.users.FindByResetToken(ctx, resetToken, u.now())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.ClearResetToken()
	if err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
