package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/Abaaza/wallmastersbackend/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, html string) error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, html string) error {
	return s.send(ctx, to, subject, html)
}

const resetLinkBase = "https://www.wall-masters.com"

// tokenFromBody extracts the raw reset token from the emailed link.
func tokenFromBody(t *testing.T, body string) string {
	t.Helper()
	idx := strings.Index(body, "/reset-password/")
	if idx == -1 {
		t.Fatal("email body does not contain a reset link")
	}
	return strings.SplitN(body[idx+len("/reset-password/"):], `"`, 2)[0]
}

func TestPasswordReset_RoundTripIsSingleUse(t *testing.T) {
	user := &domain.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: hashOf(t, "old-pass"),
	}
	repo := singleUserRepo(user)

	var capturedBody string
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, html string) error {
			capturedBody = html
			return nil
		},
	}

	uc := usecase.NewPasswordResetUsecase(repo, sender, resetLinkBase)
	if err := uc.RequestReset(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}

	raw := tokenFromBody(t, capturedBody)
	if len(raw) != 64 {
		t.Fatalf("token length = %d, want 64 hex chars (32 bytes)", len(raw))
	}
	if user.ResetToken != raw {
		t.Fatal("emailed token does not match stored token")
	}

	if err := uc.ConsumeReset(context.Background(), raw, "new-pass"); err != nil {
		t.Fatalf("consume reset: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-pass")); err != nil {
		t.Errorf("new password does not verify: %v", err)
	}
	if user.ResetToken != "" || user.ResetTokenExpiresAt != nil {
		t.Error("reset token was not cleared after use")
	}

	// Second use of the same token must fail.
	err := uc.ConsumeReset(context.Background(), raw, "another-pass")
	if !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Errorf("want ErrResetTokenInvalid on reuse, got %v", err)
	}
}

func TestRequestReset_UnknownEmailIsReported(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	sender := &fakeEmailSender{}

	uc := usecase.NewPasswordResetUsecase(repo, sender, resetLinkBase)
	err := uc.RequestReset(context.Background(), "nobody@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("want ErrUserNotFound, got %v", err)
	}
}

func TestRequestReset_TokenExpiresInOneHour(t *testing.T) {
	user := &domain.User{ID: "user-1", Email: "alice@example.com"}
	repo := singleUserRepo(user)
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _ string) error { return nil },
	}

	before := time.Now()
	uc := usecase.NewPasswordResetUsecase(repo, sender, resetLinkBase)
	if err := uc.RequestReset(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}

	if user.ResetTokenExpiresAt == nil {
		t.Fatal("no expiry stored")
	}
	got := user.ResetTokenExpiresAt.Sub(before)
	if got < 59*time.Minute || got > 61*time.Minute {
		t.Errorf("expiry offset = %s, want about 1h", got)
	}
}

func TestRequestReset_EmailFailurePropagates(t *testing.T) {
	user := &domain.User{ID: "user-1", Email: "alice@example.com"}
	repo := singleUserRepo(user)

	sendErr := errors.New("resend unavailable")
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _ string) error { return sendErr },
	}

	uc := usecase.NewPasswordResetUsecase(repo, sender, resetLinkBase)
	err := uc.RequestReset(context.Background(), "alice@example.com")
	if !errors.Is(err, sendErr) {
		t.Errorf("want wrapped sendErr, got %v", err)
	}
}

func TestConsumeReset_ExpiredToken(t *testing.T) {
	expired := time.Now().Add(-time.Minute)
	user := &domain.User{
		ID:                  "user-1",
		Email:               "alice@example.com",
		ResetToken:          "deadbeef",
		ResetTokenExpiresAt: &expired,
	}
	repo := singleUserRepo(user)
	sender := &fakeEmailSender{}

	uc := usecase.NewPasswordResetUsecase(repo, sender, resetLinkBase)
	err := uc.ConsumeReset(context.Background(), "deadbeef", "new-pass")
	if !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Errorf("want ErrResetTokenInvalid, got %v", err)
	}
}
