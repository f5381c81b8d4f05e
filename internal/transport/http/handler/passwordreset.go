package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/gin-gonic/gin"
)

type passwordResetUsecaser interface {
	RequestReset(ctx context.Context, email string) error
	ConsumeReset(ctx context.Context, resetToken, newPassword string) error
}

type PasswordResetHandler struct {
	uc     passwordResetUsecaser
	logger *slog.Logger
}

func NewPasswordResetHandler(uc passwordResetUsecaser, logger *slog.Logger) *PasswordResetHandler {
	return &PasswordResetHandler{uc: uc, logger: logger.With("component", "password_reset_handler")}
}

type requestResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /request-password-reset
// Reports "user not found" to the caller; no enumeration hardening here.
func (h *PasswordResetHandler) Request(c *gin.Context) {
	var req requestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.uc.RequestReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "request password reset", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send password reset email."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset link sent to your email."})
}

type resetPasswordRequest struct {
	Token    string `json:"token"    binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /reset-password
func (h *PasswordResetHandler) Reset(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.uc.ConsumeReset(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, domain.ErrResetTokenInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "reset password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}
