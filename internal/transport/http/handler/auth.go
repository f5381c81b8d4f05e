package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/Abaaza/wallmastersbackend/internal/token"
	"github.com/Abaaza/wallmastersbackend/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, name, email, password string) (*usecase.Session, error)
	Login(ctx context.Context, email, password string) (*usecase.Session, error)
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error
	Refresh(ctx context.Context, refreshToken string) (*usecase.Session, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

type accessVerifier interface {
	VerifyAccessToken(raw string) (*token.Claims, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	tokens      accessVerifier
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, tokens accessVerifier, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		tokens:      tokens,
		logger:      logger.With("component", "auth_handler"),
	}
}

// userView is the sanitized user shape returned by credential exchanges.
// Credential material never leaves the service.
type userView struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserView(u *domain.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email}
}

type registerRequest struct {
	Name     string `json:"name"     binding:"required,max=256"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	sess, err := h.authUsecase.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": errUserExists})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   sess.AccessToken,
		"user":    toUserView(sess.User),
	})
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	sess, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": errInvalidCreds})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"user":         toUserView(sess.User),
		"token":        sess.AccessToken,
		"refreshToken": sess.RefreshToken,
	})
}

type changePasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// POST /change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.Email == "" || req.OldPassword == "" || req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": errMissingFields})
		return
	}

	err := h.authUsecase.ChangePassword(c.Request.Context(), req.Email, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
		case errors.Is(err, domain.ErrIncorrectPassword):
			c.JSON(http.StatusBadRequest, gin.H{"message": errIncorrectPassword})
		default:
			h.logger.ErrorContext(c.Request.Context(), "change password", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// POST /refresh-token
// Rotation: the presented token is invalidated and both tokens reissued.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": errNoRefreshToken})
		return
	}

	sess, err := h.authUsecase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenInvalid) {
			c.JSON(http.StatusForbidden, gin.H{"message": errInvalidRefreshToken})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "refresh token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"token":        sess.AccessToken,
		"refreshToken": sess.RefreshToken,
		"user":         toUserView(sess.User),
	})
}

// GET /auth/verify-session
// Stateless: checks the bearer token only, never touches the store.
func (h *AuthHandler) VerifySession(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"message": errTokenMissing})
		return
	}

	if _, err := h.tokens.VerifyAccessToken(strings.TrimPrefix(header, "Bearer ")); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": errTokenInvalid})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token is valid"})
}

// GET /user/details (behind Auth middleware)
func (h *AuthHandler) Details(c *gin.Context) {
	user, err := h.authUsecase.CurrentUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "user details", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId": user.ID,
		"name":   user.Name,
		"email":  user.Email,
	})
}

// GET /users/:userId
func (h *AuthHandler) GetByID(c *gin.Context) {
	user, err := h.authUsecase.CurrentUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toUserView(user))
}
