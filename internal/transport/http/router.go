package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/Abaaza/wallmastersbackend/internal/token"
	"github.com/Abaaza/wallmastersbackend/internal/transport/http/handler"
	"github.com/Abaaza/wallmastersbackend/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	PasswordReset *handler.PasswordResetHandler
	Address       *handler.AddressHandler
	SavedItems    *handler.SavedItemsHandler
	Product       *handler.ProductHandler
	Contact       *handler.ContactHandler
}

// NewRouter wires the storefront API surface. Paths and methods are stable;
// storefront clients depend on them.
func NewRouter(logger *slog.Logger, h Handlers, tokens *token.Service, authRPS float64) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(tokens)
	credLimit := middleware.RateLimit(authRPS)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello from Wallmasters Backend!")
	})

	// Accounts and sessions
	r.POST("/register", credLimit, h.Auth.Register)
	r.POST("/login", credLimit, h.Auth.Login)
	r.POST("/change-password", credLimit, h.Auth.ChangePassword)
	r.POST("/refresh-token", h.Auth.Refresh)
	r.GET("/auth/verify-session", h.Auth.VerifySession)
	r.GET("/user/details", authMW, h.Auth.Details)
	r.GET("/users/:userId", h.Auth.GetByID)

	// Password reset
	r.POST("/request-password-reset", credLimit, h.PasswordReset.Request)
	r.POST("/reset-password", h.PasswordReset.Reset)

	// Address book
	r.GET("/addresses/:userId", h.Address.List)
	r.POST("/addresses/:userId", h.Address.Add)
	r.DELETE("/addresses/:userId/:addressId", h.Address.Remove)
	r.PUT("/addresses/:userId/default/:addressId", h.Address.SetDefault)

	// Saved for later
	r.GET("/saved-items/:userId", h.SavedItems.List)
	r.POST("/save-for-later/:userId", h.SavedItems.Save)
	r.DELETE("/saved-items/:userId/:productId", h.SavedItems.Remove)

	// Catalog and contact
	r.GET("/products", h.Product.List)
	r.POST("/send-email", h.Contact.Send)

	return r
}
