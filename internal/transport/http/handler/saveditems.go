package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/gin-gonic/gin"
)

type savedItemsUsecaser interface {
	List(ctx context.Context, userID string) ([]domain.SavedItem, error)
	Save(ctx context.Context, userID string, item domain.SavedItem) error
	Remove(ctx context.Context, userID, productID string) error
}

type SavedItemsHandler struct {
	uc     savedItemsUsecaser
	logger *slog.Logger
}

func NewSavedItemsHandler(uc savedItemsUsecaser, logger *slog.Logger) *SavedItemsHandler {
	return &SavedItemsHandler{uc: uc, logger: logger.With("component", "saved_items_handler")}
}

// GET /saved-items/:userId
func (h *SavedItemsHandler) List(c *gin.Context) {
	items, err := h.uc.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "list saved items", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, items)
}

type saveForLaterRequest struct {
	Product domain.SavedItem `json:"product"`
}

// POST /save-for-later/:userId
func (h *SavedItemsHandler) Save(c *gin.Context) {
	var req saveForLaterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Product.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidProduct})
		return
	}
	if len(req.Product.Images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": errMissingImages})
		return
	}

	err := h.uc.Save(c.Request.Context(), c.Param("userId"), req.Product)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
		case errors.Is(err, domain.ErrItemAlreadySaved):
			c.JSON(http.StatusBadRequest, gin.H{"message": errAlreadySaved})
		case errors.Is(err, domain.ErrInvalidProduct):
			c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidProduct})
		default:
			h.logger.ErrorContext(c.Request.Context(), "save for later", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product saved for later."})
}

// DELETE /saved-items/:userId/:productId
func (h *SavedItemsHandler) Remove(c *gin.Context) {
	err := h.uc.Remove(c.Request.Context(), c.Param("userId"), c.Param("productId"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
		case errors.Is(err, domain.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errSavedItemAbsent})
		default:
			h.logger.ErrorContext(c.Request.Context(), "remove saved item", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from saved items."})
}
