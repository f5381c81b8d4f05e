package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type addressUsecaser interface {
	List(ctx context.Context, userID string) ([]domain.Address, error)
	Add(ctx context.Context, userID string, addr domain.Address) ([]domain.Address, error)
	Remove(ctx context.Context, userID, addressID string) ([]domain.Address, error)
	SetDefault(ctx context.Context, userID, addressID string) ([]domain.Address, error)
}

type AddressHandler struct {
	uc     addressUsecaser
	logger *slog.Logger
}

func NewAddressHandler(uc addressUsecaser, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{uc: uc, logger: logger.With("component", "address_handler")}
}

// GET /addresses/:userId
func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.uc.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "list addresses", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, addresses)
}

type addressRequest struct {
	Name       string `json:"name"       binding:"required"`
	Email      string `json:"email"      binding:"required,email"`
	MobileNo   string `json:"mobileNo"   binding:"required"`
	HouseNo    string `json:"houseNo"    binding:"required"`
	Street     string `json:"street"     binding:"required"`
	City       string `json:"city"       binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	IsDefault  bool   `json:"isDefault"`
}

// POST /addresses/:userId
func (h *AddressHandler) Add(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid address format."})
		return
	}

	addresses, err := h.uc.Add(c.Request.Context(), c.Param("userId"), domain.Address{
		Name:       req.Name,
		Email:      req.Email,
		MobileNo:   req.MobileNo,
		HouseNo:    req.HouseNo,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
		case errors.Is(err, domain.ErrDuplicateAddress):
			c.JSON(http.StatusConflict, gin.H{"message": errDuplicateAddress})
		default:
			h.logger.ErrorContext(c.Request.Context(), "add address", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Address saved successfully.",
		"savedAddresses": addresses,
	})
}

// DELETE /addresses/:userId/:addressId
func (h *AddressHandler) Remove(c *gin.Context) {
	userID, addressID := c.Param("userId"), c.Param("addressId")
	if !validIDs(userID, addressID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidIDs})
		return
	}

	addresses, err := h.uc.Remove(c.Request.Context(), userID, addressID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
		case errors.Is(err, domain.ErrAddressNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errAddressNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "remove address", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Address deleted successfully",
		"savedAddresses": addresses,
	})
}

// PUT /addresses/:userId/default/:addressId
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID, addressID := c.Param("userId"), c.Param("addressId")
	if !validIDs(userID, addressID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidIDs})
		return
	}

	addresses, err := h.uc.SetDefault(c.Request.Context(), userID, addressID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
		case errors.Is(err, domain.ErrAddressNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errAddressNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "set default address", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Default address updated successfully",
		"savedAddresses": addresses,
	})
}

func validIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}
