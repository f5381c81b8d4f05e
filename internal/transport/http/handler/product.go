package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/gin-gonic/gin"
)

type productLister interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type ProductHandler struct {
	products productLister
	logger   *slog.Logger
}

func NewProductHandler(products productLister, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger.With("component", "product_handler")}
}

// GET /products
// The catalog is schemaless; documents are returned as stored, with the
// store-assigned id stitched in.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching products."})
		return
	}

	out := make([]map[string]json.RawMessage, 0, len(products))
	for _, p := range products {
		doc := map[string]json.RawMessage{}
		if err := json.Unmarshal(p.Data, &doc); err != nil {
			h.logger.ErrorContext(c.Request.Context(), "decode product", "product_id", p.ID, "error", err)
			continue
		}
		id, _ := json.Marshal(p.ID)
		doc["_id"] = id
		out = append(out, doc)
	}

	c.JSON(http.StatusOK, out)
}
