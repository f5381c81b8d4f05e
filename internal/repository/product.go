package repository

import (
	"context"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
)

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
}
