package service

import (
	"context"
	"fmt"

	"github.com/stockpilot/backend-go/internal/domain"
	"github.com/stockpilot/backend-go/internal/repository"
)

// ProductService validates and executes product creation. A product and its
// initial inventory row are created in one transaction; any failure leaves
// neither behind.
type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) CreateProduct(ctx context.Context, input domain.CreateProductInput) (int64, error) {
	if input.Name == "" || input.SKU == "" || input.WarehouseID <= 0 {
		return 0, fmt.Errorf("%w: name, sku and warehouse_id are required", domain.ErrInvalidInput)
	}
	if input.Price != nil && *input.Price < 0 {
		return 0, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if input.InitialQuantity != nil && *input.InitialQuantity < 0 {
		return 0, fmt.Errorf("%w: initial_quantity must not be negative", domain.ErrInvalidInput)
	}

	return s.repo.CreateProductWithInventory(ctx, input)
}
