package repository

import (
	"context"

	"github.com/stockpilot/backend-go/internal/domain"
)

// SnapshotSource provides the read-consistent input collections the alert
// engine evaluates. Implementations never mutate the underlying data.
type SnapshotSource interface {
	// GetRecentOutboundMovements returns outbound movements with a negative
	// quantity inside the trailing window.
	GetRecentOutboundMovements(ctx context.Context, windowDays int) ([]domain.MovementRow, error)

	// GetActiveSupplierCatalog returns active supplier links joined with
	// active suppliers.
	GetActiveSupplierCatalog(ctx context.Context) ([]domain.SupplierLinkRow, error)

	// GetCompanyInventorySnapshot returns stock levels for active products in
	// the company's active warehouses.
	GetCompanyInventorySnapshot(ctx context.Context, companyID int64) ([]domain.InventoryRow, error)
}

// ProductRepository creates products together with their initial inventory row.
type ProductRepository interface {
	// CreateProductWithInventory inserts one product and one inventory row in
	// a single transaction and returns the new product id. A duplicate SKU
	// fails with domain.ErrDuplicateSKU and nothing is written.
	CreateProductWithInventory(ctx context.Context, input domain.CreateProductInput) (int64, error)
}
