package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockpilot/backend-go/internal/domain"
	"github.com/stockpilot/backend-go/internal/repository"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// CreateProductWithInventory inserts the product and its initial inventory
// row atomically. The SKU uniqueness check runs inside the same transaction,
// so a duplicate rolls back without touching either table.
func (r *productRepository) CreateProductWithInventory(ctx context.Context, input domain.CreateProductInput) (int64, error) {
	var productID int64

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1)`, input.SKU,
		).Scan(&exists); err != nil {
			return fmt.Errorf("error checking SKU uniqueness: %w", err)
		}
		if exists {
			return domain.ErrDuplicateSKU
		}

		price := 0.0
		if input.Price != nil {
			price = *input.Price
		}
		initialQuantity := 0
		if input.InitialQuantity != nil {
			initialQuantity = *input.InitialQuantity
		}

		if err := tx.QueryRowContext(ctx,
			`INSERT INTO products (name, sku, price, is_active) VALUES ($1, $2, $3, true) RETURNING id`,
			input.Name, input.SKU, price,
		).Scan(&productID); err != nil {
			return fmt.Errorf("error inserting product: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory (product_id, warehouse_id, quantity_available) VALUES ($1, $2, $3)`,
			productID, input.WarehouseID, initialQuantity,
		); err != nil {
			return fmt.Errorf("error inserting inventory row: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return productID, nil
}
