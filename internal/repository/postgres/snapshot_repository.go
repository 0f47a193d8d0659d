package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/stockpilot/backend-go/internal/domain"
	"github.com/stockpilot/backend-go/internal/repository"
)

type snapshotRepository struct {
	db sqlx.QueryerContext
}

// NewSnapshotRepository returns a read-only SnapshotSource over the inventory
// tables.
func NewSnapshotRepository(db *sqlx.DB) repository.SnapshotSource {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) GetRecentOutboundMovements(ctx context.Context, windowDays int) ([]domain.MovementRow, error) {
	query := `
        SELECT warehouse_id, product_id, quantity, movement_type, occurred_at
        FROM inventory_movements
        WHERE movement_type = 'out'
          AND quantity < 0
          AND occurred_at >= NOW() - ($1 || ' days')::interval
    `

	var rows []domain.MovementRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, windowDays); err != nil {
		return nil, fmt.Errorf("error getting recent outbound movements: %w", err)
	}

	return rows, nil
}

func (r *snapshotRepository) GetActiveSupplierCatalog(ctx context.Context) ([]domain.SupplierLinkRow, error) {
	query := `
        SELECT
            sp.product_id,
            sp.supplier_id,
            sp.is_active,
            sp.is_preferred_supplier,
            sp.cost_price,
            sp.lead_time_days,
            sp.minimum_order_quantity,
            s.name AS supplier_name,
            s.email AS supplier_email,
            s.contact_person AS supplier_contact,
            s.status AS supplier_status
        FROM supplier_products sp
        JOIN suppliers s ON s.id = sp.supplier_id
        WHERE sp.is_active = true
          AND s.status = 'active'
    `

	var rows []domain.SupplierLinkRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("error getting supplier catalog: %w", err)
	}

	return rows, nil
}

func (r *snapshotRepository) GetCompanyInventorySnapshot(ctx context.Context, companyID int64) ([]domain.InventoryRow, error) {
	query := `
        SELECT
            p.id AS product_id,
            p.name AS product_name,
            p.sku,
            p.reorder_level,
            i.warehouse_id,
            w.name AS warehouse_name,
            i.quantity_available
        FROM inventory i
        JOIN warehouses w ON w.id = i.warehouse_id
        JOIN products p ON p.id = i.product_id
        WHERE w.company_id = $1
          AND p.is_active = true
          AND w.status = 'active'
    `

	var rows []domain.InventoryRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, companyID); err != nil {
		return nil, fmt.Errorf("error getting company inventory snapshot: %w", err)
	}

	return rows, nil
}
