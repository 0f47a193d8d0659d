package domain

import "time"

// Inventory movement types. Outbound movements carry a negative quantity.
const (
	MovementTypeIn  = "in"
	MovementTypeOut = "out"
)

// Company represents a tenant owning one or more warehouses.
type Company struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Warehouse represents a stock location owned by a company.
type Warehouse struct {
	ID        int64     `json:"id" db:"id"`
	CompanyID int64     `json:"company_id" db:"company_id"`
	Name      string    `json:"name" db:"name"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Product represents a sellable SKU. ReorderLevel is the per-product low-stock
// threshold; when unset the platform default applies.
type Product struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	SKU          string    `json:"sku" db:"sku"`
	Price        float64   `json:"price" db:"price"`
	ReorderLevel *int      `json:"reorder_level" db:"reorder_level"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Supplier represents a resupply contact. Email falls back to ContactPerson
// when unset.
type Supplier struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	Email         *string `json:"email" db:"email"`
	ContactPerson *string `json:"contact_person" db:"contact_person"`
	Status        string  `json:"status" db:"status"`
}

// MovementRow is one outbound inventory movement inside the trailing window,
// as returned by the snapshot source.
type MovementRow struct {
	WarehouseID  int64     `db:"warehouse_id"`
	ProductID    int64     `db:"product_id"`
	Quantity     int       `db:"quantity"`
	MovementType string    `db:"movement_type"`
	OccurredAt   time.Time `db:"occurred_at"`
}

// SupplierLinkRow is a product/supplier catalog link pre-joined with the
// supplier directory.
type SupplierLinkRow struct {
	ProductID            int64   `db:"product_id"`
	SupplierID           int64   `db:"supplier_id"`
	IsActive             bool    `db:"is_active"`
	IsPreferredSupplier  bool    `db:"is_preferred_supplier"`
	CostPrice            float64 `db:"cost_price"`
	LeadTimeDays         int     `db:"lead_time_days"`
	MinimumOrderQuantity int     `db:"minimum_order_quantity"`
	SupplierName         string  `db:"supplier_name"`
	SupplierEmail        *string `db:"supplier_email"`
	SupplierContact      *string `db:"supplier_contact"`
	SupplierStatus       string  `db:"supplier_status"`
}

// InventoryRow is one (warehouse, product) stock level for a company,
// restricted to active products and active warehouses.
type InventoryRow struct {
	ProductID         int64  `db:"product_id"`
	ProductName       string `db:"product_name"`
	SKU               string `db:"sku"`
	ReorderLevel      *int   `db:"reorder_level"`
	WarehouseID       int64  `db:"warehouse_id"`
	WarehouseName     string `db:"warehouse_name"`
	QuantityAvailable int    `db:"quantity_available"`
}

// SupplierRef is the resupply contact attached to an alert. ID is nil when no
// active supplier link exists for the product.
type SupplierRef struct {
	ID           *int64 `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

// Alert is one low-stock alert for a (warehouse, product) pair. Alerts are
// derived output and carry no identity across calls.
type Alert struct {
	ProductID         int64       `json:"product_id"`
	ProductName       string      `json:"product_name"`
	SKU               string      `json:"sku"`
	WarehouseID       int64       `json:"warehouse_id"`
	WarehouseName     string      `json:"warehouse_name"`
	CurrentStock      int         `json:"current_stock"`
	Threshold         int         `json:"threshold"`
	DaysUntilStockout int         `json:"days_until_stockout"`
	Supplier          SupplierRef `json:"supplier"`
}

// AlertReport is the ranked alert list returned to callers.
type AlertReport struct {
	Alerts      []Alert `json:"alerts"`
	TotalAlerts int     `json:"total_alerts"`
}

// CreateProductInput is the payload for the product creation endpoint.
type CreateProductInput struct {
	Name            string   `json:"name"`
	SKU             string   `json:"sku"`
	WarehouseID     int64    `json:"warehouse_id"`
	Price           *float64 `json:"price"`
	InitialQuantity *int     `json:"initial_quantity"`
}
