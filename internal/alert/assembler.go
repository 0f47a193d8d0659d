package alert

import (
	"math"

	"github.com/stockpilot/backend-go/internal/domain"
)

const (
	// DefaultThreshold applies to products without a reorder level.
	DefaultThreshold = 10

	// maxStockoutDays saturates the stockout projection. It doubles as the
	// value for pairs with no measurable velocity, so 999 always reads as
	// "effectively no stockout risk".
	maxStockoutDays = 999
)

// AssembleAlerts joins the company inventory snapshot with the velocity map
// and the resolved supplier map into candidate alerts.
//
// Pairs without a velocity entry are skipped even when stock is low; pairs
// above their effective threshold are skipped. Each qualifying (warehouse,
// product) pair yields an independent alert, so a product stocked in several
// warehouses can appear more than once.
func AssembleAlerts(rows []domain.InventoryRow, velocities map[GroupKey]Velocity, suppliers map[int64]ResolvedSupplier, defaultThreshold int) []domain.Alert {
	if defaultThreshold <= 0 {
		defaultThreshold = DefaultThreshold
	}

	alerts := make([]domain.Alert, 0)
	for _, row := range rows {
		velocity, ok := velocities[GroupKey{WarehouseID: row.WarehouseID, ProductID: row.ProductID}]
		if !ok {
			continue
		}

		threshold := defaultThreshold
		if row.ReorderLevel != nil {
			threshold = *row.ReorderLevel
		}
		if row.QuantityAvailable > threshold {
			continue
		}

		supplier, ok := suppliers[row.ProductID]
		if !ok {
			supplier = NoSupplier()
		}

		alerts = append(alerts, domain.Alert{
			ProductID:         row.ProductID,
			ProductName:       row.ProductName,
			SKU:               row.SKU,
			WarehouseID:       row.WarehouseID,
			WarehouseName:     row.WarehouseName,
			CurrentStock:      row.QuantityAvailable,
			Threshold:         threshold,
			DaysUntilStockout: daysUntilStockout(row.QuantityAvailable, velocity.DailyRate),
			Supplier: domain.SupplierRef{
				ID:           supplier.SupplierID,
				Name:         supplier.Name,
				ContactEmail: supplier.ContactEmail,
			},
		})
	}

	return alerts
}

// daysUntilStockout projects how many days of stock remain at the current
// daily rate. The result is always in [0, maxStockoutDays].
func daysUntilStockout(stock int, dailyRate float64) int {
	if dailyRate <= 0 {
		return maxStockoutDays
	}
	if stock <= 0 {
		return 0
	}

	days := int(math.Ceil(float64(stock) / dailyRate))
	if days > maxStockoutDays {
		return maxStockoutDays
	}
	return days
}
