package alert

import (
	"time"

	"github.com/stockpilot/backend-go/internal/domain"
)

// GroupKey identifies a (warehouse, product) pair.
type GroupKey struct {
	WarehouseID int64
	ProductID   int64
}

// Velocity holds the windowed sales figures for one (warehouse, product) pair.
type Velocity struct {
	TotalSold  int     // units sold inside the window
	ActiveDays int     // distinct calendar days with at least one sale
	DailyRate  float64 // TotalSold / ActiveDays
}

// AggregateMovements reduces the movement log into per (warehouse, product)
// sales velocities over the trailing window ending at now.
//
// Only outbound movements with a negative quantity and a timestamp inside the
// window qualify. Groups without any sold units are dropped: a pair with no
// sales signal is never alerted. Calendar days are bucketed in UTC.
func AggregateMovements(movements []domain.MovementRow, now time.Time, windowDays int) map[GroupKey]Velocity {
	cutoff := now.AddDate(0, 0, -windowDays)

	type bucket struct {
		totalSold int
		days      map[string]struct{}
	}
	buckets := make(map[GroupKey]*bucket)

	for _, m := range movements {
		if m.MovementType != domain.MovementTypeOut || m.Quantity >= 0 {
			continue
		}
		if m.OccurredAt.Before(cutoff) {
			continue
		}

		key := GroupKey{WarehouseID: m.WarehouseID, ProductID: m.ProductID}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{days: make(map[string]struct{})}
			buckets[key] = b
		}

		b.totalSold += -m.Quantity
		b.days[m.OccurredAt.UTC().Format("2006-01-02")] = struct{}{}
	}

	velocities := make(map[GroupKey]Velocity, len(buckets))
	for key, b := range buckets {
		if b.totalSold == 0 {
			continue
		}

		v := Velocity{
			TotalSold:  b.totalSold,
			ActiveDays: len(b.days),
		}
		if v.ActiveDays > 0 {
			v.DailyRate = float64(v.TotalSold) / float64(v.ActiveDays)
		}
		velocities[key] = v
	}

	return velocities
}
