package alert

import (
	"sort"

	"github.com/stockpilot/backend-go/internal/domain"
)

// RankAlerts orders alerts in place by urgency: soonest stockout first, then
// lowest absolute stock. The sort is stable, so ties keep their input order
// and repeated runs over the same snapshot produce identical output.
func RankAlerts(alerts []domain.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].DaysUntilStockout != alerts[j].DaysUntilStockout {
			return alerts[i].DaysUntilStockout < alerts[j].DaysUntilStockout
		}
		return alerts[i].CurrentStock < alerts[j].CurrentStock
	})
}
