package alert

import (
	"context"
	"time"

	"github.com/stockpilot/backend-go/internal/domain"
	"github.com/stockpilot/backend-go/internal/repository"
	"golang.org/x/sync/errgroup"
)

// DefaultWindowDays is the trailing window for the sales velocity estimate.
const DefaultWindowDays = 30

// Engine computes ranked low-stock alerts for one company from a snapshot of
// the movement log, the supplier catalog and the current inventory. It holds
// no state between invocations; concurrent evaluations are independent.
type Engine struct {
	source           repository.SnapshotSource
	windowDays       int
	defaultThreshold int
	now              func() time.Time
}

func NewEngine(source repository.SnapshotSource, windowDays, defaultThreshold int) *Engine {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if defaultThreshold <= 0 {
		defaultThreshold = DefaultThreshold
	}

	return &Engine{
		source:           source,
		windowDays:       windowDays,
		defaultThreshold: defaultThreshold,
		now:              time.Now,
	}
}

// ComputeLowStockAlerts runs one full evaluation: aggregate movement history
// and resolve suppliers (concurrently, they read disjoint inputs), join with
// the company inventory snapshot, then rank. Snapshot failures abort the
// invocation; no partial alert list is ever returned.
func (e *Engine) ComputeLowStockAlerts(ctx context.Context, companyID int64) (*domain.AlertReport, error) {
	if companyID <= 0 {
		return nil, domain.ErrInvalidCompanyID
	}

	var (
		velocities map[GroupKey]Velocity
		suppliers  map[int64]ResolvedSupplier
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		movements, err := e.source.GetRecentOutboundMovements(gctx, e.windowDays)
		if err != nil {
			return err
		}
		velocities = AggregateMovements(movements, e.now(), e.windowDays)
		return nil
	})
	g.Go(func() error {
		links, err := e.source.GetActiveSupplierCatalog(gctx)
		if err != nil {
			return err
		}
		suppliers = ResolveSuppliers(links)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows, err := e.source.GetCompanyInventorySnapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}

	alerts := AssembleAlerts(rows, velocities, suppliers, e.defaultThreshold)
	RankAlerts(alerts)

	return &domain.AlertReport{
		Alerts:      alerts,
		TotalAlerts: len(alerts),
	}, nil
}
