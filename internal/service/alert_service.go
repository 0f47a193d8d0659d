package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/stockpilot/backend-go/internal/alert"
	"github.com/stockpilot/backend-go/internal/cache"
	"github.com/stockpilot/backend-go/internal/domain"
)

// AlertService fronts the alert engine with validation and optional caching.
type AlertService struct {
	engine     *alert.Engine
	cache      cache.AlertCache
	windowDays int
}

func NewAlertService(engine *alert.Engine, cacheImpl cache.AlertCache, windowDays int) *AlertService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAlertCache()
	}
	if windowDays <= 0 {
		windowDays = alert.DefaultWindowDays
	}
	return &AlertService{engine: engine, cache: cacheImpl, windowDays: windowDays}
}

// GetLowStockAlerts returns the ranked low-stock alerts for one company.
// Cache failures are logged and never fail the request; a cache hit is only a
// short-circuit of the identical pure computation.
func (s *AlertService) GetLowStockAlerts(ctx context.Context, companyID int64) (*domain.AlertReport, error) {
	if companyID <= 0 {
		return nil, domain.ErrInvalidCompanyID
	}

	if report, ok, err := s.cache.Get(ctx, companyID, s.windowDays); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Int64("company_id", companyID).Msg("alerts: cache get failed")
	}

	report, err := s.engine.ComputeLowStockAlerts(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, companyID, s.windowDays, report); err != nil {
		log.Warn().Err(err).Int64("company_id", companyID).Msg("alerts: cache set failed")
	}

	return report, nil
}
