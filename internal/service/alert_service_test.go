package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stockpilot/backend-go/internal/alert"
	"github.com/stockpilot/backend-go/internal/domain"
)

type stubSource struct {
	movements []domain.MovementRow
	links     []domain.SupplierLinkRow
	inventory []domain.InventoryRow

	snapshotCalls int
	inventoryErr  error
}

func (s *stubSource) GetRecentOutboundMovements(ctx context.Context, windowDays int) ([]domain.MovementRow, error) {
	return s.movements, nil
}

func (s *stubSource) GetActiveSupplierCatalog(ctx context.Context) ([]domain.SupplierLinkRow, error) {
	return s.links, nil
}

func (s *stubSource) GetCompanyInventorySnapshot(ctx context.Context, companyID int64) ([]domain.InventoryRow, error) {
	s.snapshotCalls++
	return s.inventory, s.inventoryErr
}

type stubCache struct {
	report *domain.AlertReport
	getErr error
	setErr error

	gets, sets int
}

func (c *stubCache) Get(ctx context.Context, companyID int64, windowDays int) (*domain.AlertReport, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.report, c.report != nil, nil
}

func (c *stubCache) Set(ctx context.Context, companyID int64, windowDays int, report *domain.AlertReport) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.report = report
	return nil
}

func (c *stubCache) Invalidate(ctx context.Context, companyID int64) error {
	c.report = nil
	return nil
}

func (c *stubCache) InvalidateAll(ctx context.Context) error {
	c.report = nil
	return nil
}

func TestAlertService_ValidatesCompanyID(t *testing.T) {
	cacheStub := &stubCache{}
	svc := NewAlertService(alert.NewEngine(&stubSource{}, 30, 10), cacheStub, 30)

	for _, companyID := range []int64{0, -1} {
		report, err := svc.GetLowStockAlerts(context.Background(), companyID)
		assert.ErrorIs(t, err, domain.ErrInvalidCompanyID)
		assert.Nil(t, report)
	}
	assert.Zero(t, cacheStub.gets, "invalid IDs must be rejected before the cache")
}

func TestAlertService_CacheHitShortCircuits(t *testing.T) {
	source := &stubSource{}
	cached := &domain.AlertReport{Alerts: []domain.Alert{{ProductID: 10}}, TotalAlerts: 1}
	svc := NewAlertService(alert.NewEngine(source, 30, 10), &stubCache{report: cached}, 30)

	report, err := svc.GetLowStockAlerts(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, cached, report)
	assert.Zero(t, source.snapshotCalls)
}

func TestAlertService_MissComputesAndStores(t *testing.T) {
	cacheStub := &stubCache{}
	svc := NewAlertService(alert.NewEngine(&stubSource{}, 30, 10), cacheStub, 30)

	report, err := svc.GetLowStockAlerts(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalAlerts)
	assert.Equal(t, 1, cacheStub.sets)
	assert.Equal(t, report, cacheStub.report)
}

func TestAlertService_CacheErrorsAreNonFatal(t *testing.T) {
	source := &stubSource{}
	cacheStub := &stubCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	svc := NewAlertService(alert.NewEngine(source, 30, 10), cacheStub, 30)

	report, err := svc.GetLowStockAlerts(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, report)
	assert.Equal(t, 1, source.snapshotCalls)
}

func TestAlertService_PropagatesEngineErrors(t *testing.T) {
	boom := errors.New("db gone")
	source := &stubSource{inventoryErr: boom}
	cacheStub := &stubCache{}
	svc := NewAlertService(alert.NewEngine(source, 30, 10), cacheStub, 30)

	report, err := svc.GetLowStockAlerts(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, report)
	assert.Zero(t, cacheStub.sets, "failed computations must not be cached")
}

func TestAlertService_NilCacheDefaultsToNoop(t *testing.T) {
	svc := NewAlertService(alert.NewEngine(&stubSource{}, 30, 10), nil, 30)

	report, err := svc.GetLowStockAlerts(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, report)
}
