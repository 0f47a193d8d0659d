package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stockpilot/backend-go/internal/alert"
	"github.com/stockpilot/backend-go/internal/domain"
	"github.com/stockpilot/backend-go/internal/service"
)

type fakeSnapshotSource struct {
	movements []domain.MovementRow
	links     []domain.SupplierLinkRow
	inventory []domain.InventoryRow
	err       error
}

func (f *fakeSnapshotSource) GetRecentOutboundMovements(ctx context.Context, windowDays int) ([]domain.MovementRow, error) {
	return f.movements, f.err
}

func (f *fakeSnapshotSource) GetActiveSupplierCatalog(ctx context.Context) ([]domain.SupplierLinkRow, error) {
	return f.links, f.err
}

func (f *fakeSnapshotSource) GetCompanyInventorySnapshot(ctx context.Context, companyID int64) ([]domain.InventoryRow, error) {
	return f.inventory, f.err
}

func lowStockSource() *fakeSnapshotSource {
	return &fakeSnapshotSource{
		movements: []domain.MovementRow{
			{WarehouseID: 1, ProductID: 10, Quantity: -4, MovementType: domain.MovementTypeOut, OccurredAt: time.Now().UTC().AddDate(0, 0, -1)},
		},
		inventory: []domain.InventoryRow{
			{ProductID: 10, ProductName: "Beans", SKU: "BEAN-1", WarehouseID: 1, WarehouseName: "Central", QuantityAvailable: 4},
		},
	}
}

func newAlertRouter(source *fakeSnapshotSource, withReports bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	alertService := service.NewAlertService(alert.NewEngine(source, 30, 10), nil, 30)
	var reportService *service.ReportService
	if withReports {
		reportService = service.NewReportService(alertService, nil)
	}
	handler := NewAlertHandler(alertService, reportService)

	router := gin.New()
	router.GET("/api/v1/companies/:company_id/alerts/low-stock", handler.GetLowStockAlerts)
	router.GET("/api/v1/companies/:company_id/alerts/low-stock/export", handler.ExportLowStockAlerts)
	return router
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetLowStockAlerts(t *testing.T) {
	router := newAlertRouter(lowStockSource(), false)

	rec := doRequest(router, http.MethodGet, "/api/v1/companies/1/alerts/low-stock")
	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.AlertReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Equal(t, 1, report.TotalAlerts)

	a := report.Alerts[0]
	assert.Equal(t, "BEAN-1", a.SKU)
	assert.Equal(t, 4, a.CurrentStock)
	assert.Equal(t, 1, a.DaysUntilStockout)
	assert.Equal(t, "No Supplier Found", a.Supplier.Name)
}

func TestGetLowStockAlerts_EmptyCompany(t *testing.T) {
	router := newAlertRouter(&fakeSnapshotSource{}, false)

	rec := doRequest(router, http.MethodGet, "/api/v1/companies/1/alerts/low-stock")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"alerts": [], "total_alerts": 0}`, rec.Body.String())
}

func TestGetLowStockAlerts_InvalidCompanyID(t *testing.T) {
	router := newAlertRouter(lowStockSource(), false)

	for _, companyID := range []string{"abc", "-1", "0"} {
		rec := doRequest(router, http.MethodGet, "/api/v1/companies/"+companyID+"/alerts/low-stock")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error": "invalid company ID"}`, rec.Body.String())
	}
}

func TestGetLowStockAlerts_SnapshotFailure(t *testing.T) {
	router := newAlertRouter(&fakeSnapshotSource{err: errors.New("db gone")}, false)

	rec := doRequest(router, http.MethodGet, "/api/v1/companies/1/alerts/low-stock")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "internal server error"}`, rec.Body.String())
}

func TestExportLowStockAlerts(t *testing.T) {
	router := newAlertRouter(lowStockSource(), true)

	rec := doRequest(router, http.MethodGet, "/api/v1/companies/1/alerts/low-stock/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "low_stock_alerts_company_1_")

	body := rec.Body.String()
	assert.Contains(t, body, "product_id,product_name,sku")
	assert.Contains(t, body, "BEAN-1")
}

func TestExportLowStockAlerts_NotConfigured(t *testing.T) {
	router := newAlertRouter(lowStockSource(), false)

	rec := doRequest(router, http.MethodGet, "/api/v1/companies/1/alerts/low-stock/export")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
