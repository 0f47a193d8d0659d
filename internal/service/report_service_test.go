package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stockpilot/backend-go/internal/alert"
	"github.com/stockpilot/backend-go/internal/domain"
	"github.com/stockpilot/backend-go/internal/storage"
)

type stubStorage struct {
	uploadedKey  string
	uploadedData []byte
	uploadErr    error
}

func (s *stubStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (s *stubStorage) DownloadObject(ctx context.Context, key string, destPath string) error {
	return nil
}

func (s *stubStorage) UploadObject(ctx context.Context, key string, data []byte) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.uploadedKey = key
	s.uploadedData = data
	return nil
}

func newAlertServiceForReports(source *stubSource) *AlertService {
	return NewAlertService(alert.NewEngine(source, 30, 10), nil, 30)
}

func TestRenderAlertCSV(t *testing.T) {
	supplierID := int64(500)
	report := &domain.AlertReport{
		Alerts: []domain.Alert{
			{
				ProductID: 10, ProductName: "Beans", SKU: "BEAN-1",
				WarehouseID: 1, WarehouseName: "Central",
				CurrentStock: 4, Threshold: 10, DaysUntilStockout: 2,
				Supplier: domain.SupplierRef{ID: &supplierID, Name: "Nordic Goods", ContactEmail: "orders@nordic.test"},
			},
			{
				ProductID: 11, ProductName: "Rice", SKU: "RICE-1",
				WarehouseID: 1, WarehouseName: "Central",
				CurrentStock: 8, Threshold: 10, DaysUntilStockout: 999,
				Supplier: domain.SupplierRef{Name: "No Supplier Found", ContactEmail: "No Contact Available"},
			},
		},
		TotalAlerts: 2,
	}

	payload, err := RenderAlertCSV(report)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"product_id", "product_name", "sku",
		"warehouse_id", "warehouse_name",
		"current_stock", "threshold", "days_until_stockout",
		"supplier_id", "supplier_name", "supplier_contact_email",
	}, records[0])

	assert.Equal(t, []string{"10", "Beans", "BEAN-1", "1", "Central", "4", "10", "2", "500", "Nordic Goods", "orders@nordic.test"}, records[1])
	assert.Equal(t, []string{"11", "Rice", "RICE-1", "1", "Central", "8", "10", "999", "", "No Supplier Found", "No Contact Available"}, records[2])
}

func TestRenderAlertCSV_EmptyReport(t *testing.T) {
	payload, err := RenderAlertCSV(&domain.AlertReport{Alerts: []domain.Alert{}})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}

func TestReportService_ExportCompanyAlerts(t *testing.T) {
	svc := NewReportService(newAlertServiceForReports(&stubSource{}), nil)

	payload, err := svc.ExportCompanyAlerts(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "product_id,product_name,sku")

	_, err = svc.ExportCompanyAlerts(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidCompanyID)
}

func TestReportService_ArchiveCompanyAlerts(t *testing.T) {
	store := &stubStorage{}
	svc := NewReportService(newAlertServiceForReports(&stubSource{}), store)

	now := time.Date(2026, 8, 27, 14, 30, 5, 0, time.UTC)
	key, err := svc.ArchiveCompanyAlerts(context.Background(), 3, now)
	require.NoError(t, err)

	assert.Equal(t, "alerts/company_3/2026-08-27T14-30-05.csv", key)
	assert.Equal(t, key, store.uploadedKey)
	assert.NotEmpty(t, store.uploadedData)
}

func TestReportService_ArchiveWithoutStorage(t *testing.T) {
	svc := NewReportService(newAlertServiceForReports(&stubSource{}), nil)

	_, err := svc.ArchiveCompanyAlerts(context.Background(), 3, time.Now())
	assert.Error(t, err)
}

func TestReportService_ArchiveUploadFailure(t *testing.T) {
	boom := errors.New("bucket unreachable")
	svc := NewReportService(newAlertServiceForReports(&stubSource{}), &stubStorage{uploadErr: boom})

	_, err := svc.ArchiveCompanyAlerts(context.Background(), 3, time.Now())
	assert.ErrorIs(t, err, boom)
}
