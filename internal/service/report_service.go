package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stockpilot/backend-go/internal/domain"
	"github.com/stockpilot/backend-go/internal/storage"
)

// ReportService renders alert reports as CSV and optionally archives them to
// object storage.
type ReportService struct {
	alerts  *AlertService
	storage storage.ObjectStorage
}

// NewReportService builds a report service. storageImpl may be nil when no
// archive bucket is configured; archiving then fails with an explicit error
// while plain CSV export keeps working.
func NewReportService(alerts *AlertService, storageImpl storage.ObjectStorage) *ReportService {
	return &ReportService{alerts: alerts, storage: storageImpl}
}

// ExportCompanyAlerts computes the alerts for one company and renders them as
// CSV.
func (s *ReportService) ExportCompanyAlerts(ctx context.Context, companyID int64) ([]byte, error) {
	report, err := s.alerts.GetLowStockAlerts(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return RenderAlertCSV(report)
}

// ArchiveCompanyAlerts computes, renders and uploads a company's alert report
// and returns the object key.
func (s *ReportService) ArchiveCompanyAlerts(ctx context.Context, companyID int64, now time.Time) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("no object storage configured")
	}

	payload, err := s.ExportCompanyAlerts(ctx, companyID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("alerts/company_%d/%s.csv", companyID, now.UTC().Format("2006-01-02T15-04-05"))
	if err := s.storage.UploadObject(ctx, key, payload); err != nil {
		return "", err
	}

	log.Info().Int64("company_id", companyID).Str("key", key).Msg("alert report archived")
	return key, nil
}

// RenderAlertCSV renders one report as CSV, one row per alert in ranked order.
func RenderAlertCSV(report *domain.AlertReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"product_id", "product_name", "sku",
		"warehouse_id", "warehouse_name",
		"current_stock", "threshold", "days_until_stockout",
		"supplier_id", "supplier_name", "supplier_contact_email",
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, a := range report.Alerts {
		supplierID := ""
		if a.Supplier.ID != nil {
			supplierID = strconv.FormatInt(*a.Supplier.ID, 10)
		}

		row := []string{
			strconv.FormatInt(a.ProductID, 10),
			a.ProductName,
			a.SKU,
			strconv.FormatInt(a.WarehouseID, 10),
			a.WarehouseName,
			strconv.Itoa(a.CurrentStock),
			strconv.Itoa(a.Threshold),
			strconv.Itoa(a.DaysUntilStockout),
			supplierID,
			a.Supplier.Name,
			a.Supplier.ContactEmail,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}
