package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stockpilot/backend-go/internal/domain"
	"github.com/stockpilot/backend-go/internal/service"
)

type AlertHandler struct {
	alertService  *service.AlertService
	reportService *service.ReportService
}

func NewAlertHandler(alertService *service.AlertService, reportService *service.ReportService) *AlertHandler {
	return &AlertHandler{alertService: alertService, reportService: reportService}
}

// GetLowStockAlerts returns the ranked low-stock alerts for a company.
func (h *AlertHandler) GetLowStockAlerts(c *gin.Context) {
	companyID, ok := parseCompanyID(c)
	if !ok {
		return
	}

	report, err := h.alertService.GetLowStockAlerts(c.Request.Context(), companyID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCompanyID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
			return
		}
		log.Error().Err(err).Int64("company_id", companyID).Msg("failed to compute low stock alerts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportLowStockAlerts returns the same alert list as a CSV download.
func (h *AlertHandler) ExportLowStockAlerts(c *gin.Context) {
	if h.reportService == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report export not configured"})
		return
	}

	companyID, ok := parseCompanyID(c)
	if !ok {
		return
	}

	payload, err := h.reportService.ExportCompanyAlerts(c.Request.Context(), companyID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCompanyID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
			return
		}
		log.Error().Err(err).Int64("company_id", companyID).Msg("failed to export low stock alerts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	filename := fmt.Sprintf("low_stock_alerts_company_%d_%s.csv", companyID, time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", payload)
}

func parseCompanyID(c *gin.Context) (int64, bool) {
	companyID, err := strconv.ParseInt(c.Param("company_id"), 10, 64)
	if err != nil || companyID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return 0, false
	}
	return companyID, true
}
