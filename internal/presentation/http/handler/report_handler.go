package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salespoint-api/internal/application/service"
	"github.com/sangkips/salespoint-api/internal/presentation/http/dto/response"
)

// ReportHandler handles sales report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Daily returns the sales report for a single day
// @Summary Daily report
// @Description Sales summary, payment breakdown and top products for one day
// @Tags reports
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.APIResponse
// @Router /transactions/report/daily [get]
func (h *ReportHandler) Daily(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	report, err := h.reportService.GetDailyReport(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report retrieved successfully", report)
}

// Monthly returns the sales report for a calendar month
// @Summary Monthly report
// @Description Sales summary, payment breakdown, top products and per-day totals for one month
// @Tags reports
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} response.APIResponse
// @Router /transactions/report/monthly [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	report, err := h.reportService.GetMonthlyReport(c.Request.Context(), month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly report retrieved successfully", report)
}
