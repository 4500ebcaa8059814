package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wzsamuels/budget-project/internal/export"
	"github.com/wzsamuels/budget-project/internal/services"
)

// ReportHandler serves the dashboard and its spreadsheet export.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetDashboard handles the dashboard report
// @Summary     Get dashboard
// @Description Year-to-date totals, the current month's cash flow and a 12-month overview that includes projected paychecks and upcoming recurring expenses
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       today query string false "Override today's date (YYYY-MM-DD)"
// @Success     200 {object} projection.Report "Dashboard report"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	today, err := parseToday(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.GetReport(userID, today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// ExportAnnualReport handles the workbook download
// @Summary     Export annual report
// @Description Download the dashboard for the year as an xlsx workbook
// @Tags        reports
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       today query string false "Override today's date (YYYY-MM-DD)"
// @Success     200 {file}   file           "Workbook"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/annual.xlsx [get]
func (h *ReportHandler) ExportAnnualReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	today, err := parseToday(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.ExportReport(userID, today, &buf); err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(today.Year)+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
