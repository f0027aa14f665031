package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopflow/internal/application/service"
	"github.com/sangkips/shopflow/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler handles dashboard and report HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
	reportService    *service.ReportService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, reportService *service.ReportService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		reportService:    reportService,
	}
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// SalesReport downloads the sales workbook
func (h *DashboardHandler) SalesReport(c *gin.Context) {
	data, err := h.reportService.SalesWorkbook(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := "sales_" + time.Now().UTC().Format("2006-01-02") + ".xlsx"
	response.Attachment(c, filename, xlsxContentType, data)
}
