package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/application/service"
	"github.com/sangkips/shop-pos/internal/domain/enum"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/response"
)

// ReportHandler handles sales report requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary returns the sales report of ?range=today|week|month|all
func (h *ReportHandler) Summary(c *gin.Context) {
	var req request.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	report, err := h.reportService.SalesReport(c.Request.Context(), enum.ReportRange(req.Range))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales report retrieved successfully", report)
}

// Export downloads the sales report of a range as an xlsx workbook
func (h *ReportHandler) Export(c *gin.Context) {
	var req request.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	rng := enum.ReportRange(req.Range)
	data, err := h.reportService.ExportSalesReport(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	if rng == "" {
		rng = enum.ReportRangeToday
	}
	response.Attachment(c, "sales-"+rng.String()+".xlsx", xlsxContentType, data)
}
