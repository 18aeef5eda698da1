package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	billingapp "github.com/rentworks/backend/internal/application/billing"
)

// ReportHandler handles GST report and sweep API endpoints
type ReportHandler struct {
	BaseHandler
	exportService  *billingapp.ExportService
	overdueService *billingapp.OverdueService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(exportService *billingapp.ExportService, overdueService *billingapp.OverdueService) *ReportHandler {
	return &ReportHandler{
		exportService:  exportService,
		overdueService: overdueService,
	}
}

// GSTReportQuery holds query parameters for the GST report
type GSTReportQuery struct {
	FromDate string `form:"from_date" binding:"required,datetime=2006-01-02"`
	ToDate   string `form:"to_date" binding:"required,datetime=2006-01-02"`
}

// GSTReport handles GET /billing/reports/gst
func (h *ReportHandler) GSTReport(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query GSTReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fromDate, _ := time.Parse(dateLayout, query.FromDate)
	toDate, _ := time.Parse(dateLayout, query.ToDate)
	if toDate.Before(fromDate) {
		h.BadRequest(c, "to_date must not be before from_date")
		return
	}

	rows, err := h.exportService.BuildGSTReport(c.Request.Context(), billingapp.GSTReportRequest{
		TenantID: tenantID,
		FromDate: fromDate,
		ToDate:   toDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// SweepRequest optionally overrides the date the sweep compares against
type SweepRequest struct {
	AsOf string `json:"as_of" binding:"omitempty,datetime=2006-01-02"`
}

// Sweep handles POST /billing/sweep. The daily trigger covers normal
// operation; this endpoint exists for backfills and operational recovery.
func (h *ReportHandler) Sweep(c *gin.Context) {
	var req SweepRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	asOf := time.Now()
	if req.AsOf != "" {
		asOf, _ = time.Parse(dateLayout, req.AsOf)
	}

	result, err := h.overdueService.Sweep(c.Request.Context(), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers report and sweep routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	billing := rg.Group("/billing")
	{
		billing.GET("/reports/gst", h.GSTReport)
		billing.POST("/sweep", h.Sweep)
	}
}
