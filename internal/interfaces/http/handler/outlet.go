package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/rentworks/backend/internal/application/partner"
	"github.com/rentworks/backend/internal/domain/shared"
	"github.com/rentworks/backend/internal/interfaces/http/dto"
)

// OutletHandler handles outlet-related API endpoints
type OutletHandler struct {
	BaseHandler
	outletService *partnerapp.OutletService
}

// NewOutletHandler creates a new OutletHandler
func NewOutletHandler(outletService *partnerapp.OutletService) *OutletHandler {
	return &OutletHandler{outletService: outletService}
}

// Create handles POST /partner/outlets
func (h *OutletHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req partnerapp.CreateOutletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	outlet, err := h.outletService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, outlet)
}

// Get handles GET /partner/outlets/:id
func (h *OutletHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid outlet ID")
		return
	}

	outlet, err := h.outletService.GetByID(c.Request.Context(), tenantID, uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, outlet)
}

// List handles GET /partner/outlets
func (h *OutletHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.ApplyDefaults()

	outlets, err := h.outletService.List(c.Request.Context(), tenantID, shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, outlets)
}

// Close handles POST /partner/outlets/:id/close
func (h *OutletHandler) Close(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid outlet ID")
		return
	}

	outlet, err := h.outletService.Close(c.Request.Context(), tenantID, uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, outlet)
}

// RegisterRoutes registers outlet routes
func (h *OutletHandler) RegisterRoutes(rg *gin.RouterGroup) {
	outlets := rg.Group("/partner/outlets")
	{
		outlets.POST("", h.Create)
		outlets.GET("", h.List)
		outlets.GET("/:id", h.Get)
		outlets.POST("/:id/close", h.Close)
	}
}
