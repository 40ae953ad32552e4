package handler

import (
	"merchant-pulse/internal/adapter/http/dto"
	"merchant-pulse/internal/core/ports"
	"merchant-pulse/pkg/apperror"
	"merchant-pulse/pkg/response"

	"github.com/gin-gonic/gin"
)

// MerchantHandler handles merchant listing and detail endpoints.
type MerchantHandler struct {
	dashboardSvc ports.DashboardService
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(dashboardSvc ports.DashboardService) *MerchantHandler {
	return &MerchantHandler{dashboardSvc: dashboardSvc}
}

// ListMerchants handles GET /api/v1/merchants.
func (h *MerchantHandler) ListMerchants(c *gin.Context) {
	var q dto.MerchantListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	page, err := h.dashboardSvc.GetMerchants(c.Request.Context(), q.ToQuery())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// GetMerchant handles GET /api/v1/merchants/:id.
func (h *MerchantHandler) GetMerchant(c *gin.Context) {
	m, err := h.dashboardSvc.GetMerchantByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if m == nil {
		response.Error(c, apperror.ErrNotFound("Merchant"))
		return
	}
	response.OK(c, m)
}

// GetMerchantStats handles GET /api/v1/merchants/:id/stats.
func (h *MerchantHandler) GetMerchantStats(c *gin.Context) {
	stats, err := h.dashboardSvc.GetMerchantStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if stats == nil {
		response.Error(c, apperror.ErrNotFound("Merchant"))
		return
	}
	response.OK(c, stats)
}
