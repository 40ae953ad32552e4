package handler

import (
	"merchant-pulse/internal/adapter/http/dto"
	"merchant-pulse/internal/core/domain"
	"merchant-pulse/internal/core/ports"
	"merchant-pulse/pkg/apperror"
	"merchant-pulse/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the analytics bundle and transaction endpoints.
type DashboardHandler struct {
	dashboardSvc ports.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardSvc ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// GetTransactionData handles GET /api/v1/dashboard.
func (h *DashboardHandler) GetTransactionData(c *gin.Context) {
	var q dto.DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	data, err := h.dashboardSvc.GetTransactionData(c.Request.Context(), domain.TimeRange(q.TimeRange).OrDefault(), q.ToFilter())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, data)
}

// ListTransactions handles GET /api/v1/transactions.
func (h *DashboardHandler) ListTransactions(c *gin.Context) {
	var q dto.TransactionListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	page, err := h.dashboardSvc.GetTransactionHistory(c.Request.Context(), q.ToQuery())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// GetTransaction handles GET /api/v1/transactions/:id.
func (h *DashboardHandler) GetTransaction(c *gin.Context) {
	tx, err := h.dashboardSvc.GetTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if tx == nil {
		response.Error(c, apperror.ErrNotFound("Transaction"))
		return
	}
	response.OK(c, tx)
}
