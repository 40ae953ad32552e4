package handler

import (
	"fmt"
	"time"

	"merchant-pulse/internal/adapter/http/dto"
	"merchant-pulse/internal/core/domain"
	"merchant-pulse/internal/core/ports"
	"merchant-pulse/pkg/apperror"
	"merchant-pulse/pkg/response"

	"github.com/gin-gonic/gin"
)

// ExportHandler serves ledger exports as file downloads.
type ExportHandler struct {
	exportSvc ports.ExportService
	now       func() time.Time
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportSvc ports.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, now: time.Now}
}

// ExportTransactions handles GET /api/v1/export/transactions.
func (h *ExportHandler) ExportTransactions(c *gin.Context) {
	var q dto.TransactionExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	req := q.ToRequest()
	body, err := h.exportSvc.ExportTransactions(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, req.Format.ContentType(), h.filename("transactions", req.Format), body)
}

// ExportMerchants handles GET /api/v1/export/merchants.
func (h *ExportHandler) ExportMerchants(c *gin.Context) {
	var q dto.MerchantExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	req := q.ToRequest()
	body, err := h.exportSvc.ExportMerchants(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, req.Format.ContentType(), h.filename("merchants", req.Format), body)
}

// filename is "<kind>-export-<YYYY-MM-DD>.<ext>".
func (h *ExportHandler) filename(kind string, format domain.ExportFormat) string {
	return fmt.Sprintf("%s-export-%s.%s", kind, h.now().UTC().Format("2006-01-02"), format)
}
