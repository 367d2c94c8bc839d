package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hamrofarm/kukhura/internal/repository"
	"github.com/hamrofarm/kukhura/internal/service/report"
)

// ReportHandler handles spreadsheet export endpoints.
type ReportHandler struct {
	svc    *report.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *report.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// ExportFlock appends a flock's ledger to the configured Google Sheet.
func (h *ReportHandler) ExportFlock(c *gin.Context) {
	if err := h.svc.ExportFlock(c.Request.Context(), c.Param("flockId")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("sheet export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "sheet export failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "exported"})
}
