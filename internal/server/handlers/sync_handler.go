package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hamrofarm/kukhura/internal/service/sync"
	"github.com/hamrofarm/kukhura/pkg/clients/cloudsync"
)

// SyncHandler handles manual cloud backup endpoints.
type SyncHandler struct {
	svc    *sync.Service
	logger *zap.Logger
}

// NewSyncHandler constructs the HTTP handler adapter.
func NewSyncHandler(svc *sync.Service, logger *zap.Logger) *SyncHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncHandler{svc: svc, logger: logger}
}

func (h *SyncHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sync.ErrSyncDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, sync.ErrNotSignedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, cloudsync.ErrNoBackup):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("sync request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "cloud sync failed"})
	}
}

// Upload pushes the local snapshot to the cloud, replacing whatever the
// account held before.
func (h *SyncHandler) Upload(c *gin.Context) {
	if err := h.svc.Upload(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "uploaded"})
}

// Download pulls the cloud snapshot and replaces the local data wholesale.
func (h *SyncHandler) Download(c *gin.Context) {
	if err := h.svc.Download(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "downloaded"})
}
