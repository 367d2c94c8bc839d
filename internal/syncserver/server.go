// Package syncserver is the self-hosted backup server: one snapshot
// document per user in MongoDB, replaced wholesale on every upload.
package syncserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hamrofarm/kukhura/internal/domain/models"
	"github.com/hamrofarm/kukhura/internal/repository/mongodb"
)

// Handler handles the backup API endpoints.
type Handler struct {
	repo   mongodb.BackupRepository
	logger *zap.Logger
}

// NewHandler constructs the HTTP handler adapter.
func NewHandler(repo mongodb.BackupRepository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// Put stores a user's backup, replacing any previous one. Last write wins;
// the server never merges snapshots from different devices.
func (h *Handler) Put(c *gin.Context) {
	var backup models.CloudBackup
	if err := c.ShouldBindJSON(&backup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid backup payload"})
		return
	}

	userID := c.Param("userID")
	if backup.UserID != "" && backup.UserID != userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id in path and payload disagree"})
		return
	}
	backup.UserID = userID
	if backup.UpdatedAt.IsZero() {
		backup.UpdatedAt = time.Now().UTC()
	}

	if err := h.repo.Upsert(c.Request.Context(), backup); err != nil {
		h.logger.Error("backup upsert failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store backup"})
		return
	}

	h.logger.Info("backup stored", zap.String("user_id", userID))
	c.JSON(http.StatusOK, gin.H{"status": "stored", "updatedAt": backup.UpdatedAt})
}

// Get returns a user's latest backup.
func (h *Handler) Get(c *gin.Context) {
	userID := c.Param("userID")

	backup, err := h.repo.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, mongodb.ErrBackupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no backup for user"})
			return
		}
		h.logger.Error("backup fetch failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch backup"})
		return
	}

	c.JSON(http.StatusOK, backup)
}

// NewRouter wires the Gin engine for the backup server.
func NewRouter(handler *Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLoggerMiddleware(logger))

	r.PUT("/v1/backups/:userID", handler.Put)
	r.GET("/v1/backups/:userID", handler.Get)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

func requestLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
