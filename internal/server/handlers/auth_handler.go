package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hamrofarm/kukhura/internal/domain/models"
	"github.com/hamrofarm/kukhura/internal/service/auth"
)

// AuthHandler handles PIN lock and cloud session endpoints.
type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

type pinRequest struct {
	Pin        string `json:"pin"`
	CurrentPin string `json:"currentPin"`
}

// SetPin configures the lock-screen PIN. When currentPin is supplied the
// call is a change and the current PIN must verify first.
func (h *AuthHandler) SetPin(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var err error
	if req.CurrentPin != "" {
		err = h.svc.ChangePin(c.Request.Context(), req.CurrentPin, req.Pin)
	} else {
		err = h.svc.SetupPin(c.Request.Context(), req.Pin)
	}
	switch {
	case errors.Is(err, auth.ErrWeakPin):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrWrongPin):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case err != nil:
		h.logger.Error("pin setup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// VerifyPin checks a PIN attempt against the stored hash.
func (h *AuthHandler) VerifyPin(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.svc.VerifyPin(c.Request.Context(), req.Pin)
	switch {
	case errors.Is(err, auth.ErrWrongPin), errors.Is(err, auth.ErrPinNotSet):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case err != nil:
		h.logger.Error("pin verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// GetSession returns the linked cloud account, or 404 when signed out.
func (h *AuthHandler) GetSession(c *gin.Context) {
	sess, err := h.svc.GetSession(c.Request.Context())
	if err != nil {
		h.logger.Error("session lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not signed in"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SaveSession links the installation to a cloud account.
func (h *AuthHandler) SaveSession(c *gin.Context) {
	var sess models.UserSession
	if err := c.ShouldBindJSON(&sess); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if sess.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}
	if err := h.svc.SaveSession(c.Request.Context(), sess); err != nil {
		h.logger.Error("session save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ClearSession signs the installation out.
func (h *AuthHandler) ClearSession(c *gin.Context) {
	if err := h.svc.ClearSession(c.Request.Context()); err != nil {
		h.logger.Error("session clear failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}
