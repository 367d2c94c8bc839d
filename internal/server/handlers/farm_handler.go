// Package handlers adapts the services to Gin HTTP endpoints.
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hamrofarm/kukhura/internal/domain/models"
	"github.com/hamrofarm/kukhura/internal/repository"
	"github.com/hamrofarm/kukhura/internal/service/farm"
)

// FarmHandler handles flock record CRUD, settings and backup endpoints.
type FarmHandler struct {
	svc    *farm.Service
	logger *zap.Logger
}

// NewFarmHandler constructs the HTTP handler adapter.
func NewFarmHandler(svc *farm.Service, logger *zap.Logger) *FarmHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FarmHandler{svc: svc, logger: logger}
}

// respondError maps service and repository errors onto HTTP statuses.
func (h *FarmHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicateBillNumber):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "field": "billNo"})
	case errors.Is(err, repository.ErrMortalityExceedsStock):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, farm.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// ListFlocks returns every flock.
func (h *FarmHandler) ListFlocks(c *gin.Context) {
	flocks, err := h.svc.ListFlocks(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flocks)
}

// CreateFlock creates a flock together with its vaccine schedule and, when
// chickRate is supplied, the initial chicks expense.
func (h *FarmHandler) CreateFlock(c *gin.Context) {
	var in farm.NewFlockInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	flock, err := h.svc.CreateFlock(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flock)
}

// UpdateFlock replaces a flock record.
func (h *FarmHandler) UpdateFlock(c *gin.Context) {
	var flock models.Flock
	if err := c.ShouldBindJSON(&flock); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	flock.ID = c.Param("id")
	if err := h.svc.UpdateFlock(c.Request.Context(), flock); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flock)
}

// DeleteFlock removes a flock and everything recorded against it.
func (h *FarmHandler) DeleteFlock(c *gin.Context) {
	if err := h.svc.DeleteFlock(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// FlockSummary returns the derived dashboard figures for one flock.
func (h *FarmHandler) FlockSummary(c *gin.Context) {
	summary, err := h.svc.Summarize(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListFeed returns feed purchases, filtered by ?flockId= when present.
func (h *FarmHandler) ListFeed(c *gin.Context) {
	feed, err := h.svc.ListFeed(c.Request.Context(), c.Query("flockId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// AddFeed records a feed purchase.
func (h *FarmHandler) AddFeed(c *gin.Context) {
	var feed models.Feed
	if err := c.ShouldBindJSON(&feed); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.AddFeed(c.Request.Context(), &feed); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, feed)
}

// UpdateFeed replaces a feed purchase.
func (h *FarmHandler) UpdateFeed(c *gin.Context) {
	var feed models.Feed
	if err := c.ShouldBindJSON(&feed); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	feed.ID = c.Param("id")
	if err := h.svc.UpdateFeed(c.Request.Context(), feed); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// DeleteFeed removes a feed purchase.
func (h *FarmHandler) DeleteFeed(c *gin.Context) {
	if err := h.svc.DeleteFeed(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMedicine returns medicine purchases.
func (h *FarmHandler) ListMedicine(c *gin.Context) {
	records, err := h.svc.ListMedicine(c.Request.Context(), c.Query("flockId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// AddMedicine records a medicine purchase.
func (h *FarmHandler) AddMedicine(c *gin.Context) {
	var m models.Medicine
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.AddMedicine(c.Request.Context(), &m); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// DeleteMedicine removes a medicine purchase.
func (h *FarmHandler) DeleteMedicine(c *gin.Context) {
	if err := h.svc.DeleteMedicine(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListExpenses returns expenses.
func (h *FarmHandler) ListExpenses(c *gin.Context) {
	records, err := h.svc.ListExpenses(c.Request.Context(), c.Query("flockId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// AddExpense records an expense.
func (h *FarmHandler) AddExpense(c *gin.Context) {
	var e models.Expense
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.AddExpense(c.Request.Context(), &e); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// DeleteExpense removes an expense.
func (h *FarmHandler) DeleteExpense(c *gin.Context) {
	if err := h.svc.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMortality returns mortality records.
func (h *FarmHandler) ListMortality(c *gin.Context) {
	records, err := h.svc.ListMortality(c.Request.Context(), c.Query("flockId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// AddMortality records bird deaths; counts beyond the flock's remaining
// stock are rejected with 422.
func (h *FarmHandler) AddMortality(c *gin.Context) {
	var m models.Mortality
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.AddMortality(c.Request.Context(), &m); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// DeleteMortality removes a mortality record.
func (h *FarmHandler) DeleteMortality(c *gin.Context) {
	if err := h.svc.DeleteMortality(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSales returns sales.
func (h *FarmHandler) ListSales(c *gin.Context) {
	records, err := h.svc.ListSales(c.Request.Context(), c.Query("flockId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// AddSale records a sale.
func (h *FarmHandler) AddSale(c *gin.Context) {
	var sale models.Sale
	if err := c.ShouldBindJSON(&sale); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.AddSale(c.Request.Context(), &sale); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// DeleteSale removes a sale.
func (h *FarmHandler) DeleteSale(c *gin.Context) {
	if err := h.svc.DeleteSale(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListGallery returns photo log entries.
func (h *FarmHandler) ListGallery(c *gin.Context) {
	items, err := h.svc.ListGallery(c.Request.Context(), c.Query("flockId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddGalleryItem records a photo log entry.
func (h *FarmHandler) AddGalleryItem(c *gin.Context) {
	var item models.GalleryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.AddGalleryItem(c.Request.Context(), &item); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// DeleteGalleryItem removes a photo log entry.
func (h *FarmHandler) DeleteGalleryItem(c *gin.Context) {
	if err := h.svc.DeleteGalleryItem(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListVaccines returns vaccine schedule entries.
func (h *FarmHandler) ListVaccines(c *gin.Context) {
	vaccines, err := h.svc.ListVaccines(c.Request.Context(), c.Query("flockId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vaccines)
}

// UpdateVaccine updates a vaccine schedule entry. The scheduled date was
// fixed when the flock was created and is never recomputed here.
func (h *FarmHandler) UpdateVaccine(c *gin.Context) {
	var v models.Vaccine
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	v.ID = c.Param("id")
	if err := h.svc.UpdateVaccine(c.Request.Context(), v); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// GetSettings returns the settings singleton.
func (h *FarmHandler) GetSettings(c *gin.Context) {
	settings, err := h.svc.GetSettings(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveSettings replaces the settings singleton.
func (h *FarmHandler) SaveSettings(c *gin.Context) {
	var settings models.AppSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.SaveSettings(c.Request.Context(), settings); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// DownloadBackup streams the full snapshot as a JSON attachment.
func (h *FarmHandler) DownloadBackup(c *gin.Context) {
	data, err := h.svc.ExportSnapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="kukhura-backup.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Restore replaces every collection from an uploaded snapshot. A payload
// that fails to parse leaves the database untouched.
func (h *FarmHandler) Restore(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read request body"})
		return
	}
	if err := h.svc.ImportSnapshot(c.Request.Context(), data); err != nil {
		if errors.Is(err, farm.ErrInvalidSnapshot) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "restore failed, no changes made"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "restored"})
}
