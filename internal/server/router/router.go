// Package router wires the Gin engine with routes and middlewares.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hamrofarm/kukhura/internal/server/handlers"
)

// Handlers bundles the handler adapters the router mounts. Report may be
// nil when no spreadsheet is configured; its routes are then absent.
type Handlers struct {
	Farm     *handlers.FarmHandler
	Auth     *handlers.AuthHandler
	Sync     *handlers.SyncHandler
	Calendar *handlers.CalendarHandler
	Report   *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.GET("/flocks", h.Farm.ListFlocks)
	api.POST("/flocks", h.Farm.CreateFlock)
	api.PUT("/flocks/:id", h.Farm.UpdateFlock)
	api.DELETE("/flocks/:id", h.Farm.DeleteFlock)
	api.GET("/flocks/:id/summary", h.Farm.FlockSummary)

	api.GET("/feed", h.Farm.ListFeed)
	api.POST("/feed", h.Farm.AddFeed)
	api.PUT("/feed/:id", h.Farm.UpdateFeed)
	api.DELETE("/feed/:id", h.Farm.DeleteFeed)

	api.GET("/medicine", h.Farm.ListMedicine)
	api.POST("/medicine", h.Farm.AddMedicine)
	api.DELETE("/medicine/:id", h.Farm.DeleteMedicine)

	api.GET("/expenses", h.Farm.ListExpenses)
	api.POST("/expenses", h.Farm.AddExpense)
	api.DELETE("/expenses/:id", h.Farm.DeleteExpense)

	api.GET("/mortality", h.Farm.ListMortality)
	api.POST("/mortality", h.Farm.AddMortality)
	api.DELETE("/mortality/:id", h.Farm.DeleteMortality)

	api.GET("/sales", h.Farm.ListSales)
	api.POST("/sales", h.Farm.AddSale)
	api.DELETE("/sales/:id", h.Farm.DeleteSale)

	api.GET("/gallery", h.Farm.ListGallery)
	api.POST("/gallery", h.Farm.AddGalleryItem)
	api.DELETE("/gallery/:id", h.Farm.DeleteGalleryItem)

	api.GET("/vaccines", h.Farm.ListVaccines)
	api.PUT("/vaccines/:id", h.Farm.UpdateVaccine)

	api.GET("/settings", h.Farm.GetSettings)
	api.PUT("/settings", h.Farm.SaveSettings)

	api.POST("/auth/pin", h.Auth.SetPin)
	api.POST("/auth/verify", h.Auth.VerifyPin)
	api.GET("/session", h.Auth.GetSession)
	api.PUT("/session", h.Auth.SaveSession)
	api.DELETE("/session", h.Auth.ClearSession)

	api.GET("/backup", h.Farm.DownloadBackup)
	api.POST("/restore", h.Farm.Restore)

	api.POST("/sync/upload", h.Sync.Upload)
	api.POST("/sync/download", h.Sync.Download)

	api.GET("/calendar/today", h.Calendar.Today)
	api.GET("/calendar/grid/:year/:month", h.Calendar.MonthGrid)

	if h.Report != nil {
		api.POST("/reports/sheets/:flockId", h.Report.ExportFlock)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
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
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
