package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"mill-maintenance-backend/internal/model"
	"mill-maintenance-backend/internal/mw"
)

// RouterConfig holds the HTTP-level settings of the router.
type RouterConfig struct {
	CORSOrigins     []string
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
	AuthRequired    bool
}

// loginRate bounds credential guessing independently of the general limit.
const (
	loginRate  = rate.Limit(0.2)
	loginBurst = 5
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg RouterConfig, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		mw.Recovery(log),
		mw.RequestID(),
		mw.Logger(log),
		cors.New(corsConfig(cfg.CORSOrigins)),
		gzip.Gzip(gzip.DefaultCompression),
	)

	// Read-mostly lookups are cached and flushed whenever a write succeeds.
	responseCache := mw.NewResponseCache(cfg.CacheTTL,
		"/api/master-data",
		"/api/sheet-links",
		"/api/system/config",
		"/api/dashboard/summary",
	)

	api := r.Group("/api")
	api.Use(mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst))
	{
		api.GET("/health", h.Health)
		api.POST("/auth/login", mw.RateLimiter(loginRate, loginBurst), h.Login)
		api.GET("/auth/me", mw.Authenticate(h.auth), h.Me)
	}

	protected := api.Group("")
	if cfg.AuthRequired {
		protected.Use(mw.Authenticate(h.auth))
	}
	protected.Use(responseCache.Middleware())
	{
		for _, kind := range []model.LedgerKind{model.LedgerProduction, model.LedgerDispatch, model.LedgerStock} {
			path := "/" + string(kind)
			protected.GET(path, h.ListLedger(kind))
			protected.POST(path, h.CreateLedger(kind))
			protected.DELETE(path+"/:id", h.DeleteLedger(kind))
		}

		protected.GET("/wire-records", h.ListWires)
		protected.POST("/wire-records", h.CreateWire)
		protected.GET("/wire-records/:id", h.GetWire)
		protected.PUT("/wire-records/:id", h.UpdateWire)
		protected.DELETE("/wire-records/:id", h.DeleteWire)

		protected.GET("/equipment-records", h.ListEquipment)
		protected.POST("/equipment-records", h.CreateEquipment)
		protected.GET("/equipment-records/:id", h.GetEquipment)
		protected.PUT("/equipment-records/:id", h.UpdateEquipment)
		protected.DELETE("/equipment-records/:id", h.DeleteEquipment)

		protected.GET("/master-data", h.ListMasterData)
		protected.POST("/master-data", h.CreateMasterData)
		protected.PATCH("/master-data", h.PatchMasterData)
		protected.PATCH("/master-data/:id", h.PatchMasterData)
		protected.DELETE("/master-data", h.DeleteMasterData)
		protected.DELETE("/master-data/:id", h.DeleteMasterData)

		protected.GET("/sheet-links", h.ListSheetLinks)
		protected.POST("/sheet-links", h.CreateSheetLink)
		protected.DELETE("/sheet-links", h.DeleteSheetLink)
		protected.DELETE("/sheet-links/:id", h.DeleteSheetLink)

		protected.GET("/notifications", h.ListNotifications)
		protected.POST("/notifications", h.CreateNotification)
		protected.PATCH("/notifications", h.MarkNotificationsRead)

		protected.GET("/search", h.Search)

		protected.GET("/system/config", h.ListConfig)
		protected.POST("/system/config", h.UpsertConfig)
		protected.GET("/system/backup", h.Backup)
		protected.POST("/system/restore", h.Restore)

		protected.GET("/bulk-import/templates", h.ImportTemplates)
		protected.POST("/bulk-import/preview", h.PreviewImport)
		protected.POST("/bulk-import/preview/file", h.PreviewImportFile)
		protected.POST("/bulk-import", h.BulkImport)

		protected.GET("/export/:dataset", h.Export)
		protected.GET("/dashboard/summary", h.Summary)

		protected.GET("/push/vapid_public_key", h.GetVAPIDPublicKey)
		protected.GET("/push/subscriptions", h.GetSubscription)
		protected.PUT("/push/subscriptions", h.PutSubscription)
		protected.DELETE("/push/subscriptions", h.DeleteSubscription)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", mw.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", mw.RequestIDHeader},
		AllowCredentials: len(origins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
