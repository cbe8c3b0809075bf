// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"negocio/internal/domain/catalogs/category"
	"negocio/internal/domain/catalogs/client"
	"negocio/internal/domain/catalogs/item"
	"negocio/internal/domain/catalogs/product"
	"negocio/internal/infrastructure/http/v1/handlers"
	"negocio/internal/infrastructure/http/v1/middleware"
	"negocio/pkg/logger"
)

// RouterConfig holds everything the API serves.
type RouterConfig struct {
	Logger *logger.Logger

	// DB is pinged by the readiness probe
	DB      handlers.Pinger
	Version string

	// JWTValidator, when nil, leaves the API open and reports anonymous
	JWTValidator middleware.JWTValidator

	Clients    *client.Service
	Categories *category.Service
	Products   *product.Service
	Items      *item.Service
	Refresher  handlers.PriceRefresher
	Invoices   handlers.InvoiceService
	Reports    handlers.ReportService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	router := gin.New()

	// Recovery sits inside ErrorHandler so a recovered panic is still rendered.
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())

	health := handlers.NewHealthHandler(cfg.DB, cfg.Version)
	router.GET("/health", health.Live)
	router.GET("/health/ready", health.Ready)

	api := router.Group("/api/v1")
	if cfg.JWTValidator != nil {
		api.Use(middleware.Auth(cfg.JWTValidator))
	}

	base := handlers.NewBaseHandler()
	registerCatalogRoutes(api, base, cfg)
	registerInvoiceRoutes(api, base, cfg)
	registerReportRoutes(api, base, cfg)

	return router
}

func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Clients != nil {
		RegisterCatalogRoutes(rg.Group("/clients"), handlers.NewClientHandler(base, cfg.Clients))
	}
	if cfg.Categories != nil {
		RegisterCatalogRoutes(rg.Group("/categories"), handlers.NewCategoryHandler(base, cfg.Categories))
	}
	if cfg.Products != nil {
		h := handlers.NewProductHandler(base, cfg.Products, cfg.Refresher)
		products := rg.Group("/products")
		if cfg.Refresher != nil {
			products.POST("/refresh-prices", h.RefreshPrices)
		}
		RegisterCatalogRoutes(products, h)
	}
	if cfg.Items != nil {
		h := handlers.NewItemHandler(base, cfg.Items)
		items := rg.Group("/items")
		items.POST("/receive", h.Receive)
		RegisterCatalogRoutes(items, h)
	}
}

func registerInvoiceRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Invoices == nil {
		return
	}
	h := handlers.NewInvoiceHandler(base, cfg.Invoices)
	invoices := rg.Group("/invoices")
	invoices.GET("", h.List)
	invoices.POST("", h.Create)
	invoices.GET("/:id", h.Get)
}

func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Reports == nil {
		return
	}
	h := handlers.NewReportsHandler(base, cfg.Reports)
	reports := rg.Group("/reports")
	reports.GET("", h.List)
	reports.POST("", h.Generate)
	reports.GET("/:id", h.Get)
	reports.DELETE("/:id", h.Delete)
}
