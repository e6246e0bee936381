package httpserver

import (
	"context"
	"log"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/leademy-studio/shusha-rest/internal/domain"
	"github.com/leademy-studio/shusha-rest/internal/service/catalog"
)

// CatalogService serves the cached storefront menu.
type CatalogService interface {
	Menu(ctx context.Context) (*catalog.Menu, error)
	Ready() bool
}

// OrderService accepts submitted orders.
type OrderService interface {
	Accept(ctx context.Context, in domain.Order) (*domain.Order, error)
}

// ReservationService accepts table bookings.
type ReservationService interface {
	Accept(ctx context.Context, in domain.Reservation) (*domain.Reservation, error)
}

// Deps carries the services the router depends on.
type Deps struct {
	CatalogSvc     CatalogService
	OrderSvc       OrderService
	ReservationSvc ReservationService
}

// Options carries router configuration.
type Options struct {
	// StaticDir serves the storefront pages and assets when set.
	StaticDir string
	// AllowedOrigins restricts CORS; empty allows any origin.
	AllowedOrigins []string
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, deps Deps, opts Options) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(opts.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = opts.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.CatalogSvc))

	api := router.Group("/api")
	api.GET("/catalog", catalogHandler(deps.CatalogSvc))
	api.POST("/orders", ordersHandler(deps.OrderSvc))
	api.POST("/reservations", reservationsHandler(deps.ReservationSvc))

	if opts.StaticDir != "" {
		router.StaticFile("/", filepath.Join(opts.StaticDir, "index.html"))
		router.StaticFile("/catalog", filepath.Join(opts.StaticDir, "catalog.html"))
		router.Static("/assets", filepath.Join(opts.StaticDir, "assets"))
	}

	return router, nil
}
