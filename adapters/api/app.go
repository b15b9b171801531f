// Package api serves the dashboard state transitions as a stateless JSON API.
package api

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"csvplot/app"
	"csvplot/internal"
	"csvplot/ports"
)

// App represents the JSON API application
type App struct {
	router     *chi.Mux
	service    *app.DashboardService
	dispatcher *app.Dispatcher
	rasterizer ports.ChartRasterizer
	logger     *internal.Logger
}

// Config holds API application configuration
type Config struct {
	Port           string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// NewApp creates the API around service
func NewApp(config Config, service *app.DashboardService, rasterizer ports.ChartRasterizer) *App {
	a := &App{
		router:     chi.NewRouter(),
		service:    service,
		dispatcher: app.NewDispatcher(service),
		rasterizer: rasterizer,
		logger:     internal.DefaultLogger.With("API"),
	}

	a.setupMiddleware(config)
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware(config Config) {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
	if config.RequestTimeout > 0 {
		a.router.Use(middleware.Timeout(config.RequestTimeout))
	}
	if config.MaxBodyBytes > 0 {
		a.router.Use(middleware.RequestSize(config.MaxBodyBytes))
	}
}

// setupRoutes configures the API routes
func (a *App) setupRoutes() {
	a.router.NotFound(a.handleNotFound)
	a.router.Get("/healthz", a.handleHealth)

	a.router.Route("/v1", func(r chi.Router) {
		r.Post("/upload", a.handleUpload)
		r.Post("/options", a.handleOptions)
		r.Post("/panels", a.handlePanels)
		r.Post("/panels/{key}/events", a.handlePanelEvent)
		r.Post("/chart", a.handleChart)
	})
}

// Handler exposes the router for tests and custom listeners
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server on addr
func (a *App) Start(addr string) error {
	log.Printf("Starting CSV plotting API on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
