package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"csvplot/app"
	"csvplot/internal"
	"csvplot/ports"
	"csvplot/ui/middleware"
	"csvplot/ui/services"
	"csvplot/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

const pageTitle = "CSV Plotting App"

// Server represents the web server for the plotting dashboard
type Server struct {
	router        *gin.Engine
	templates     *template.Template
	assets        fs.FS
	intro         template.HTML
	renderService *services.RenderService

	service    *app.DashboardService
	dispatcher *app.Dispatcher
	rasterizer ports.ChartRasterizer

	maxUploadBytes int64
	logger         *internal.Logger
}

// NewServer creates a new web server instance. assets must contain the
// templates/ and static/ directories.
func NewServer(assets fs.FS) *Server {
	return &Server{
		router: gin.Default(),
		assets: assets,
		logger: internal.DefaultLogger.With("UI"),
	}
}

// Initialize sets up the server with dependencies
func (s *Server) Initialize(service *app.DashboardService, rasterizer ports.ChartRasterizer, maxUploadBytes int64) error {
	s.service = service
	s.dispatcher = app.NewDispatcher(service)
	s.rasterizer = rasterizer
	s.maxUploadBytes = maxUploadBytes

	if err := s.parseTemplates(); err != nil {
		return err
	}
	s.renderService = services.NewRenderService(s.templates)

	intro, err := fs.ReadFile(s.assets, fragments.IntroMarkdown)
	if err != nil {
		return fmt.Errorf("failed to read intro text: %w", err)
	}
	s.intro = renderMarkdown(intro)

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

func (s *Server) parseTemplates() error {
	templatesFS, err := fs.Sub(s.assets, "templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	files1, err := fs.Glob(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to glob root templates: %w", err)
	}
	files2, err := fs.Glob(templatesFS, "*/*.html")
	if err != nil {
		return fmt.Errorf("failed to glob nested templates: %w", err)
	}
	files := append(files1, files2...)
	s.logger.Debug("found %d template files: %v", len(files), files)

	s.templates = template.New("").Funcs(templateFuncs())
	for _, file := range files {
		content, err := fs.ReadFile(templatesFS, file)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", file, err)
		}
		if _, err := s.templates.New(file).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}

	for _, name := range fragments.GetAllTemplatePaths() {
		if s.templates.Lookup(name) == nil {
			return fmt.Errorf("template %s (%s) is missing", name, fragments.GetTemplateCategory(name))
		}
	}
	return nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	staticFS, err := fs.Sub(s.assets, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)
	s.router.NoRoute(s.handleNotFound)

	api := s.router.Group("/api", middleware.BodyLimit(s.maxUploadBytes))
	api.POST("/upload", s.handleUpload)
	api.POST("/files/options", s.handleFileOptions)
	api.POST("/panels", s.handlePanels)
	api.POST("/panels/event", s.handlePanelEvent)
	api.POST("/chart.png", s.handleChartPNG)
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting CSV plotting UI on http://%s", addr)
	return s.router.Run(addr)
}
