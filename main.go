package main

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	_ "net/http/pprof"

	"csvplot/adapters/chart"
	"csvplot/adapters/decoder"
	"csvplot/app"
	"csvplot/internal"
	"csvplot/internal/config"
	"csvplot/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

//go:embed ui/templates ui/static
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger.SetLevel(appConfig.Logging.Level)
	gin.SetMode(appConfig.Server.GinMode)

	service := app.NewDashboardService(decoder.NewDecoder(nil, nil), appConfig.Upload.DuplicatePolicy)
	rasterizer := chart.NewPNGRasterizer(appConfig.Chart.Width, appConfig.Chart.Height)

	assets, err := fs.Sub(embeddedFiles, "ui")
	if err != nil {
		log.Fatalf("Failed to open embedded assets: %v", err)
	}

	server := ui.NewServer(assets)
	if err := server.Initialize(service, rasterizer, appConfig.Upload.MaxBytes); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("Performance profiling server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				log.Printf("pprof server failed: %v", err)
			}
		}()
	}

	log.Printf("Starting CSV plotting app on port %s (duplicate uploads: %s)", appConfig.Server.Port, service.Policy())
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
