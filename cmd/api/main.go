package main

import (
	"log"

	"csvplot/adapters/api"
	"csvplot/adapters/chart"
	"csvplot/adapters/decoder"
	"csvplot/app"
	"csvplot/internal"
	"csvplot/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger.SetLevel(appConfig.Logging.Level)

	service := app.NewDashboardService(decoder.NewDecoder(nil, nil), appConfig.Upload.DuplicatePolicy)
	rasterizer := chart.NewPNGRasterizer(appConfig.Chart.Width, appConfig.Chart.Height)

	server := api.NewApp(api.Config{
		Port:           appConfig.API.Port,
		RequestTimeout: appConfig.API.RequestTimeout,
		MaxBodyBytes:   appConfig.Upload.MaxBytes,
	}, service, rasterizer)

	log.Fatal(server.Start(":" + appConfig.API.Port))
}
