package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/MikaLeppala/uk-rail-departures/internal/api/http"
	"github.com/MikaLeppala/uk-rail-departures/internal/config"
	"github.com/MikaLeppala/uk-rail-departures/internal/geolocate"
	"github.com/MikaLeppala/uk-rail-departures/internal/grid"
	"github.com/MikaLeppala/uk-rail-departures/internal/rail"
	"github.com/MikaLeppala/uk-rail-departures/internal/rail/huxley"
	"github.com/MikaLeppala/uk-rail-departures/internal/stations"
	"github.com/MikaLeppala/uk-rail-departures/internal/store"
	"github.com/MikaLeppala/uk-rail-departures/internal/weather"
	"github.com/MikaLeppala/uk-rail-departures/internal/weather/geocode"
	"github.com/MikaLeppala/uk-rail-departures/internal/weather/openmeteo"
)

// londonLat/Lon anchor the weather view when the host cannot be located.
const (
	londonLat = 51.5072
	londonLon = -0.1276
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// File-backed layout store.
	layoutStore, err := store.NewFileStore(cfg.StateDir)
	if err != nil {
		log.Fatalf("failed to open state dir: %v", err)
	}

	directory := stations.NewDirectory()

	// Seed the grid: persisted layout wins, otherwise locate once and
	// pick nearby stations, otherwise fall back to the default grid.
	locator := geolocate.New(httpClient, cfg.GeolocateURL, cfg.LocateTimeout)
	seed := grid.Seed(context.Background(), layoutStore, directory, locator)
	gridMgr := grid.NewManager(layoutStore, seed.Layout)

	// Weather coordinate: explicit config wins, then the geolocated
	// point, then central London.
	lat, lon := londonLat, londonLon
	switch {
	case cfg.WeatherLat != nil && cfg.WeatherLon != nil:
		lat, lon = *cfg.WeatherLat, *cfg.WeatherLon
	case seed.Located:
		lat, lon = seed.Origin.Lat, seed.Origin.Lon
	}

	// Departure board pollers, one per grid cell.
	source := huxley.New(httpClient, cfg.DeparturesBaseURL)
	board := rail.NewBoard(source, cfg.DeparturePollInterval, cfg.MaxServices, cfg.HTTPTimeout)
	board.Reconcile(gridMgr.Snapshot())
	gridMgr.Subscribe(board.Reconcile)
	board.Start()
	defer board.Stop()

	// Weather poller with reverse geocoding.
	var reverse geocode.Reverse
	if cfg.GeocoderAPIKey != "" {
		reverse = geocode.NewGoogle(cfg.GeocoderAPIKey)
	} else {
		reverse = geocode.NewNominatim(httpClient, cfg.NominatimBaseURL)
	}
	weatherPoller := weather.NewPoller(openmeteo.New(httpClient, cfg.OpenMeteoBaseURL), reverse, lat, lon, cfg.WeatherPollInterval, cfg.HTTPTimeout)
	if err := weatherPoller.Start(); err != nil {
		log.Fatalf("failed to start weather poller: %v", err)
	}
	defer weatherPoller.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "uk-rail-departures",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "uk-rail-departures",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Grid:     gridMgr,
		Board:    board,
		Weather:  weatherPoller,
		Stations: directory,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
