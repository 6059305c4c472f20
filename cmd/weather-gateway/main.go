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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/weather-lookup/internal/api/http"
	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/scheduler"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory lookup log with configured retention.
	memStore := store.NewMemoryStore(cfg.LookupLogMaxHistory, cfg.LookupLogMaxAge)

	// Providers with resilience (backoff + circuit breaker); primary first.
	openWeather := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)
	weatherAPI := providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey)

	var provs []weather.Provider
	switch cfg.Upstream {
	case "weatherapi":
		provs = append(provs, weatherAPI)
		if cfg.OpenWeatherAPIKey != "" {
			provs = append(provs, openWeather)
		}
	default:
		provs = append(provs, openWeather)
		if cfg.WeatherAPIKey != "" {
			provs = append(provs, weatherAPI)
		}
	}

	service := weather.NewService(memStore, provs)

	// Scheduler that periodically prunes the lookup log.
	sched := scheduler.New(cfg.LookupLogSweepInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-gateway",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          20 * time.Second,
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
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path}?${queryParams} ${latency}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-gateway",
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Printf("INFO: weather-gateway listening on :%s (upstream %s)", cfg.Port, cfg.Upstream)
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
