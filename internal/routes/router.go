package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"skyward-va/concourse/internal/api"
	"skyward-va/concourse/internal/config"
	"skyward-va/concourse/internal/db"
	"skyward-va/concourse/internal/jobs"
	"skyward-va/concourse/internal/logging"
	"skyward-va/concourse/internal/metrics"
	"skyward-va/concourse/internal/middleware"
	"skyward-va/concourse/internal/workers"
)

func RegisterRoutes(cfg *config.Config, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Setup scheduled jobs (departed flight sweep every 5 minutes)
	if _, err := jobs.InitializeJobs(context.Background(), deps.Services.Flights); err != nil {
		panic("Failed to initialize jobs: " + err.Error())
	}

	workers.InitWorkers(
		context.Background(),
		deps.Services.Flights,
		deps.Services.Status,
		deps.Services.Cache,
	)

	RegisterAPIRoutes(r, metricsReg, deps)

	return r
}
