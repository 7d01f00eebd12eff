package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contabil/internal/config"
	"contabil/internal/database"
	"contabil/internal/database/migration"
	handlers "contabil/internal/http/handler"
	"contabil/internal/http/middleware"
	"contabil/internal/infosimples"
	"contabil/internal/otel"
	"contabil/internal/ratelimit"
	"contabil/internal/repository/postgres"
	"contabil/internal/service"
	"contabil/internal/storage"
)

func main() {
	cfg := config.Load()

	// Tracing is a no-op unless OTEL_EXPORTER_OTLP_ENDPOINT is configured.
	shutdownTracing, err := otel.Init(context.Background(), time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(context.Background(), db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMw, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	syncMetrics, err := service.NewSyncMetrics(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	userRepo := postgres.NewUserPostgres(db)
	clientRepo := postgres.NewClientPostgres(db)
	companyRepo := postgres.NewCompanyPostgres(db)
	periodRepo := postgres.NewPeriodPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	monthlyRepo := postgres.NewMonthlyServicePostgres(db)
	annualRepo := postgres.NewAnnualServicePostgres(db)
	irpfRepo := postgres.NewIrpfPostgres(db)

	limiter := ratelimit.NewSlidingWindow(cfg.Sync.RateLimit, time.Duration(cfg.Sync.RateWindowSec)*time.Second)
	defer limiter.Close()
	consulter := infosimples.NewClient(cfg.InfoSimples)

	svcs := handlers.Services{
		Auth:     service.NewAuthService(userRepo, cfg.BcryptCost),
		Client:   service.NewClientService(clientRepo),
		Company:  service.NewCompanyService(companyRepo, periodRepo),
		Sync:     service.NewSyncService(companyRepo, periodRepo, limiter, consulter, syncMetrics),
		Filing:   service.NewFilingService(monthlyRepo, annualRepo, irpfRepo),
		Document: service.NewDocumentService(objStore, docRepo, clientRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(promMw.Handler())
	app.Use(otelfiber.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, svcs)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
