package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"incidentapi/docs"
	"incidentapi/internal/config"
	"incidentapi/internal/database"
	"incidentapi/internal/database/migration"
	"incidentapi/internal/events"
	handlers "incidentapi/internal/http/handler"
	"incidentapi/internal/http/middleware"
	"incidentapi/internal/logging"
	"incidentapi/internal/nomis"
	"incidentapi/internal/otel"
	"incidentapi/internal/repository/postgres"
	"incidentapi/internal/service"
	"incidentapi/internal/storage"
)

// @title Incident Reporting API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.NewStdout(logging.Location(cfg.Timezone))
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	// Optional collaborators stay untyped nil when unconfigured.
	var archive storage.Storage
	if cfg.MinIO.Endpoint != "" {
		archive, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatal("failed to initialize object storage", zap.Error(err))
		}
	}

	var fetcher service.IncidentFetcher
	if cfg.Nomis.BaseURL != "" {
		client, err := nomis.NewClient(cfg.Nomis)
		if err != nil {
			log.Fatal("failed to initialize nomis client", zap.Error(err))
		}
		fetcher = client
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Redis.Addr != "" {
		rdb, err := events.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()

		metrics, err := events.NewMetrics(prometheus.DefaultRegisterer)
		if err != nil {
			log.Fatal("failed to register event metrics", zap.Error(err))
		}
		publisher = events.NewRedisPublisher(rdb, cfg.Redis.Channel, log, metrics)
	}

	repo := postgres.NewReportPostgres(db)
	reportSvc := service.NewReportService(repo, publisher, log)
	syncSvc := service.NewSyncService(repo, fetcher, archive, publisher, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register http metrics", zap.Error(err))
	}

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMW.Handler())
	app.Use(middleware.Auth(cfg.AuthHeader))

	handlers.RegisterRoutes(app, db, reportSvc, syncSvc)
	handlers.RegisterMetrics(app, prometheus.DefaultGatherer)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("failed to shut down server", zap.Error(err))
	}

	tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(tctx); err != nil {
		log.Error("failed to shut down tracing", zap.Error(err))
	}
}
