package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"talentdesk/internal/app"
	"talentdesk/internal/config"
	"talentdesk/internal/database"
	"talentdesk/internal/domain/application"
	"talentdesk/internal/domain/candidate"
	"talentdesk/internal/domain/job"
	"talentdesk/internal/email"
	apphttp "talentdesk/internal/http"
	"talentdesk/internal/http/handlers"
	"talentdesk/internal/http/metrics"
	httpmw "talentdesk/internal/http/middleware"
	"talentdesk/internal/logging"
	"talentdesk/internal/pipeline"
	memstore "talentdesk/internal/repository/memory"
	pgstore "talentdesk/internal/repository/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env file not found, using environment variables")
	}
	cfg := config.Load()

	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	policy := pipeline.DefaultPolicy()
	if cfg.PolicyFile != "" {
		loaded, err := pipeline.LoadPolicyFile(cfg.PolicyFile)
		if err != nil {
			logger.Error("policy file load failed", slog.String("error", err.Error()))
			return
		}
		policy = loaded
	}

	var (
		applications application.Repository
		jobs         job.Repository
		candidates   candidate.Repository
	)
	if cfg.PostgresDSN == "" {
		logger.Warn("DATABASE_URL missing, using in-memory stores")
		applications = memstore.NewApplicationStore()
		jobs = memstore.NewJobStore()
		candidates = memstore.NewCandidateStore()
	} else {
		db := database.NewPostgres(database.PostgresConfig{
			DSN:             cfg.PostgresDSN,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxIdle:     cfg.DBConnMaxIdle,
			ConnMaxLifetime: cfg.DBConnMaxLife,
		})
		defer db.Close()
		applications = pgstore.NewApplicationRepository(db)
		jobs = pgstore.NewJobRepository(db)
		candidates = pgstore.NewCandidateRepository(db)
	}

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("redis url parse failed", slog.String("error", err.Error()))
		} else {
			client := redis.NewClient(opts)
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			if err := client.Ping(pingCtx).Err(); err != nil {
				logger.Error("redis ping failed, falling back to in-process limiter", slog.String("error", err.Error()))
				_ = client.Close()
			} else {
				defer client.Close()
				limiter = httpmw.NewRedisLimiter(client)
			}
			cancel()
		}
	}

	collector := metrics.NewCollector()
	feed := pipeline.NewFeed(200)
	engine := pipeline.NewEngine(policy)
	mailer := email.NewService(email.NewLogDispatcher(logger))

	applicationService := app.NewApplicationService(applications, jobs, candidates, engine, feed, mailer, logger)
	jobService := app.NewJobService(jobs)
	candidateService := app.NewCandidateService(candidates)
	reportService := app.NewReportService(applications)

	sweeper := pipeline.NewSweeper(cfg.SweepInterval, func(ctx context.Context) (int, error) {
		rejected, err := applicationService.SweepAll(ctx)
		collector.AddAutoRejections(rejected)
		return rejected, err
	}, logger)
	go sweeper.Run(ctx)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		JobHandler:          handlers.NewJobHandler(jobService),
		CandidateHandler:    handlers.NewCandidateHandler(candidateService),
		ApplicationHandler:  handlers.NewApplicationHandler(applicationService, limiter),
		ReportHandler:       handlers.NewReportHandler(reportService),
		NotificationHandler: handlers.NewNotificationHandler(feed),
		MetricsHandler:      metrics.NewHandler(collector),
		Metrics:             collector,
		Logger:              logger,
		RequestTimeout:      cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("API started", slog.String("port", cfg.HTTPPort))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", slog.String("error", err.Error()))
	}
}
