package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"vividexpense-be/internal/cache"
	"vividexpense-be/internal/config"
	"vividexpense-be/internal/database"
	"vividexpense-be/internal/export"
	"vividexpense-be/internal/jwt"
	"vividexpense-be/internal/logging"
	"vividexpense-be/internal/metrics"
	"vividexpense-be/internal/repository"
	"vividexpense-be/internal/repository/memory"
	"vividexpense-be/internal/server"
	"vividexpense-be/internal/service"
	"vividexpense-be/internal/telemetry"

	"github.com/gin-gonic/gin"
)

const (
	serviceName     = "vividexpense-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: serviceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	// Initialize repositories
	var (
		userRepo    repository.UserRepository
		expenseRepo repository.ExpenseRepository
	)
	switch cfg.StorageBackend {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		userRepo = memory.NewUserStore()
		expenseRepo = memory.NewExpenseStore()
	default:
		db, err := database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close() // Close connection when program exits

		// Run database migrations
		if err := database.RunMigrations(ctx, db); err != nil {
			return err
		}
		userRepo = repository.NewUserRepository(db)
		expenseRepo = repository.NewExpenseRepository(db)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var guard *service.LoginGuard
	if cfg.RedisURL != "" {
		cacheClient, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("failed to connect to Redis, continuing without login throttling", "error", err)
		} else {
			defer cacheClient.Close()
			logger.Info("connected to Redis cache")
			guard = service.NewLoginGuard(cacheClient, cfg.LoginMaxAttempts, cfg.LoginLockout())
		}
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTTTL())

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService,
		service.WithBcryptCost(cfg.BcryptCost),
		service.WithLoginGuard(guard),
	)
	expenseService := service.NewExpenseService(expenseRepo)
	reportService := service.NewReportService(expenseRepo, export.NewRenderer(cfg.FrontendURL))

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(ctx, server.Deps{
		AuthService:    authService,
		ExpenseService: expenseService,
		ReportService:  reportService,
		JWTService:     jwtService,
		Metrics:        metrics.New(),
		Logger:         logger,
		RateLimits: server.RateLimits{
			RPS:       cfg.RateLimitRPS,
			Burst:     cfg.RateLimitBurst,
			AuthRPS:   cfg.RateLimitAuthRPS,
			AuthBurst: cfg.RateLimitAuthBurst,
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "addr", srv.Addr, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
