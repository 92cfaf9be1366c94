package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vgc-platform/admin-api/internal/clipboard"
	"github.com/vgc-platform/admin-api/internal/config"
	"github.com/vgc-platform/admin-api/internal/email"
	"github.com/vgc-platform/admin-api/internal/handler"
	adHandler "github.com/vgc-platform/admin-api/internal/handler/ad"
	authHandler "github.com/vgc-platform/admin-api/internal/handler/auth"
	businessHandler "github.com/vgc-platform/admin-api/internal/handler/business"
	jobHandler "github.com/vgc-platform/admin-api/internal/handler/job"
	navigationHandler "github.com/vgc-platform/admin-api/internal/handler/navigation"
	refundHandler "github.com/vgc-platform/admin-api/internal/handler/refund"
	"github.com/vgc-platform/admin-api/internal/middleware"
	"github.com/vgc-platform/admin-api/internal/repository/postgres"
	"github.com/vgc-platform/admin-api/internal/router"
	adService "github.com/vgc-platform/admin-api/internal/service/ad"
	authService "github.com/vgc-platform/admin-api/internal/service/auth"
	businessService "github.com/vgc-platform/admin-api/internal/service/business"
	jobService "github.com/vgc-platform/admin-api/internal/service/job"
	refundService "github.com/vgc-platform/admin-api/internal/service/refund"
	"github.com/vgc-platform/admin-api/pkg/auth"
	"github.com/vgc-platform/admin-api/pkg/logger"
	redisbroker "github.com/vgc-platform/admin-api/pkg/messaging/redis"
	"github.com/vgc-platform/admin-api/pkg/metrics"
	"github.com/vgc-platform/admin-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(&logger.Config{
		Level:  cfg.Logger.Level,
		Pretty: cfg.Logger.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	refundRepo := postgres.NewRefundRepository(db)
	jobRepo := postgres.NewAppliedJobRepository(db)
	businessRepo := postgres.NewBusinessRepository(db)
	adRepo := postgres.NewAdRepository(db)
	userRepo := postgres.NewUserRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Mail is optional; without SMTP config decisions are still processed,
	// just not announced.
	var emailSvc email.Service = email.NoopService{}
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewService(cfg.SMTP)
	}

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})

	// Services
	refundSvc := refundService.NewService(refundRepo, emailSvc, appLogger)
	jobSvc := jobService.NewService(jobRepo)
	businessSvc := businessService.NewService(businessRepo)
	adSvc := adService.NewService(adRepo, outboxRepo)
	authSvc := authService.NewService(userRepo, jwtSvc)

	// Each form surface owns its clipboard slots.
	refundClipboard := clipboard.NewStore()
	adClipboard := clipboard.NewStore()

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Handlers
	h := handler.NewHandler()
	authH := authHandler.NewHandler(authSvc)
	navH := navigationHandler.NewHandler()
	refundH := refundHandler.NewHandler(refundSvc, refundClipboard)
	jobH := jobHandler.NewHandler(jobSvc)
	businessH := businessHandler.NewHandler(businessSvc)
	adH := adHandler.NewHandler(adSvc, adClipboard)

	r := router.NewRouter(
		authMiddleware,
		authH,
		navH,
		refundH,
		jobH,
		businessH,
		adH,
		h,
		router.RouterConfig{
			RateLimit:     cfg.RateLimit.RPS,
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "vgc_admin",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	broker, err := redisbroker.NewBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	m := metrics.New("vgc_admin")

	processorCtx, stopProcessor := context.WithCancel(context.Background())
	defer stopProcessor()

	outboxProcessor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{}, appLogger, m)
	go outboxProcessor.Start(processorCtx)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	stopProcessor()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
