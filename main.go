package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"interviewsched/config"
	"interviewsched/cron"
	"interviewsched/handlers"
	"interviewsched/middleware"
	"interviewsched/routes"
	"interviewsched/services/booking"
	"interviewsched/services/clock"
	"interviewsched/services/notification"
	"interviewsched/services/ratelimit"
	"interviewsched/services/scheduling"
	"interviewsched/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("main: failed to load config: %v", err)
	}
	logger, err := utils.InitializeLogger(cfg)
	if err != nil {
		log.Fatalf("main: failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	clk := clock.System{}
	store := scheduling.NewSeededStore(clk, clock.UUIDGenerator{}, logger.Named("store"))

	limiter, closeLimiter := newLimiter(cfg, clk, logger)
	defer closeLimiter()

	notifier, stopNotifier := newNotifier(cfg, logger)
	defer stopNotifier()

	bookingService, err := booking.NewDefaultBookingService(store, limiter, notifier, logger.Named("booking"))
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	schedulingHandler := handlers.NewSchedulingHandler(bookingService, clk, cfg.AllowReset)
	handlerBundle := handlers.NewHandlerBundle(schedulingHandler)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler(logger))
	router.Use(middleware.RequestLoggerMiddleware(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, cfg.CORSAllowOrigins)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// newLimiter builds the coordinator rate limiter for the configured backend.
// An unreachable Redis falls back to the in-memory limiter.
func newLimiter(cfg *config.Config, clk clock.Clock, logger *zap.Logger) (ratelimit.Limiter, func()) {
	if cfg.RateLimitBackend != config.BackendRedis {
		return ratelimit.NewMemoryLimiter(cfg.BookingRateLimit, cfg.BookingRateWindow, clk), func() {}
	}

	client := utils.NewRedisClient(cfg, cfg.RedisRateLimitDB)
	if err := utils.PingRedis(context.Background(), client, 3*time.Second); err != nil {
		logger.Warn("Redis unavailable, using in-memory rate limiter", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = client.Close()
		return ratelimit.NewMemoryLimiter(cfg.BookingRateLimit, cfg.BookingRateWindow, clk), func() {}
	}
	logger.Info("Using Redis rate limiter", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisRateLimitDB))
	return ratelimit.NewRedisLimiter(client, cfg.BookingRateLimit, cfg.BookingRateWindow, clk), func() { _ = client.Close() }
}

// newNotifier builds the booking event notifier and, for the asynq backend,
// the worker that drains the queue into the log.
func newNotifier(cfg *config.Config, logger *zap.Logger) (notification.Notifier, func()) {
	eventLogger := logger.Named("events")
	switch cfg.Notifier {
	case config.NotifierNone:
		return notification.NoopNotifier{}, func() {}
	case config.NotifierAsynq:
		client := asynq.NewClient(cron.RedisQueueOpt(cfg))
		n, err := notification.NewAsynqNotifier(client, eventLogger)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		worker := cron.StartBookingEventWorker(cfg, notification.NewLogNotifier(eventLogger), logger.Named("worker"))
		return n, func() {
			worker.Shutdown()
			_ = client.Close()
		}
	default:
		return notification.NewLogNotifier(eventLogger), func() {}
	}
}
