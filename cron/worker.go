package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"interviewsched/config"
	"interviewsched/services/notification"
	"interviewsched/services/tasks"
	"interviewsched/utils"
)

// RedisQueueOpt is the asynq connection for the booking event queue.
func RedisQueueOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// BookingEventWorker consumes booking:event tasks and hands them to a
// downstream notifier.
type BookingEventWorker struct {
	srv    *asynq.Server
	cancel context.CancelFunc
	logger *zap.Logger
}

// StartBookingEventWorker runs the async worker in background.
func StartBookingEventWorker(cfg *config.Config, sink notification.Notifier, logger *zap.Logger) *BookingEventWorker {
	srv := asynq.NewServer(
		RedisQueueOpt(cfg),
		asynq.Config{
			Concurrency: cfg.WorkerConcurrency,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingEvent, handleBookingEventTask(sink, logger))

	ctx, cancel := context.WithCancel(context.Background())
	w := &BookingEventWorker{srv: srv, cancel: cancel, logger: logger}

	go monitorRedisConnection(ctx, cfg, logger)

	// Start async worker with retry logic
	go func() {
		logger.Info("[BookingEventWorker] Starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("[BookingEventWorker] Failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[BookingEventWorker] Max retry attempts reached, booking events will queue up unprocessed")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()

	return w
}

// Shutdown stops the worker and the Redis monitor.
func (w *BookingEventWorker) Shutdown() {
	w.cancel()
	w.srv.Shutdown()
	w.logger.Info("[BookingEventWorker] Stopped")
}

func handleBookingEventTask(sink notification.Notifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		evt, err := tasks.ParseBookingEventTask(task)
		if err != nil {
			logger.Error("[BookingEventHandler] Invalid payload", zap.Error(err))
			// Malformed payloads will never succeed; skip retries.
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		if err := sink.Notify(ctx, evt); err != nil {
			logger.Error("[BookingEventHandler] Failed to deliver event",
				zap.String("type", string(evt.Type)), zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	client := utils.NewRedisClient(cfg, cfg.RedisQueueDB)
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := utils.PingRedis(ctx, client, 2*time.Second); err != nil && ctx.Err() == nil {
				logger.Warn("[BookingEventWorker] Redis connection lost", zap.Error(err))
			}
		}
	}
}
