package notification

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"interviewsched/models"
	"interviewsched/services/tasks"
)

// Notifier delivers booking lifecycle events to whoever needs to hear about them.
type Notifier interface {
	Notify(ctx context.Context, evt models.BookingEvent) error
}

// LogNotifier writes each event as a structured log line.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, evt models.BookingEvent) error {
	n.logger.Info("Booking event",
		zap.String("type", string(evt.Type)),
		zap.String("slotId", evt.SlotID),
		zap.String("previousSlotId", evt.PreviousSlotID),
		zap.String("bookingId", evt.BookingID),
		zap.String("interviewerId", evt.InterviewerID),
		zap.String("candidateId", evt.CandidateID),
		zap.String("coordinatorId", evt.CoordinatorID),
		zap.Time("occurredAt", evt.OccurredAt),
	)
	return nil
}

type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, models.BookingEvent) error { return nil }

// Enqueuer is the part of *asynq.Client the AsynqNotifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqNotifier hands events to the booking:event queue; the worker in cron
// picks them up.
type AsynqNotifier struct {
	client Enqueuer
	logger *zap.Logger
}

func NewAsynqNotifier(client Enqueuer, logger *zap.Logger) (*AsynqNotifier, error) {
	if client == nil {
		return nil, fmt.Errorf("notification service initialization error: asynq client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsynqNotifier{client: client, logger: logger}, nil
}

func (n *AsynqNotifier) Notify(ctx context.Context, evt models.BookingEvent) error {
	task, opts, err := tasks.NewBookingEventTask(evt)
	if err != nil {
		return fmt.Errorf("Notify: build task: %w", err)
	}
	info, err := n.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("Notify: enqueue %s: %w", evt.Type, err)
	}
	n.logger.Debug("Booking event enqueued",
		zap.String("type", string(evt.Type)),
		zap.String("taskId", info.ID),
		zap.String("queue", info.Queue),
	)
	return nil
}
