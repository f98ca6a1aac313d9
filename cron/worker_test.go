package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"interviewsched/config"
	"interviewsched/models"
	"interviewsched/services/tasks"
)

type captureNotifier struct {
	got []models.BookingEvent
	err error
}

func (c *captureNotifier) Notify(_ context.Context, evt models.BookingEvent) error {
	c.got = append(c.got, evt)
	return c.err
}

func TestHandleBookingEventTaskDelivers(t *testing.T) {
	sink := &captureNotifier{}
	h := handleBookingEventTask(sink, zap.NewNop())

	task, _, err := tasks.NewBookingEventTask(models.BookingEvent{Type: models.EventBookingCancelled, BookingID: "b-1"})
	if err != nil {
		t.Fatalf("NewBookingEventTask: %v", err)
	}
	if err := h(context.Background(), task); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(sink.got) != 1 || sink.got[0].BookingID != "b-1" {
		t.Fatalf("event not delivered: %+v", sink.got)
	}
}

func TestHandleBookingEventTaskSkipsRetryOnBadPayload(t *testing.T) {
	h := handleBookingEventTask(&captureNotifier{}, zap.NewNop())
	err := h(context.Background(), asynq.NewTask(tasks.TypeBookingEvent, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestHandleBookingEventTaskReturnsDeliveryError(t *testing.T) {
	boom := errors.New("sink down")
	h := handleBookingEventTask(&captureNotifier{err: boom}, zap.NewNop())
	task, _, _ := tasks.NewBookingEventTask(models.BookingEvent{Type: models.EventSlotCreated})
	if err := h(context.Background(), task); !errors.Is(err, boom) {
		t.Fatalf("expected delivery error for retry, got %v", err)
	}
}

func TestRedisQueueOpt(t *testing.T) {
	opt := RedisQueueOpt(&config.Config{RedisAddr: "redis:6379", RedisPassword: "pw", RedisQueueDB: 3})
	if opt.Addr != "redis:6379" || opt.Password != "pw" || opt.DB != 3 {
		t.Fatalf("unexpected opts %+v", opt)
	}
}
