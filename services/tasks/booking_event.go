package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"interviewsched/models"
)

const TypeBookingEvent = "booking:event"

// NewBookingEventTask wraps a committed scheduling event for the worker queue.
func NewBookingEventTask(evt models.BookingEvent) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(evt)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingEvent, b)
	opts := []asynq.Option{asynq.MaxRetry(3)}

	return task, opts, nil
}

func ParseBookingEventTask(task *asynq.Task) (models.BookingEvent, error) {
	var evt models.BookingEvent
	if task.Type() != TypeBookingEvent {
		return evt, fmt.Errorf("unexpected task type %q", task.Type())
	}
	if err := json.Unmarshal(task.Payload(), &evt); err != nil {
		return evt, fmt.Errorf("invalid booking event payload: %w", err)
	}
	return evt, nil
}
