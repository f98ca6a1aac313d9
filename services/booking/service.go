package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"interviewsched/models"
	"interviewsched/services/notification"
	"interviewsched/services/ratelimit"
	"interviewsched/services/scheduling"
)

// DefaultBookingService rate limits coordinator bookings in front of the
// scheduling store and forwards committed events to the notifier.
type DefaultBookingService struct {
	Store    *scheduling.Store
	Limiter  ratelimit.Limiter
	Notifier notification.Notifier
	logger   *zap.Logger
}

func NewDefaultBookingService(
	store *scheduling.Store,
	limiter ratelimit.Limiter,
	notifier notification.Notifier,
	logger *zap.Logger,
) (*DefaultBookingService, error) {
	if store == nil || limiter == nil {
		return nil, fmt.Errorf("booking service initialization error: store or limiter is nil")
	}
	if notifier == nil {
		notifier = notification.NoopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &DefaultBookingService{
		Store:    store,
		Limiter:  limiter,
		Notifier: notifier,
		logger:   logger,
	}
	store.Subscribe(svc.publish)
	return svc, nil
}

// publish runs after the store has released its lock. Delivery failures
// never undo a committed mutation.
func (s *DefaultBookingService) publish(evt models.BookingEvent) {
	if err := s.Notifier.Notify(context.Background(), evt); err != nil {
		s.logger.Error("Failed to publish booking event",
			zap.String("type", string(evt.Type)),
			zap.String("slotId", evt.SlotID),
			zap.String("bookingId", evt.BookingID),
			zap.Error(err))
	}
}

func (s *DefaultBookingService) CreateSlot(_ context.Context, in models.CreateSlotInput) (models.Slot, error) {
	return s.Store.CreateSlot(in)
}

func (s *DefaultBookingService) BookSlot(ctx context.Context, in models.BookSlotInput) (models.Booking, error) {
	if err := s.Limiter.Apply(ctx, in.CoordinatorID); err != nil {
		s.logRejected("BookSlot", in.CoordinatorID, err)
		return models.Booking{}, err
	}
	return s.Store.BookSlot(in)
}

func (s *DefaultBookingService) RescheduleBooking(ctx context.Context, in models.RescheduleInput) (models.Booking, error) {
	if err := s.Limiter.Apply(ctx, in.CoordinatorID); err != nil {
		s.logRejected("RescheduleBooking", in.CoordinatorID, err)
		return models.Booking{}, err
	}
	return s.Store.RescheduleBooking(in)
}

// CancelBooking is deliberately not rate limited.
func (s *DefaultBookingService) CancelBooking(_ context.Context, bookingID string) (models.Booking, error) {
	return s.Store.CancelBooking(bookingID)
}

func (s *DefaultBookingService) ListSlots(filters models.SlotFilters) []models.Slot {
	return s.Store.ListSlots(filters)
}

func (s *DefaultBookingService) ListCalendar(interviewerID string, from, to *time.Time) []models.CalendarEntry {
	return s.Store.ListCalendar(interviewerID, from, to)
}

func (s *DefaultBookingService) ListPeople() models.People {
	return s.Store.ListPeople()
}

func (s *DefaultBookingService) Reset() {
	s.Store.Reset()
}

func (s *DefaultBookingService) logRejected(op, coordinatorID string, err error) {
	if models.HasCode(err, models.CodeRateLimited) {
		s.logger.Warn(op+": coordinator rate limited", zap.String("coordinatorId", coordinatorID))
		return
	}
	s.logger.Error(op+": rate limiter failed", zap.String("coordinatorId", coordinatorID), zap.Error(err))
}
