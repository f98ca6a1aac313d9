package booking

import (
	"context"
	"time"

	"interviewsched/models"
)

// BookingService is what the HTTP layer calls. Role checks happen before it;
// payload shape is already validated.
type BookingService interface {
	CreateSlot(ctx context.Context, in models.CreateSlotInput) (models.Slot, error)
	BookSlot(ctx context.Context, in models.BookSlotInput) (models.Booking, error)
	RescheduleBooking(ctx context.Context, in models.RescheduleInput) (models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (models.Booking, error)

	ListSlots(filters models.SlotFilters) []models.Slot
	ListCalendar(interviewerID string, from, to *time.Time) []models.CalendarEntry
	ListPeople() models.People
	Reset()
}
