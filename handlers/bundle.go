package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	HealthHandler gin.HandlerFunc
	PeopleHandler gin.HandlerFunc

	// Slot endpoints
	ListSlotsHandler  gin.HandlerFunc
	CreateSlotHandler gin.HandlerFunc

	// Booking endpoints
	BookSlotHandler      gin.HandlerFunc
	RescheduleHandler    gin.HandlerFunc
	CancelBookingHandler gin.HandlerFunc

	CalendarHandler gin.HandlerFunc
	ResetHandler    gin.HandlerFunc
}

// NewHandlerBundle wires every endpoint of the scheduling handler.
func NewHandlerBundle(h *SchedulingHandler) *HandlerBundle {
	return &HandlerBundle{
		HealthHandler:        h.HealthHandler,
		PeopleHandler:        h.ListPeopleHandler,
		ListSlotsHandler:     h.ListSlotsHandler,
		CreateSlotHandler:    h.CreateSlotHandler,
		BookSlotHandler:      h.BookSlotHandler,
		RescheduleHandler:    h.RescheduleHandler,
		CancelBookingHandler: h.CancelBookingHandler,
		CalendarHandler:      h.CalendarHandler,
		ResetHandler:         h.ResetHandler,
	}
}
