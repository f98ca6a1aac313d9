package models

import "time"

type BookingEventType string

const (
	EventSlotCreated        BookingEventType = "slot.created"
	EventBookingCreated     BookingEventType = "booking.created"
	EventBookingRescheduled BookingEventType = "booking.rescheduled"
	EventBookingCancelled   BookingEventType = "booking.cancelled"
)

// BookingEvent is published after a scheduling mutation has been committed.
type BookingEvent struct {
	Type           BookingEventType `json:"type"`
	SlotID         string           `json:"slotId"`
	PreviousSlotID string           `json:"previousSlotId,omitempty"` // reschedules only
	BookingID      string           `json:"bookingId,omitempty"`
	InterviewerID  string           `json:"interviewerId,omitempty"`
	CandidateID    string           `json:"candidateId,omitempty"`
	CoordinatorID  string           `json:"coordinatorId,omitempty"`
	OccurredAt     time.Time        `json:"occurredAt"`
}
