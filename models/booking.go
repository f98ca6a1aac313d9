package models

import "time"

type BookingStatus string

const (
	BookingBooked    BookingStatus = "booked"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking binds a candidate to a slot. Cancelled bookings are kept for history.
type Booking struct {
	ID            string        `json:"id"`
	SlotID        string        `json:"slotId"` // changes on reschedule, identity does not
	CandidateID   string        `json:"candidateId"`
	CoordinatorID string        `json:"coordinatorId"` // coordinator who created the booking
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type BookSlotInput struct {
	SlotID        string `json:"slotId" binding:"required"`
	CandidateID   string `json:"candidateId" binding:"required"`
	CoordinatorID string `json:"coordinatorId" binding:"required"`
}

type RescheduleInput struct {
	BookingID     string `json:"bookingId" binding:"required"`
	NewSlotID     string `json:"newSlotId" binding:"required"`
	CoordinatorID string `json:"coordinatorId" binding:"required"`
}

// CalendarEntry is one row of an interviewer's calendar. Candidate is nil when
// the booking references a candidate missing from the directory.
type CalendarEntry struct {
	Booking   Booking    `json:"booking"`
	Slot      Slot       `json:"slot"`
	Candidate *Candidate `json:"candidate,omitempty"`
}
