package models

import "time"

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
)

// Slot represents a time window an interviewer has offered for interviews.
type Slot struct {
	ID            string     `json:"id"`
	InterviewerID string     `json:"interviewerId"`
	StartTime     time.Time  `json:"startTime"` // UTC, inclusive
	EndTime       time.Time  `json:"endTime"`   // UTC, exclusive
	Location      string     `json:"location"`  // free text, e.g. "Zoom" or "Onsite - HQ"
	Status        SlotStatus `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CreateSlotInput carries the raw interviewer payload; timestamps are RFC 3339 strings.
type CreateSlotInput struct {
	InterviewerID string `json:"interviewerId" binding:"required"`
	StartTime     string `json:"startTime" binding:"required"`
	EndTime       string `json:"endTime" binding:"required"`
	Location      string `json:"location" binding:"required,min=1"`
}

// SlotFilters narrows ListSlots. Zero values mean "no filter"; all set filters must match.
type SlotFilters struct {
	InterviewerID string
	Status        SlotStatus
	From          *time.Time // slot start >= From
	To            *time.Time // slot start <= To
}

// Matches reports whether a slot satisfies every filter that is set.
func (f SlotFilters) Matches(s Slot) bool {
	if f.InterviewerID != "" && s.InterviewerID != f.InterviewerID {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	return InRange(s.StartTime, f.From, f.To)
}

// InRange reports whether t lies within the optional inclusive bounds.
func InRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
