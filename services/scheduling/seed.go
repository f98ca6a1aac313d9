package scheduling

import (
	"time"

	"interviewsched/models"
)

// state is the full set of collections owned by the Store. Reset swaps it whole.
type state struct {
	interviewers []models.Interviewer
	coordinators []models.Coordinator
	candidates   []models.Candidate
	slots        []models.Slot
	bookings     []models.Booking
}

// seedState builds the fixed demo dataset relative to now.
func seedState(now time.Time) state {
	day := 24 * time.Hour
	slot := func(id, interviewerID string, start time.Time, location string, status models.SlotStatus) models.Slot {
		return models.Slot{
			ID:            id,
			InterviewerID: interviewerID,
			StartTime:     start,
			EndTime:       start.Add(time.Hour),
			Location:      location,
			Status:        status,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}

	return state{
		interviewers: []models.Interviewer{
			{ID: "i-1", Name: "Amrita Singh"},
			{ID: "i-2", Name: "Leo Alvarez"},
			{ID: "i-3", Name: "Priya Patel"},
		},
		coordinators: []models.Coordinator{
			{ID: "c-1", Name: "Morgan Chen"},
			{ID: "c-2", Name: "Jamie Kim"},
		},
		candidates: []models.Candidate{
			{ID: "cand-1", Name: "Alex Rivers", Email: "alex@example.com"},
			{ID: "cand-2", Name: "Sofia Rossi", Email: "sofia@example.com"},
			{ID: "cand-3", Name: "Jordan Blake", Email: "jordan@example.com"},
		},
		slots: []models.Slot{
			slot("s-1", "i-1", now.Add(day), "Zoom", models.SlotAvailable),
			slot("s-2", "i-2", now.Add(2*day), "Onsite - HQ", models.SlotAvailable),
			slot("s-3", "i-1", now.Add(3*day+9*time.Hour), "Zoom", models.SlotBooked),
		},
		bookings: []models.Booking{
			{
				ID:            "b-1",
				SlotID:        "s-3",
				CandidateID:   "cand-1",
				CoordinatorID: "c-1",
				Status:        models.BookingBooked,
				CreatedAt:     now,
				UpdatedAt:     now,
			},
		},
	}
}
