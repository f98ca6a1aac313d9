// Package scheduling owns interviewer slots and candidate bookings and enforces
// the overlap and weekly-day constraints on them.
package scheduling

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"interviewsched/models"
	"interviewsched/services/clock"
)

// Observer is called with each committed mutation, after the store lock is released.
type Observer func(models.BookingEvent)

// Store is the single writer for slots and bookings. Mutations hold the write
// lock across their whole check-then-write sequence; reads share the read
// lock and return copies.
type Store struct {
	mu    sync.RWMutex
	st    state
	clock clock.Clock
	ids   clock.IDGenerator

	logger    *zap.Logger
	observers []Observer
}

// NewStore returns an empty store. Call Reset to load the seed dataset.
func NewStore(clk clock.Clock, ids clock.IDGenerator, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{clock: clk, ids: ids, logger: logger}
}

// NewSeededStore returns a store already reset to the seed dataset.
func NewSeededStore(clk clock.Clock, ids clock.IDGenerator, logger *zap.Logger) *Store {
	s := NewStore(clk, ids, logger)
	s.Reset()
	return s
}

// Subscribe registers fn to receive committed mutations. Not safe to call
// concurrently with mutations; wire observers at startup.
func (s *Store) Subscribe(fn Observer) {
	s.observers = append(s.observers, fn)
}

func (s *Store) emit(ev models.BookingEvent) {
	for _, fn := range s.observers {
		fn(ev)
	}
}

// Reset replaces all state with the seed dataset anchored at the current time.
func (s *Store) Reset() {
	next := seedState(s.clock.Now().UTC())
	s.mu.Lock()
	s.st = next
	s.mu.Unlock()
	s.logger.Info("scheduling store reset to seed data",
		zap.Int("slots", len(next.slots)),
		zap.Int("bookings", len(next.bookings)))
}

func (s *Store) ListPeople() models.People {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.People{
		Interviewers: append([]models.Interviewer(nil), s.st.interviewers...),
		Coordinators: append([]models.Coordinator(nil), s.st.coordinators...),
		Candidates:   append([]models.Candidate(nil), s.st.candidates...),
	}
}

// ListSlots returns the slots matching every set filter, in creation order.
func (s *Store) ListSlots(f models.SlotFilters) []models.Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Slot, 0, len(s.st.slots))
	for _, slot := range s.st.slots {
		if f.Matches(slot) {
			out = append(out, slot)
		}
	}
	return out
}

func (s *Store) GetSlot(id string) (models.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.slotIndex(id)
	if i < 0 {
		return models.Slot{}, models.NewError(models.CodeNotFound, "Slot not found")
	}
	return s.st.slots[i], nil
}

func (s *Store) GetBooking(id string) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.bookingIndex(id)
	if i < 0 {
		return models.Booking{}, models.NewError(models.CodeNotFound, "Booking not found")
	}
	return s.st.bookings[i], nil
}

// Snapshot returns copies of the slot and booking collections.
func (s *Store) Snapshot() ([]models.Slot, []models.Booking) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Slot(nil), s.st.slots...), append([]models.Booking(nil), s.st.bookings...)
}

// CreateSlot validates and appends a new available slot. Overlap is checked
// before the weekly day limit.
func (s *Store) CreateSlot(in models.CreateSlotInput) (models.Slot, error) {
	start, errStart := parseTimestamp(in.StartTime)
	end, errEnd := parseTimestamp(in.EndTime)
	if errStart != nil || errEnd != nil {
		return models.Slot{}, models.NewError(models.CodeInvalidInput, "startTime and endTime must be valid ISO-8601 strings")
	}
	if !start.Before(end) {
		return models.Slot{}, models.NewError(models.CodeInvalidInput, "startTime must be before endTime")
	}

	s.mu.Lock()
	if DetectOverlap(s.st.slots, in.InterviewerID, start, end, "") {
		s.mu.Unlock()
		return models.Slot{}, models.NewError(models.CodeOverlap, "Slot overlaps with an existing time window")
	}
	if ExceedsWeeklyDayLimit(s.st.slots, in.InterviewerID, start) {
		s.mu.Unlock()
		return models.Slot{}, models.NewError(models.CodeTwoDayLimit, "Interviewer can only have availability on two days per week").
			WithDetails(map[string]any{"weekStart": WeekKey(start).Format(time.DateOnly)})
	}

	now := s.clock.Now().UTC()
	slot := models.Slot{
		ID:            s.ids.NewID(),
		InterviewerID: in.InterviewerID,
		StartTime:     start,
		EndTime:       end,
		Location:      in.Location,
		Status:        models.SlotAvailable,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.st.slots = append(s.st.slots, slot)
	s.mu.Unlock()

	s.logger.Debug("slot created",
		zap.String("slot_id", slot.ID),
		zap.String("interviewer_id", slot.InterviewerID),
		zap.Time("start", slot.StartTime))
	s.emit(models.BookingEvent{
		Type:          models.EventSlotCreated,
		SlotID:        slot.ID,
		InterviewerID: slot.InterviewerID,
		OccurredAt:    now,
	})
	return slot, nil
}

// BookSlot binds a candidate to an available slot and marks the slot booked.
func (s *Store) BookSlot(in models.BookSlotInput) (models.Booking, error) {
	s.mu.Lock()
	i := s.slotIndex(in.SlotID)
	if i < 0 {
		s.mu.Unlock()
		return models.Booking{}, models.NewError(models.CodeNotFound, "Slot not found")
	}
	if s.st.slots[i].Status != models.SlotAvailable {
		s.mu.Unlock()
		return models.Booking{}, models.NewError(models.CodeConflict, "Slot already booked")
	}

	now := s.clock.Now().UTC()
	booking := models.Booking{
		ID:            s.ids.NewID(),
		SlotID:        in.SlotID,
		CandidateID:   in.CandidateID,
		CoordinatorID: in.CoordinatorID,
		Status:        models.BookingBooked,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.st.bookings = append(s.st.bookings, booking)
	s.setSlotStatus(i, models.SlotBooked, now)
	interviewerID := s.st.slots[i].InterviewerID
	s.mu.Unlock()

	s.logger.Debug("slot booked",
		zap.String("booking_id", booking.ID),
		zap.String("slot_id", booking.SlotID),
		zap.String("coordinator_id", booking.CoordinatorID))
	s.emit(models.BookingEvent{
		Type:          models.EventBookingCreated,
		SlotID:        booking.SlotID,
		BookingID:     booking.ID,
		InterviewerID: interviewerID,
		CandidateID:   booking.CandidateID,
		CoordinatorID: booking.CoordinatorID,
		OccurredAt:    now,
	})
	return booking, nil
}

// RescheduleBooking moves a booking to another available slot. The new slot
// is booked and the previous slot, when it still exists, is released, all
// under one lock so readers never observe a half-applied move.
func (s *Store) RescheduleBooking(in models.RescheduleInput) (models.Booking, error) {
	s.mu.Lock()
	bi := s.bookingIndex(in.BookingID)
	if bi < 0 {
		s.mu.Unlock()
		return models.Booking{}, models.NewError(models.CodeNotFound, "Booking not found")
	}
	if s.st.bookings[bi].Status == models.BookingCancelled {
		s.mu.Unlock()
		return models.Booking{}, models.NewError(models.CodeConflict, "Cancelled bookings cannot be rescheduled")
	}
	ni := s.slotIndex(in.NewSlotID)
	if ni < 0 {
		s.mu.Unlock()
		return models.Booking{}, models.NewError(models.CodeNotFound, "New slot not found")
	}
	if s.st.slots[ni].Status != models.SlotAvailable {
		s.mu.Unlock()
		return models.Booking{}, models.NewError(models.CodeConflict, "Target slot is not available")
	}

	now := s.clock.Now().UTC()
	previousSlotID := s.st.bookings[bi].SlotID
	pi := s.slotIndex(previousSlotID)

	s.st.bookings[bi].SlotID = in.NewSlotID
	s.st.bookings[bi].UpdatedAt = now
	s.setSlotStatus(ni, models.SlotBooked, now)
	if pi >= 0 {
		s.setSlotStatus(pi, models.SlotAvailable, now)
	}
	booking := s.st.bookings[bi]
	interviewerID := s.st.slots[ni].InterviewerID
	s.mu.Unlock()

	if pi < 0 {
		s.logger.Warn("previous slot missing during reschedule",
			zap.String("booking_id", booking.ID),
			zap.String("previous_slot_id", previousSlotID))
	}
	s.logger.Debug("booking rescheduled",
		zap.String("booking_id", booking.ID),
		zap.String("from_slot_id", previousSlotID),
		zap.String("to_slot_id", booking.SlotID),
		zap.String("coordinator_id", in.CoordinatorID))
	s.emit(models.BookingEvent{
		Type:           models.EventBookingRescheduled,
		SlotID:         booking.SlotID,
		PreviousSlotID: previousSlotID,
		BookingID:      booking.ID,
		InterviewerID:  interviewerID,
		CandidateID:    booking.CandidateID,
		CoordinatorID:  in.CoordinatorID,
		OccurredAt:     now,
	})
	return booking, nil
}

// CancelBooking marks a booking cancelled and releases its slot. Cancelling an
// already cancelled booking returns it unchanged.
func (s *Store) CancelBooking(id string) (models.Booking, error) {
	s.mu.Lock()
	bi := s.bookingIndex(id)
	if bi < 0 {
		s.mu.Unlock()
		return models.Booking{}, models.NewError(models.CodeNotFound, "Booking not found")
	}
	if s.st.bookings[bi].Status == models.BookingCancelled {
		booking := s.st.bookings[bi]
		s.mu.Unlock()
		return booking, nil
	}

	now := s.clock.Now().UTC()
	s.st.bookings[bi].Status = models.BookingCancelled
	s.st.bookings[bi].UpdatedAt = now
	booking := s.st.bookings[bi]
	var interviewerID string
	if si := s.slotIndex(booking.SlotID); si >= 0 {
		s.setSlotStatus(si, models.SlotAvailable, now)
		interviewerID = s.st.slots[si].InterviewerID
	}
	s.mu.Unlock()

	s.logger.Debug("booking cancelled",
		zap.String("booking_id", booking.ID),
		zap.String("slot_id", booking.SlotID))
	s.emit(models.BookingEvent{
		Type:          models.EventBookingCancelled,
		SlotID:        booking.SlotID,
		BookingID:     booking.ID,
		InterviewerID: interviewerID,
		CandidateID:   booking.CandidateID,
		CoordinatorID: booking.CoordinatorID,
		OccurredAt:    now,
	})
	return booking, nil
}

// ListCalendar returns the active bookings on the interviewer's slots whose
// start falls within the optional inclusive [from, to] range.
func (s *Store) ListCalendar(interviewerID string, from, to *time.Time) []models.CalendarEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.CalendarEntry{}
	for _, b := range s.st.bookings {
		if b.Status != models.BookingBooked {
			continue
		}
		si := s.slotIndex(b.SlotID)
		if si < 0 {
			continue
		}
		slot := s.st.slots[si]
		if slot.InterviewerID != interviewerID || !models.InRange(slot.StartTime, from, to) {
			continue
		}
		out = append(out, models.CalendarEntry{
			Booking:   b,
			Slot:      slot,
			Candidate: s.findCandidate(b.CandidateID),
		})
	}
	return out
}

// setSlotStatus must be called with the write lock held.
func (s *Store) setSlotStatus(i int, status models.SlotStatus, now time.Time) {
	s.st.slots[i].Status = status
	s.st.slots[i].UpdatedAt = now
}

func (s *Store) slotIndex(id string) int {
	for i := range s.st.slots {
		if s.st.slots[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) bookingIndex(id string) int {
	for i := range s.st.bookings {
		if s.st.bookings[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) findCandidate(id string) *models.Candidate {
	for _, c := range s.st.candidates {
		if c.ID == id {
			cp := c
			return &cp
		}
	}
	return nil
}

// parseTimestamp accepts RFC 3339 with an explicit offset and normalises to UTC.
func parseTimestamp(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
