package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"interviewsched/models"
	"interviewsched/services/clock"
	"interviewsched/services/ratelimit"
	"interviewsched/services/scheduling"
)

var mondayMorning = time.Date(2026, time.October, 12, 8, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	events []models.BookingEvent
	err    error
}

func (r *recordingNotifier) Notify(_ context.Context, evt models.BookingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return r.err
}

func (r *recordingNotifier) types() []models.BookingEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.BookingEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type countingLimiter struct {
	calls []string
	err   error
}

func (c *countingLimiter) Apply(_ context.Context, actorID string) error {
	c.calls = append(c.calls, actorID)
	return c.err
}

func newService(t *testing.T, limiter ratelimit.Limiter, notifier *recordingNotifier) (*DefaultBookingService, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(mondayMorning)
	store := scheduling.NewSeededStore(clk, &clock.Sequence{Prefix: "id-"}, nil)
	if limiter == nil {
		limiter = ratelimit.NewMemoryLimiter(5, time.Minute, clk)
	}
	svc, err := NewDefaultBookingService(store, limiter, notifier, nil)
	if err != nil {
		t.Fatalf("NewDefaultBookingService: %v", err)
	}
	return svc, clk
}

// createSlots adds n available slots for i-3 on one day so every booking has a target.
func createSlots(t *testing.T, svc *DefaultBookingService, n int) []models.Slot {
	t.Helper()
	start := mondayMorning.Add(time.Hour)
	out := make([]models.Slot, 0, n)
	for i := 0; i < n; i++ {
		s, err := svc.CreateSlot(context.Background(), models.CreateSlotInput{
			InterviewerID: "i-3",
			StartTime:     start.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
			EndTime:       start.Add(time.Duration(i+1) * time.Hour).Format(time.RFC3339),
			Location:      "Zoom",
		})
		if err != nil {
			t.Fatalf("CreateSlot %d: %v", i, err)
		}
		out = append(out, s)
	}
	return out
}

func TestBookSlotRateLimitPattern(t *testing.T) {
	svc, _ := newService(t, nil, &recordingNotifier{})
	slots := createSlots(t, svc, 6)

	for i, s := range slots {
		_, err := svc.BookSlot(context.Background(), models.BookSlotInput{
			SlotID: s.ID, CandidateID: "cand-2", CoordinatorID: "c-2",
		})
		if i < 5 && err != nil {
			t.Fatalf("booking %d: unexpected error %v", i+1, err)
		}
		if i == 5 && !models.HasCode(err, models.CodeRateLimited) {
			t.Fatalf("booking 6: expected rate_limited, got %v", err)
		}
	}
	// The rejected call must not have touched the slot.
	if got := svc.ListSlots(models.SlotFilters{InterviewerID: "i-3", Status: models.SlotAvailable}); len(got) != 1 || got[0].ID != slots[5].ID {
		t.Fatalf("expected only the sixth slot to stay available, got %+v", got)
	}
}

func TestRateLimitSharedByBookAndReschedule(t *testing.T) {
	svc, _ := newService(t, ratelimit.NewMemoryLimiter(2, time.Minute, clock.NewManual(mondayMorning)), &recordingNotifier{})
	slots := createSlots(t, svc, 3)
	ctx := context.Background()

	if _, err := svc.BookSlot(ctx, models.BookSlotInput{SlotID: slots[0].ID, CandidateID: "cand-2", CoordinatorID: "c-1"}); err != nil {
		t.Fatalf("BookSlot: %v", err)
	}
	if _, err := svc.RescheduleBooking(ctx, models.RescheduleInput{BookingID: "b-1", NewSlotID: slots[1].ID, CoordinatorID: "c-1"}); err != nil {
		t.Fatalf("RescheduleBooking: %v", err)
	}
	_, err := svc.RescheduleBooking(ctx, models.RescheduleInput{BookingID: "b-1", NewSlotID: slots[2].ID, CoordinatorID: "c-1"})
	if !models.HasCode(err, models.CodeRateLimited) {
		t.Fatalf("expected rate_limited on third action, got %v", err)
	}
}

func TestCancelAndCreateAreNotRateLimited(t *testing.T) {
	limiter := &countingLimiter{err: models.NewError(models.CodeRateLimited, "limited")}
	svc, _ := newService(t, limiter, &recordingNotifier{})

	createSlots(t, svc, 1)
	if _, err := svc.CancelBooking(context.Background(), "b-1"); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if len(limiter.calls) != 0 {
		t.Fatalf("limiter should not be consulted, got %v", limiter.calls)
	}
}

func TestLimiterFailureStopsBeforeStore(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("redis unavailable")}
	svc, _ := newService(t, limiter, &recordingNotifier{})

	_, err := svc.BookSlot(context.Background(), models.BookSlotInput{SlotID: "s-1", CandidateID: "cand-2", CoordinatorID: "c-1"})
	if err == nil || models.HasCode(err, models.CodeRateLimited) {
		t.Fatalf("expected raw limiter error, got %v", err)
	}
	if s, _ := svc.Store.GetSlot("s-1"); s.Status != models.SlotAvailable {
		t.Fatalf("slot must stay available, got %s", s.Status)
	}
	if len(limiter.calls) != 1 || limiter.calls[0] != "c-1" {
		t.Fatalf("limiter should be keyed by coordinator, got %v", limiter.calls)
	}
}

func TestEventsPublishedForCommittedMutations(t *testing.T) {
	n := &recordingNotifier{}
	svc, _ := newService(t, nil, n)
	ctx := context.Background()

	slots := createSlots(t, svc, 1)
	if _, err := svc.BookSlot(ctx, models.BookSlotInput{SlotID: "s-1", CandidateID: "cand-2", CoordinatorID: "c-1"}); err != nil {
		t.Fatalf("BookSlot: %v", err)
	}
	if _, err := svc.RescheduleBooking(ctx, models.RescheduleInput{BookingID: "b-1", NewSlotID: slots[0].ID, CoordinatorID: "c-2"}); err != nil {
		t.Fatalf("RescheduleBooking: %v", err)
	}
	if _, err := svc.CancelBooking(ctx, "b-1"); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	// Failed mutations publish nothing.
	if _, err := svc.BookSlot(ctx, models.BookSlotInput{SlotID: "missing", CandidateID: "cand-2", CoordinatorID: "c-1"}); err == nil {
		t.Fatalf("expected not_found")
	}

	want := []models.BookingEventType{
		models.EventSlotCreated,
		models.EventBookingCreated,
		models.EventBookingRescheduled,
		models.EventBookingCancelled,
	}
	got := n.types()
	if len(got) != len(want) {
		t.Fatalf("expected events %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestNotifierFailureDoesNotFailMutation(t *testing.T) {
	svc, _ := newService(t, nil, &recordingNotifier{err: errors.New("queue down")})
	b, err := svc.BookSlot(context.Background(), models.BookSlotInput{SlotID: "s-1", CandidateID: "cand-2", CoordinatorID: "c-1"})
	if err != nil {
		t.Fatalf("BookSlot should succeed despite notifier failure: %v", err)
	}
	if b.Status != models.BookingBooked {
		t.Fatalf("unexpected booking %+v", b)
	}
}

func TestNewDefaultBookingServiceRequiresStore(t *testing.T) {
	if _, err := NewDefaultBookingService(nil, &countingLimiter{}, nil, nil); err == nil {
		t.Fatalf("expected error for nil store")
	}
}
