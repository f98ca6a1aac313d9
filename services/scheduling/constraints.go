package scheduling

import (
	"time"

	"interviewsched/models"
)

// MaxDaysPerWeek is how many distinct calendar days an interviewer may offer
// availability on within one Monday-anchored UTC week.
const MaxDaysPerWeek = 2

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. Touching intervals do not.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// DetectOverlap reports whether [start,end) collides with any slot of the
// interviewer. excludeSlotID, when non-empty, is skipped so a slot being
// edited does not collide with itself.
func DetectOverlap(slots []models.Slot, interviewerID string, start, end time.Time, excludeSlotID string) bool {
	for _, s := range slots {
		if s.InterviewerID != interviewerID {
			continue
		}
		if excludeSlotID != "" && s.ID == excludeSlotID {
			continue
		}
		if Overlaps(start, end, s.StartTime, s.EndTime) {
			return true
		}
	}
	return false
}

// DayKey truncates t to its UTC calendar day.
func DayKey(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekKey returns the Monday (UTC midnight) of the ISO week containing t.
func WeekKey(t time.Time) time.Time {
	day := DayKey(t)
	return day.AddDate(0, 0, -int((day.Weekday()+6)%7))
}

// ExceedsWeeklyDayLimit reports whether adding a slot starting at start would
// give the interviewer slots on more than MaxDaysPerWeek distinct days in that
// week. Only slot start days count.
func ExceedsWeeklyDayLimit(slots []models.Slot, interviewerID string, start time.Time) bool {
	week := WeekKey(start)
	days := map[time.Time]struct{}{DayKey(start): {}}
	for _, s := range slots {
		if s.InterviewerID != interviewerID || !WeekKey(s.StartTime).Equal(week) {
			continue
		}
		days[DayKey(s.StartTime)] = struct{}{}
	}
	return len(days) > MaxDaysPerWeek
}
