package appointment

import (
	"time"

	"github.com/odontolab/clinic-api/internal/models"
)

const (
	DefaultWorkStartHour       = 8
	DefaultWorkEndHour         = 18
	DefaultSlotDurationMinutes = 30
)

// TimeSlot is a derived availability window. It has no identity and is
// recomputed on every query.
type TimeSlot struct {
	Start     time.Time `json:"start_time"`
	End       time.Time `json:"end_time"`
	Available bool      `json:"available"`
}

// BuildDaySlots walks the working window of date in fixed slotDuration
// steps and marks each slot unavailable when it overlaps any of the
// dentist's pre-fetched active appointments. The comparison is entirely
// in-memory: one fetch, O(appointments x slots) checks. A trailing slot
// that would extend past the window end is dropped, not truncated.
func BuildDaySlots(
	date time.Time,
	startHour int,
	endHour int,
	slotDuration time.Duration,
	existing []models.Appointment,
) []TimeSlot {

	slots := []TimeSlot{}

	// A non-positive step would never advance the walk.
	if slotDuration <= 0 {
		return slots
	}

	loc := date.Location()
	windowStart := time.Date(date.Year(), date.Month(), date.Day(), startHour, 0, 0, 0, loc)
	windowEnd := time.Date(date.Year(), date.Month(), date.Day(), endHour, 0, 0, 0, loc)

	for cur := windowStart; cur.Before(windowEnd); cur = cur.Add(slotDuration) {
		slotEnd := cur.Add(slotDuration)
		if slotEnd.After(windowEnd) {
			break
		}

		slot := Interval{Start: cur, End: slotEnd}

		available := true
		for _, ap := range existing {
			if IsTerminal(Status(ap.Status)) {
				continue
			}
			iv := NewInterval(ap.ScheduledTime, ap.DurationMinutes)
			if iv.Overlaps(slot) {
				available = false
				break
			}
		}

		slots = append(slots, TimeSlot{
			Start:     cur,
			End:       slotEnd,
			Available: available,
		})
	}

	return slots
}
