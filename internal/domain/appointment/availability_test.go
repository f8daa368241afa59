package appointment

import (
	"testing"
	"time"

	"github.com/odontolab/clinic-api/internal/models"
)

func day() time.Time {
	return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Monday
}

func TestBuildDaySlots_EmptyDay(t *testing.T) {
	slots := BuildDaySlots(day(), 8, 18, 30*time.Minute, nil)

	if len(slots) != 20 {
		t.Fatalf("got %d slots, want 20", len(slots))
	}
	for i, slot := range slots {
		if !slot.Available {
			t.Errorf("slot %d (%v) unavailable on an empty day", i, slot.Start)
		}
		if !slot.End.Equal(slot.Start.Add(30 * time.Minute)) {
			t.Errorf("slot %d has end %v, want %v", i, slot.End, slot.Start.Add(30*time.Minute))
		}
	}
	if !slots[0].Start.Equal(ts(8, 0)) {
		t.Errorf("first slot starts at %v, want 08:00", slots[0].Start)
	}
	if !slots[19].End.Equal(ts(18, 0)) {
		t.Errorf("last slot ends at %v, want 18:00", slots[19].End)
	}
}

func TestBuildDaySlots_BookedSlotExcluded(t *testing.T) {
	existing := []models.Appointment{
		mkAppointment(ts(10, 0), 30, StatusScheduled),
	}

	slots := BuildDaySlots(day(), 8, 18, 30*time.Minute, existing)

	for _, slot := range slots {
		overlapsBooking := slot.Start.Before(ts(10, 30)) && ts(10, 0).Before(slot.End)
		if overlapsBooking && slot.Available {
			t.Errorf("slot %v-%v should be unavailable", slot.Start, slot.End)
		}
		if !overlapsBooking && !slot.Available {
			t.Errorf("slot %v-%v should be available", slot.Start, slot.End)
		}
	}
}

func TestBuildDaySlots_AppointmentSpanningSlots(t *testing.T) {
	existing := []models.Appointment{
		mkAppointment(ts(10, 15), 30, StatusScheduled), // crosses two slots
	}

	slots := BuildDaySlots(day(), 8, 18, 30*time.Minute, existing)

	unavailable := 0
	for _, slot := range slots {
		if !slot.Available {
			unavailable++
		}
	}
	if unavailable != 2 {
		t.Errorf("got %d unavailable slots, want 2", unavailable)
	}
}

func TestBuildDaySlots_CancelledAppointmentIgnored(t *testing.T) {
	existing := []models.Appointment{
		mkAppointment(ts(10, 0), 30, StatusCancelled),
	}

	slots := BuildDaySlots(day(), 8, 18, 30*time.Minute, existing)
	for _, slot := range slots {
		if !slot.Available {
			t.Errorf("slot %v unavailable due to cancelled appointment", slot.Start)
		}
	}
}

// A slot duration that does not evenly divide the window drops the
// trailing partial interval.
func TestBuildDaySlots_PartialTrailingSlotDropped(t *testing.T) {
	slots := BuildDaySlots(day(), 8, 18, 45*time.Minute, nil)

	// 10h window / 45min = 13 whole slots, last ends 17:45.
	if len(slots) != 13 {
		t.Fatalf("got %d slots, want 13", len(slots))
	}
	last := slots[len(slots)-1]
	if !last.End.Equal(ts(17, 45)) {
		t.Errorf("last slot ends at %v, want 17:45", last.End)
	}
}

func TestBuildDaySlots_NonPositiveDuration(t *testing.T) {
	for _, d := range []time.Duration{0, -30 * time.Minute} {
		slots := BuildDaySlots(day(), 8, 18, d, nil)
		if len(slots) != 0 {
			t.Errorf("slotDuration %v produced %d slots, want 0", d, len(slots))
		}
	}
}
