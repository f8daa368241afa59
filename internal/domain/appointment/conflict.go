package appointment

import (
	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/models"
)

// FindConflicts filters a dentist's pre-fetched appointments down to
// those whose interval overlaps the candidate. Terminal appointments
// never conflict; excludeID removes the appointment being rescheduled
// so it cannot conflict with itself. Pass uuid.Nil to exclude nothing.
func FindConflicts(
	existing []models.Appointment,
	candidate Interval,
	excludeID uuid.UUID,
) []models.Appointment {

	var conflicts []models.Appointment

	for _, ap := range existing {
		if excludeID != uuid.Nil && ap.ID == excludeID {
			continue
		}
		if IsTerminal(Status(ap.Status)) {
			continue
		}

		iv := NewInterval(ap.ScheduledTime, ap.DurationMinutes)
		if iv.Overlaps(candidate) {
			conflicts = append(conflicts, ap)
		}
	}

	return conflicts
}
