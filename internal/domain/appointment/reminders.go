package appointment

import (
	"time"

	"github.com/odontolab/clinic-api/internal/models"
)

type ReminderType string

const (
	ReminderEmail ReminderType = "email"
	ReminderSMS   ReminderType = "sms"
)

// Fixed reminder policy: one email a day ahead, one SMS shortly before.
var reminderOffsets = []struct {
	typ    ReminderType
	before time.Duration
}{
	{ReminderEmail, 24 * time.Hour},
	{ReminderSMS, 2 * time.Hour},
}

// PlanReminders derives the reminder records for an appointment. A
// reminder whose fire time is already past at planning time is skipped
// silently, so a booking less than two hours out plans nothing.
func PlanReminders(ap *models.Appointment, now time.Time) []models.AppointmentReminder {
	var reminders []models.AppointmentReminder

	for _, policy := range reminderOffsets {
		fireAt := ap.ScheduledTime.Add(-policy.before)
		if !fireAt.After(now) {
			continue
		}
		reminders = append(reminders, models.AppointmentReminder{
			AppointmentID: ap.ID,
			ReminderType:  string(policy.typ),
			ScheduledFor:  fireAt,
		})
	}

	return reminders
}
