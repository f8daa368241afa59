package appointment

import "time"

// Clinic opening hours, evaluated on the local day of week:
// Monday-Friday 08:00-18:00, Saturday 08:00-13:00, Sunday closed.
const (
	OpeningHour         = 8
	WeekdayClosingHour  = 18
	SaturdayClosingHour = 13
)

// IsWithinBusinessHours checks only the hour component of t. An
// appointment starting at 17:45 is accepted even if its duration runs
// past closing; callers needing end-time validation must do it
// themselves.
func IsWithinBusinessHours(t time.Time) bool {
	hour := t.Hour()

	switch t.Weekday() {
	case time.Sunday:
		return false
	case time.Saturday:
		return hour >= OpeningHour && hour < SaturdayClosingHour
	default:
		return hour >= OpeningHour && hour < WeekdayClosingHour
	}
}
