// Package timezone resolves the clinic's IANA timezone. Dates in query
// parameters (availability, stats ranges) are interpreted in clinic
// local time, not in the caller's.
package timezone

import "time"

const DefaultTimezone = "America/Bogota"

// Location loads tz, falling back to the clinic default when tz is
// empty or unknown.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
