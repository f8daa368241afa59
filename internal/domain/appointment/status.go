package appointment

import "github.com/odontolab/clinic-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// CancellationMarker prefixes a cancellation reason appended to notes.
const CancellationMarker = "[CANCELLATION]"

func InitialStatus() Status {
	return StatusScheduled
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
// Terminal appointments never participate in conflict detection.
func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ===============================
// Transition table
// ===============================

var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

// ValidateTransition checks current -> requested against the table.
func ValidateTransition(current, requested Status) error {
	for _, allowed := range transitions[current] {
		if requested == allowed {
			return nil
		}
	}
	return httperr.Business(
		httperr.CodeInvalidTransition,
		"invalid status transition from "+string(current)+" to "+string(requested),
	)
}

// CanBeCancelled reports whether an appointment in the given status may
// still be cancelled. Implied by the transition table, but the cancel
// flow checks it up front to produce a dedicated error.
func CanBeCancelled(current Status) bool {
	return !IsTerminal(current)
}
