package httperr

import "errors"

// BusinessError is a domain-level failure identified by a stable code.
type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func Business(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Error codes, grouped by kind. Respond maps each to an HTTP status.
const (
	// not found
	CodeAppointmentNotFound = "appointment_not_found"
	CodePatientNotFound     = "patient_not_found"
	CodeDentistNotFound     = "dentist_not_found"
	CodeReminderNotFound    = "reminder_not_found"
	CodeContactNotFound     = "contact_request_not_found"
	CodeRecordNotFound      = "medical_record_not_found"

	// conflict
	CodeTimeConflict = "time_conflict"
	CodeSlotLocked   = "slot_locked"

	// validation
	CodeInvalidTransition    = "invalid_transition"
	CodeOutsideBusinessHours = "outside_business_hours"
	CodeNotADentist          = "not_a_dentist"
	CodeCannotCancel         = "cannot_cancel"
	CodeInvalidDuration      = "invalid_duration"
	CodeInvalidAvailability  = "invalid_availability_window"
	CodeTimeInPast           = "time_in_past"
	CodeAlreadySent          = "already_sent"

	// authorization
	CodeNotAuthorized = "not_authorized"
)
