// Package authz centralizes the role policy applied by every
// appointment use case. Administrators and receptionists operate on any
// appointment; a dentist only on their own; everyone else is denied.
package authz

import (
	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/httperr"
)

type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleDentist       Role = "dentist"
	RoleReceptionist  Role = "receptionist"
)

// Caller identifies the authenticated user of a request.
type Caller struct {
	ID   uuid.UUID
	Role Role
}

func (r Role) IsStaffWide() bool {
	return r == RoleAdministrator || r == RoleReceptionist
}

// CanAccessAppointment decides read and write access alike; the source
// policy draws no distinction between the two.
func CanAccessAppointment(caller Caller, dentistID uuid.UUID) bool {
	if caller.Role.IsStaffWide() {
		return true
	}
	return caller.Role == RoleDentist && caller.ID == dentistID
}

func CanViewStats(caller Caller) bool {
	return caller.Role.IsStaffWide()
}

func CanHardDelete(caller Caller) bool {
	return caller.Role == RoleAdministrator
}

// Medical records are clinical data: only dentists author them, and
// only the authoring dentist or an administrator may read or amend
// one. Receptionists never see record contents.
func CanCreateMedicalRecord(caller Caller) bool {
	return caller.Role == RoleDentist
}

func CanAccessMedicalRecord(caller Caller, authorID uuid.UUID) bool {
	if caller.Role == RoleAdministrator {
		return true
	}
	return caller.Role == RoleDentist && caller.ID == authorID
}

func CanDeleteMedicalRecord(caller Caller) bool {
	return caller.Role == RoleAdministrator
}

// RequireAppointmentAccess is the error-returning form used by the use
// cases.
func RequireAppointmentAccess(caller Caller, dentistID uuid.UUID) error {
	if CanAccessAppointment(caller, dentistID) {
		return nil
	}
	return httperr.Business(
		httperr.CodeNotAuthorized,
		"you don't have permission to access this appointment",
	)
}
