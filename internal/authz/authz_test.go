package authz

import (
	"testing"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/httperr"
)

func TestCanAccessAppointment(t *testing.T) {
	dentistID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name   string
		caller Caller
		want   bool
	}{
		{"administrator reaches any appointment", Caller{ID: otherID, Role: RoleAdministrator}, true},
		{"receptionist reaches any appointment", Caller{ID: otherID, Role: RoleReceptionist}, true},
		{"dentist reaches own appointment", Caller{ID: dentistID, Role: RoleDentist}, true},
		{"dentist denied on another dentist's appointment", Caller{ID: otherID, Role: RoleDentist}, false},
		{"unknown role denied", Caller{ID: dentistID, Role: Role("intern")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessAppointment(tt.caller, dentistID); got != tt.want {
				t.Errorf("CanAccessAppointment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanViewStats(t *testing.T) {
	if !CanViewStats(Caller{Role: RoleAdministrator}) {
		t.Error("administrator should view stats")
	}
	if !CanViewStats(Caller{Role: RoleReceptionist}) {
		t.Error("receptionist should view stats")
	}
	if CanViewStats(Caller{Role: RoleDentist}) {
		t.Error("dentist should not view stats")
	}
}

func TestCanHardDelete(t *testing.T) {
	if !CanHardDelete(Caller{Role: RoleAdministrator}) {
		t.Error("administrator should hard delete")
	}
	if CanHardDelete(Caller{Role: RoleReceptionist}) {
		t.Error("receptionist should not hard delete")
	}
	if CanHardDelete(Caller{Role: RoleDentist}) {
		t.Error("dentist should not hard delete")
	}
}

func TestMedicalRecordPolicy(t *testing.T) {
	authorID := uuid.New()

	if !CanCreateMedicalRecord(Caller{Role: RoleDentist}) {
		t.Error("dentist should create medical records")
	}
	for _, role := range []Role{RoleAdministrator, RoleReceptionist} {
		if CanCreateMedicalRecord(Caller{Role: role}) {
			t.Errorf("%s should not create medical records", role)
		}
	}

	if !CanAccessMedicalRecord(Caller{ID: authorID, Role: RoleDentist}, authorID) {
		t.Error("authoring dentist should access own record")
	}
	if !CanAccessMedicalRecord(Caller{ID: uuid.New(), Role: RoleAdministrator}, authorID) {
		t.Error("administrator should access any record")
	}
	if CanAccessMedicalRecord(Caller{ID: uuid.New(), Role: RoleDentist}, authorID) {
		t.Error("foreign dentist should not access the record")
	}
	if CanAccessMedicalRecord(Caller{ID: authorID, Role: RoleReceptionist}, authorID) {
		t.Error("receptionist should never access record contents")
	}

	if !CanDeleteMedicalRecord(Caller{Role: RoleAdministrator}) {
		t.Error("administrator should delete records")
	}
	for _, role := range []Role{RoleDentist, RoleReceptionist} {
		if CanDeleteMedicalRecord(Caller{Role: role}) {
			t.Errorf("%s should not delete records", role)
		}
	}
}

func TestRequireAppointmentAccess(t *testing.T) {
	dentistID := uuid.New()

	if err := RequireAppointmentAccess(Caller{ID: dentistID, Role: RoleDentist}, dentistID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := RequireAppointmentAccess(Caller{ID: uuid.New(), Role: RoleDentist}, dentistID)
	if err == nil {
		t.Fatal("expected denial for foreign dentist")
	}
	if !httperr.IsBusiness(err, httperr.CodeNotAuthorized) {
		t.Errorf("got %v, want business error %s", err, httperr.CodeNotAuthorized)
	}
}
