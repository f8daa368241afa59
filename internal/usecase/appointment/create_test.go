package appointment

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/authz"
	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/httperr"
)

func newCreateUC(repo *fakeRepo) *CreateAppointment {
	uc := NewCreateAppointment(repo, passLocker{}, nil)
	uc.now = fixedNow
	return uc
}

func TestCreateAppointment_HappyPath(t *testing.T) {
	repo := newFakeRepo()
	patient := repo.addPatient()
	dentist := repo.addUser(authz.RoleDentist)
	uc := newCreateUC(repo)

	in := CreateAppointmentInput{
		PatientID:       patient.ID,
		DentistID:       dentist.ID,
		ScheduledTime:   time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Reason:          "cleaning",
	}

	ap, err := uc.Execute(context.Background(), in, adminCaller())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.ID == uuid.Nil {
		t.Error("appointment not assigned an id")
	}
	if ap.Status != string(domain.StatusScheduled) {
		t.Errorf("status = %s, want scheduled", ap.Status)
	}
	if _, ok := repo.appointments[ap.ID]; !ok {
		t.Error("appointment not persisted")
	}

	reminders := repo.remindersFor(ap.ID)
	if len(reminders) != 2 {
		t.Fatalf("got %d reminders, want 2", len(reminders))
	}
	if reminders[0].ReminderType != "email" || reminders[1].ReminderType != "sms" {
		t.Errorf("reminder types = %s, %s", reminders[0].ReminderType, reminders[1].ReminderType)
	}
}

func TestCreateAppointment_ReminderFailureDoesNotFailBooking(t *testing.T) {
	repo := newFakeRepo()
	patient := repo.addPatient()
	dentist := repo.addUser(authz.RoleDentist)
	repo.reminderErr = errors.New("reminder table unavailable")
	uc := newCreateUC(repo)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientID:       patient.ID,
		DentistID:       dentist.ID,
		ScheduledTime:   time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}, adminCaller())
	if err != nil {
		t.Fatalf("create failed on a committed booking: %v", err)
	}
	if _, ok := repo.appointments[ap.ID]; !ok {
		t.Error("appointment not persisted")
	}
	if got := repo.remindersFor(ap.ID); len(got) != 0 {
		t.Errorf("got %d reminders despite insert failure", len(got))
	}
}

func TestCreateAppointment_Conflict(t *testing.T) {
	repo := newFakeRepo()
	patient := repo.addPatient()
	dentist := repo.addUser(authz.RoleDentist)
	uc := newCreateUC(repo)

	start := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	repo.addAppointment(dentist.ID, patient.ID, start, 60, domain.StatusScheduled)

	// Starts halfway through the existing booking.
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientID:       patient.ID,
		DentistID:       dentist.ID,
		ScheduledTime:   start.Add(30 * time.Minute),
		DurationMinutes: 30,
	}, adminCaller())
	if !httperr.IsBusiness(err, httperr.CodeTimeConflict) {
		t.Fatalf("got %v, want %s", err, httperr.CodeTimeConflict)
	}
}

func TestCreateAppointment_BackToBackIsNotAConflict(t *testing.T) {
	repo := newFakeRepo()
	patient := repo.addPatient()
	dentist := repo.addUser(authz.RoleDentist)
	uc := newCreateUC(repo)

	start := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	repo.addAppointment(dentist.ID, patient.ID, start, 30, domain.StatusScheduled)

	if _, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientID:       patient.ID,
		DentistID:       dentist.ID,
		ScheduledTime:   start.Add(30 * time.Minute),
		DurationMinutes: 30,
	}, adminCaller()); err != nil {
		t.Fatalf("back-to-back booking rejected: %v", err)
	}
}

func TestCreateAppointment_CancelledSlotIsFree(t *testing.T) {
	repo := newFakeRepo()
	patient := repo.addPatient()
	dentist := repo.addUser(authz.RoleDentist)
	uc := newCreateUC(repo)

	start := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	repo.addAppointment(dentist.ID, patient.ID, start, 60, domain.StatusCancelled)

	if _, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientID:       patient.ID,
		DentistID:       dentist.ID,
		ScheduledTime:   start,
		DurationMinutes: 60,
	}, adminCaller()); err != nil {
		t.Fatalf("slot of a cancelled appointment rejected: %v", err)
	}
}

func TestCreateAppointment_Validation(t *testing.T) {
	repo := newFakeRepo()
	patient := repo.addPatient()
	dentist := repo.addUser(authz.RoleDentist)
	receptionist := repo.addUser(authz.RoleReceptionist)
	uc := newCreateUC(repo)

	valid := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		in       CreateAppointmentInput
		wantCode string
	}{
		{
			"past time",
			CreateAppointmentInput{PatientID: patient.ID, DentistID: dentist.ID, ScheduledTime: testNow.Add(-time.Hour), DurationMinutes: 30},
			httperr.CodeTimeInPast,
		},
		{
			"duration too short",
			CreateAppointmentInput{PatientID: patient.ID, DentistID: dentist.ID, ScheduledTime: valid, DurationMinutes: 3},
			httperr.CodeInvalidDuration,
		},
		{
			"duration not a multiple of five",
			CreateAppointmentInput{PatientID: patient.ID, DentistID: dentist.ID, ScheduledTime: valid, DurationMinutes: 37},
			httperr.CodeInvalidDuration,
		},
		{
			"duration too long",
			CreateAppointmentInput{PatientID: patient.ID, DentistID: dentist.ID, ScheduledTime: valid, DurationMinutes: 485},
			httperr.CodeInvalidDuration,
		},
		{
			"unknown patient",
			CreateAppointmentInput{PatientID: uuid.New(), DentistID: dentist.ID, ScheduledTime: valid, DurationMinutes: 30},
			httperr.CodePatientNotFound,
		},
		{
			"unknown dentist",
			CreateAppointmentInput{PatientID: patient.ID, DentistID: uuid.New(), ScheduledTime: valid, DurationMinutes: 30},
			httperr.CodeDentistNotFound,
		},
		{
			"provider is not a dentist",
			CreateAppointmentInput{PatientID: patient.ID, DentistID: receptionist.ID, ScheduledTime: valid, DurationMinutes: 30},
			httperr.CodeNotADentist,
		},
		{
			"sunday",
			CreateAppointmentInput{PatientID: patient.ID, DentistID: dentist.ID, ScheduledTime: time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC), DurationMinutes: 30},
			httperr.CodeOutsideBusinessHours,
		},
		{
			"before opening",
			CreateAppointmentInput{PatientID: patient.ID, DentistID: dentist.ID, ScheduledTime: time.Date(2026, 3, 4, 7, 30, 0, 0, time.UTC), DurationMinutes: 30},
			httperr.CodeOutsideBusinessHours,
		},
		{
			"saturday afternoon",
			CreateAppointmentInput{PatientID: patient.ID, DentistID: dentist.ID, ScheduledTime: time.Date(2026, 3, 7, 14, 0, 0, 0, time.UTC), DurationMinutes: 30},
			httperr.CodeOutsideBusinessHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.in, adminCaller())
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Errorf("got %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestCreateAppointment_DentistCannotBookForColleague(t *testing.T) {
	repo := newFakeRepo()
	patient := repo.addPatient()
	dentist := repo.addUser(authz.RoleDentist)
	colleague := repo.addUser(authz.RoleDentist)
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientID:       patient.ID,
		DentistID:       dentist.ID,
		ScheduledTime:   time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}, authz.Caller{ID: colleague.ID, Role: authz.RoleDentist})
	if !httperr.IsBusiness(err, httperr.CodeNotAuthorized) {
		t.Fatalf("got %v, want %s", err, httperr.CodeNotAuthorized)
	}
}

func TestCreateAppointment_LockHeld(t *testing.T) {
	repo := newFakeRepo()
	patient := repo.addPatient()
	dentist := repo.addUser(authz.RoleDentist)
	uc := NewCreateAppointment(repo, heldLocker{}, nil)
	uc.now = fixedNow

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientID:       patient.ID,
		DentistID:       dentist.ID,
		ScheduledTime:   time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}, adminCaller())
	if !httperr.IsBusiness(err, httperr.CodeSlotLocked) {
		t.Fatalf("got %v, want %s", err, httperr.CodeSlotLocked)
	}
}

// Sequentially firing a stream of random booking attempts must leave
// the active schedule pairwise non-overlapping, whatever subset gets
// accepted.
func TestCreateAppointment_AcceptedSetNeverOverlaps(t *testing.T) {
	repo := newFakeRepo()
	patient := repo.addPatient()
	dentist := repo.addUser(authz.RoleDentist)
	uc := newCreateUC(repo)

	rng := rand.New(rand.NewSource(42))
	accepted := 0
	for i := 0; i < 200; i++ {
		// Weekday business hours on the Wednesday after testNow.
		hour := 8 + rng.Intn(9)
		minute := 5 * rng.Intn(12)
		duration := 5 * (1 + rng.Intn(18)) // 5..90 minutes

		_, err := uc.Execute(context.Background(), CreateAppointmentInput{
			PatientID:       patient.ID,
			DentistID:       dentist.ID,
			ScheduledTime:   time.Date(2026, 3, 4, hour, minute, 0, 0, time.UTC),
			DurationMinutes: duration,
		}, adminCaller())
		if err == nil {
			accepted++
		} else if !httperr.IsBusiness(err, httperr.CodeTimeConflict) {
			t.Fatalf("attempt %d failed with %v", i, err)
		}
	}

	if accepted == 0 {
		t.Fatal("no attempt was accepted")
	}

	active, err := repo.ListActiveByDentist(context.Background(), dentist.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != accepted {
		t.Fatalf("stored %d active appointments, accepted %d", len(active), accepted)
	}
	for i := range active {
		for j := i + 1; j < len(active); j++ {
			a := domain.NewInterval(active[i].ScheduledTime, active[i].DurationMinutes)
			b := domain.NewInterval(active[j].ScheduledTime, active[j].DurationMinutes)
			if a.Overlaps(b) {
				t.Fatalf("appointments %v and %v overlap", a, b)
			}
		}
	}
}
