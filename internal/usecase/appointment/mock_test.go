package appointment

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/authz"
	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/httperr"
	"github.com/odontolab/clinic-api/internal/lock"
	"github.com/odontolab/clinic-api/internal/models"
)

// fakeRepo is an in-memory domain.Repository for use case tests. It
// stores nothing durable and performs no transactional overlap
// recheck; the use cases under test own the conflict check here.
type fakeRepo struct {
	patients     map[uuid.UUID]*models.Patient
	users        map[uuid.UUID]*models.User
	appointments map[uuid.UUID]*models.Appointment
	reminders    map[uuid.UUID]*models.AppointmentReminder

	createErr   error
	reminderErr error
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		patients:     map[uuid.UUID]*models.Patient{},
		users:        map[uuid.UUID]*models.User{},
		appointments: map[uuid.UUID]*models.Appointment{},
		reminders:    map[uuid.UUID]*models.AppointmentReminder{},
	}
}

func (r *fakeRepo) addPatient() *models.Patient {
	p := &models.Patient{ID: uuid.New(), FirstName: "Ana", LastName: "Lopez"}
	r.patients[p.ID] = p
	return p
}

func (r *fakeRepo) addUser(role authz.Role) *models.User {
	u := &models.User{ID: uuid.New(), Role: string(role)}
	r.users[u.ID] = u
	return u
}

func (r *fakeRepo) addAppointment(dentistID, patientID uuid.UUID, start time.Time, minutes int, status domain.Status) *models.Appointment {
	ap := &models.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		DentistID:       dentistID,
		ScheduledTime:   start,
		DurationMinutes: minutes,
		Status:          string(status),
	}
	r.appointments[ap.ID] = ap
	return ap
}

func (r *fakeRepo) GetPatientByID(_ context.Context, id uuid.UUID) (*models.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, httperr.Business(httperr.CodePatientNotFound, "patient not found")
	}
	return p, nil
}

func (r *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, httperr.Business(httperr.CodeDentistNotFound, "dentist not found")
	}
	return u, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) RescheduleAppointment(_ context.Context, ap *models.Appointment) error {
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) GetAppointmentByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.Business(httperr.CodeAppointmentNotFound, "appointment not found")
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := r.appointments[ap.ID]; !ok {
		return httperr.Business(httperr.CodeAppointmentNotFound, "appointment not found")
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, id uuid.UUID) error {
	if _, ok := r.appointments[id]; !ok {
		return httperr.Business(httperr.CodeAppointmentNotFound, "appointment not found")
	}
	delete(r.appointments, id)
	return nil
}

func (r *fakeRepo) ListActiveByDentist(_ context.Context, dentistID uuid.UUID) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DentistID != dentistID || domain.IsTerminal(domain.Status(ap.Status)) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (r *fakeRepo) ListActiveByDentistBetween(_ context.Context, dentistID uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DentistID != dentistID || domain.IsTerminal(domain.Status(ap.Status)) {
			continue
		}
		if ap.ScheduledTime.Before(end) && ap.EndTime().After(start) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointments(_ context.Context, filters domain.ListFilters) ([]models.Appointment, int64, error) {
	var matched []models.Appointment
	for _, ap := range r.appointments {
		if filters.PatientID != nil && ap.PatientID != *filters.PatientID {
			continue
		}
		if filters.DentistID != nil && ap.DentistID != *filters.DentistID {
			continue
		}
		if filters.Status != nil && ap.Status != string(*filters.Status) {
			continue
		}
		if filters.From != nil && ap.ScheduledTime.Before(*filters.From) {
			continue
		}
		if filters.To != nil && !ap.ScheduledTime.Before(*filters.To) {
			continue
		}
		matched = append(matched, *ap)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ScheduledTime.Before(matched[j].ScheduledTime)
	})

	total := int64(len(matched))
	page, perPage := filters.Page, filters.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}
	offset := (page - 1) * perPage
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + perPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeRepo) ListUpcoming(_ context.Context, dentistID *uuid.UUID, from, to time.Time, limit int) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if dentistID != nil && ap.DentistID != *dentistID {
			continue
		}
		if domain.IsTerminal(domain.Status(ap.Status)) {
			continue
		}
		if ap.ScheduledTime.Before(from) || !ap.ScheduledTime.Before(to) {
			continue
		}
		out = append(out, *ap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledTime.Before(out[j].ScheduledTime)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) CreateReminders(_ context.Context, reminders []models.AppointmentReminder) error {
	if r.reminderErr != nil {
		return r.reminderErr
	}
	for i := range reminders {
		if reminders[i].ID == uuid.Nil {
			reminders[i].ID = uuid.New()
		}
		stored := reminders[i]
		r.reminders[stored.ID] = &stored
	}
	return nil
}

func (r *fakeRepo) GetReminderByID(_ context.Context, id uuid.UUID) (*models.AppointmentReminder, error) {
	rem, ok := r.reminders[id]
	if !ok {
		return nil, httperr.Business(httperr.CodeReminderNotFound, "reminder not found")
	}
	cp := *rem
	return &cp, nil
}

func (r *fakeRepo) ListDueReminders(_ context.Context, now time.Time, limit int) ([]models.AppointmentReminder, error) {
	var out []models.AppointmentReminder
	for _, rem := range r.reminders {
		if rem.Sent || rem.ScheduledFor.After(now) {
			continue
		}
		out = append(out, *rem)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledFor.Before(out[j].ScheduledFor)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) UpdateReminder(_ context.Context, reminder *models.AppointmentReminder) error {
	if _, ok := r.reminders[reminder.ID]; !ok {
		return httperr.Business(httperr.CodeReminderNotFound, "reminder not found")
	}
	stored := *reminder
	r.reminders[reminder.ID] = &stored
	return nil
}

func (r *fakeRepo) remindersFor(appointmentID uuid.UUID) []models.AppointmentReminder {
	var out []models.AppointmentReminder
	for _, rem := range r.reminders {
		if rem.AppointmentID == appointmentID {
			out = append(out, *rem)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledFor.Before(out[j].ScheduledFor)
	})
	return out
}

// passLocker runs the critical section inline.
type passLocker struct{}

func (passLocker) WithDentistLock(ctx context.Context, _ uuid.UUID, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// heldLocker simulates a lock already held by another request.
type heldLocker struct{}

func (heldLocker) WithDentistLock(context.Context, uuid.UUID, func(ctx context.Context) error) error {
	return lock.ErrNotAcquired
}

var (
	_ lock.DentistLocker = passLocker{}
	_ lock.DentistLocker = heldLocker{}
)

// testNow is a fixed Monday morning; every relative time in the tests
// hangs off it.
var testNow = time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func adminCaller() authz.Caller {
	return authz.Caller{ID: uuid.New(), Role: authz.RoleAdministrator}
}
