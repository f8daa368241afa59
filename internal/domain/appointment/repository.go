package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/models"
)

// ListFilters narrows an appointment listing. Nil fields are ignored.
type ListFilters struct {
	PatientID *uuid.UUID
	DentistID *uuid.UUID
	Status    *Status
	From      *time.Time
	To        *time.Time

	Page    int
	PerPage int
}

type Repository interface {
	// -------- Collaborator reads --------
	GetPatientByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Patient, error)

	GetUserByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.User, error)

	// -------- Appointment (create / reschedule) --------
	// Both re-check overlap inside a transaction and surface any hit
	// as a conflict business error.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (read / state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uuid.UUID,
	) error

	// -------- Conflict / availability reads --------
	ListActiveByDentist(
		ctx context.Context,
		dentistID uuid.UUID,
	) ([]models.Appointment, error)

	ListActiveByDentistBetween(
		ctx context.Context,
		dentistID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Listing / aggregation --------
	ListAppointments(
		ctx context.Context,
		filters ListFilters,
	) ([]models.Appointment, int64, error)

	ListUpcoming(
		ctx context.Context,
		dentistID *uuid.UUID,
		from time.Time,
		to time.Time,
		limit int,
	) ([]models.Appointment, error)

	// -------- Reminders --------
	CreateReminders(
		ctx context.Context,
		reminders []models.AppointmentReminder,
	) error

	GetReminderByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.AppointmentReminder, error)

	ListDueReminders(
		ctx context.Context,
		now time.Time,
		limit int,
	) ([]models.AppointmentReminder, error)

	UpdateReminder(
		ctx context.Context,
		reminder *models.AppointmentReminder,
	) error
}
