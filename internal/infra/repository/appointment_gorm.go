package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/httperr"
	"github.com/odontolab/clinic-api/internal/models"
)

// Statuses that take part in conflict detection.
var activeStatuses = []string{
	string(domain.StatusScheduled),
	string(domain.StatusConfirmed),
	string(domain.StatusInProgress),
}

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Collaborator reads
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPatientByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Patient, error) {

	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.Business(httperr.CodePatientNotFound, "patient not found")
		}
		return nil, err
	}
	return &patient, nil
}

func (r *AppointmentGormRepository) GetUserByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.Business(httperr.CodeDentistNotFound, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Appointment (create / reschedule)
// --------------------------------------------------

// assertNoOverlap locks the dentist's active rows and fails with a
// conflict error when any of them overlaps [start, end). Second fence
// behind the per-dentist advisory lock; a race that slips past the
// lock still cannot commit an overlap.
func assertNoOverlap(
	tx *gorm.DB,
	dentistID uuid.UUID,
	start time.Time,
	end time.Time,
	excludeID uuid.UUID,
) error {

	q := tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"dentist_id = ? AND status IN ? AND scheduled_time < ? AND scheduled_time + make_interval(mins => duration_minutes) > ?",
			dentistID, activeStatuses, end, start,
		)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var conflicts []models.Appointment
	if err := q.Find(&conflicts).Error; err != nil {
		return err
	}

	if len(conflicts) > 0 {
		return httperr.Business(
			httperr.CodeTimeConflict,
			"dentist already has an appointment at "+conflicts[0].ScheduledTime.Format(time.RFC3339),
		)
	}

	return nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoOverlap(tx, ap.DentistID, ap.ScheduledTime, ap.EndTime(), uuid.Nil); err != nil {
			return err
		}
		return tx.Omit("Patient", "Dentist", "Reminders").Create(ap).Error
	})
}

func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoOverlap(tx, ap.DentistID, ap.ScheduledTime, ap.EndTime(), ap.ID); err != nil {
			return err
		}
		return tx.Omit("Patient", "Dentist", "Reminders").Save(ap).Error
	})
}

// --------------------------------------------------
// Appointment (read / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Dentist").
		First(&ap, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.Business(httperr.CodeAppointmentNotFound, "appointment not found")
		}
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit("Patient", "Dentist", "Reminders").
		Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uuid.UUID,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.Business(httperr.CodeAppointmentNotFound, "appointment not found")
	}
	return nil
}

// --------------------------------------------------
// Conflict / availability reads
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveByDentist(
	ctx context.Context,
	dentistID uuid.UUID,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("dentist_id = ? AND status IN ?", dentistID, activeStatuses).
		Order("scheduled_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListActiveByDentistBetween(
	ctx context.Context,
	dentistID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	// Overlap, not containment: a booking that starts before the
	// window but runs into it still blocks slots.
	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"dentist_id = ? AND status IN ? AND scheduled_time < ? AND scheduled_time + make_interval(mins => duration_minutes) > ?",
			dentistID, activeStatuses, end, start,
		).
		Order("scheduled_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Listing / aggregation
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filters domain.ListFilters,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if filters.PatientID != nil {
		q = q.Where("patient_id = ?", *filters.PatientID)
	}
	if filters.DentistID != nil {
		q = q.Where("dentist_id = ?", *filters.DentistID)
	}
	if filters.Status != nil {
		q = q.Where("status = ?", string(*filters.Status))
	}
	if filters.From != nil {
		q = q.Where("scheduled_time >= ?", *filters.From)
	}
	if filters.To != nil {
		q = q.Where("scheduled_time < ?", *filters.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	perPage := filters.PerPage
	if perPage < 1 {
		perPage = 50
	}

	var apps []models.Appointment
	if err := q.
		Preload("Patient").
		Preload("Dentist").
		Order("scheduled_time ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *AppointmentGormRepository) ListUpcoming(
	ctx context.Context,
	dentistID *uuid.UUID,
	from time.Time,
	to time.Time,
	limit int,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"scheduled_time >= ? AND scheduled_time < ? AND status IN ?",
			from, to,
			[]string{string(domain.StatusScheduled), string(domain.StatusConfirmed)},
		)
	if dentistID != nil {
		q = q.Where("dentist_id = ?", *dentistID)
	}

	var apps []models.Appointment
	if err := q.
		Preload("Patient").
		Preload("Dentist").
		Order("scheduled_time ASC").
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateReminders(
	ctx context.Context,
	reminders []models.AppointmentReminder,
) error {
	if len(reminders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&reminders).Error
}

func (r *AppointmentGormRepository) GetReminderByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.AppointmentReminder, error) {

	var reminder models.AppointmentReminder
	if err := r.db.WithContext(ctx).First(&reminder, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.Business(httperr.CodeReminderNotFound, "reminder not found")
		}
		return nil, err
	}
	return &reminder, nil
}

func (r *AppointmentGormRepository) ListDueReminders(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]models.AppointmentReminder, error) {

	var reminders []models.AppointmentReminder
	if err := r.db.WithContext(ctx).
		Where("sent = ? AND scheduled_for <= ?", false, now).
		Order("scheduled_for ASC").
		Limit(limit).
		Find(&reminders).Error; err != nil {
		return nil, err
	}

	return reminders, nil
}

func (r *AppointmentGormRepository) UpdateReminder(
	ctx context.Context,
	reminder *models.AppointmentReminder,
) error {
	return r.db.WithContext(ctx).Save(reminder).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
