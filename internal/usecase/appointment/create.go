package appointment

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/audit"
	"github.com/odontolab/clinic-api/internal/authz"
	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/httperr"
	"github.com/odontolab/clinic-api/internal/lock"
	"github.com/odontolab/clinic-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	PatientID uuid.UUID
	DentistID uuid.UUID

	ScheduledTime   time.Time
	DurationMinutes int

	Reason string
	Notes  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	locker lock.DentistLocker
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	locker lock.DentistLocker,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
		now:    time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
	caller authz.Caller,
) (*models.Appointment, error) {

	if err := authz.RequireAppointmentAccess(caller, in.DentistID); err != nil {
		return nil, err
	}

	if err := validateDuration(in.DurationMinutes); err != nil {
		return nil, err
	}

	now := uc.now()
	if !in.ScheduledTime.After(now) {
		return nil, httperr.Business(
			httperr.CodeTimeInPast,
			"scheduled time must be in the future",
		)
	}

	if _, err := uc.repo.GetPatientByID(ctx, in.PatientID); err != nil {
		return nil, err
	}

	dentist, err := uc.repo.GetUserByID(ctx, in.DentistID)
	if err != nil {
		return nil, err
	}
	if dentist.Role != string(authz.RoleDentist) && dentist.Role != string(authz.RoleAdministrator) {
		return nil, httperr.Business(
			httperr.CodeNotADentist,
			"specified user is not a dentist",
		)
	}

	if !domain.IsWithinBusinessHours(in.ScheduledTime) {
		return nil, httperr.Business(
			httperr.CodeOutsideBusinessHours,
			"appointment must be scheduled during business hours (Monday-Friday 8:00-18:00, Saturday 8:00-13:00)",
		)
	}

	creatorID := caller.ID
	ap := &models.Appointment{
		PatientID:       in.PatientID,
		DentistID:       in.DentistID,
		CreatedBy:       &creatorID,
		ScheduledTime:   in.ScheduledTime,
		DurationMinutes: in.DurationMinutes,
		Status:          string(domain.InitialStatus()),
		Reason:          in.Reason,
		Notes:           in.Notes,
	}

	candidate := domain.NewInterval(in.ScheduledTime, in.DurationMinutes)

	// Check-then-insert is serialized per dentist; bookings for other
	// dentists proceed in parallel.
	err = uc.locker.WithDentistLock(ctx, in.DentistID, func(lockCtx context.Context) error {
		existing, err := uc.repo.ListActiveByDentist(lockCtx, in.DentistID)
		if err != nil {
			return err
		}

		if conflicts := domain.FindConflicts(existing, candidate, uuid.Nil); len(conflicts) > 0 {
			return httperr.Business(
				httperr.CodeTimeConflict,
				"dentist already has an appointment at "+conflicts[0].ScheduledTime.Format(time.RFC3339),
			)
		}

		return uc.repo.CreateAppointment(lockCtx, ap)
	})
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, httperr.Business(
				httperr.CodeSlotLocked,
				"dentist schedule is being modified, please retry",
			)
		}
		if httperr.IsBusiness(err, httperr.CodeTimeConflict) {
			uc.audit.Dispatch(audit.Event{
				UserID: &creatorID,
				Action: audit.ActionAppointmentConflict,
				Entity: "appointment",
				Metadata: map[string]any{
					"dentist_id": in.DentistID,
					"start":      in.ScheduledTime,
				},
			})
		}
		return nil, err
	}

	// The booking is already committed at this point; a failed
	// reminder insert must not surface as a failed create.
	reminders := domain.PlanReminders(ap, now)
	if err := uc.repo.CreateReminders(ctx, reminders); err != nil {
		log.Printf("failed to create reminders for appointment %s: %v", ap.ID, err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &creatorID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func validateDuration(minutes int) error {
	if minutes < 5 || minutes > 480 || minutes%5 != 0 {
		return httperr.Business(
			httperr.CodeInvalidDuration,
			"duration must be between 5 and 480 minutes in multiples of 5",
		)
	}
	return nil
}
