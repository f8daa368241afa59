package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/audit"
	"github.com/odontolab/clinic-api/internal/authz"
	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/httperr"
	"github.com/odontolab/clinic-api/internal/lock"
	"github.com/odontolab/clinic-api/internal/models"
)

// UpdatePatch lists exactly the fields an update may touch; nil means
// leave unchanged. Status changes go through UpdateStatus instead.
type UpdatePatch struct {
	ScheduledTime   *time.Time
	DurationMinutes *int
	Reason          *string
	Notes           *string
}

func (p UpdatePatch) reschedules(ap *models.Appointment) bool {
	if p.ScheduledTime != nil && !p.ScheduledTime.Equal(ap.ScheduledTime) {
		return true
	}
	if p.DurationMinutes != nil && *p.DurationMinutes != ap.DurationMinutes {
		return true
	}
	return false
}

type UpdateAppointment struct {
	repo   domain.Repository
	locker lock.DentistLocker
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	locker lock.DentistLocker,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
		now:    time.Now,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
	patch UpdatePatch,
	caller authz.Caller,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.RequireAppointmentAccess(caller, ap.DentistID); err != nil {
		return nil, err
	}

	reschedule := patch.reschedules(ap)

	if patch.ScheduledTime != nil {
		ap.ScheduledTime = *patch.ScheduledTime
	}
	if patch.DurationMinutes != nil {
		ap.DurationMinutes = *patch.DurationMinutes
	}
	if patch.Reason != nil {
		ap.Reason = *patch.Reason
	}
	if patch.Notes != nil {
		ap.Notes = *patch.Notes
	}

	// Time and duration are only re-validated when they actually
	// change; a no-op patch of the same slot must not conflict with
	// itself.
	if !reschedule {
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}
		uc.dispatch(caller, ap)
		return ap, nil
	}

	if err := validateDuration(ap.DurationMinutes); err != nil {
		return nil, err
	}
	if !ap.ScheduledTime.After(uc.now()) {
		return nil, httperr.Business(
			httperr.CodeTimeInPast,
			"scheduled time must be in the future",
		)
	}
	if !domain.IsWithinBusinessHours(ap.ScheduledTime) {
		return nil, httperr.Business(
			httperr.CodeOutsideBusinessHours,
			"appointment must be scheduled during business hours",
		)
	}

	candidate := domain.NewInterval(ap.ScheduledTime, ap.DurationMinutes)

	err = uc.locker.WithDentistLock(ctx, ap.DentistID, func(lockCtx context.Context) error {
		existing, err := uc.repo.ListActiveByDentist(lockCtx, ap.DentistID)
		if err != nil {
			return err
		}

		if conflicts := domain.FindConflicts(existing, candidate, ap.ID); len(conflicts) > 0 {
			return httperr.Business(
				httperr.CodeTimeConflict,
				"dentist already has an appointment at "+conflicts[0].ScheduledTime.Format(time.RFC3339),
			)
		}

		return uc.repo.RescheduleAppointment(lockCtx, ap)
	})
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, httperr.Business(
				httperr.CodeSlotLocked,
				"dentist schedule is being modified, please retry",
			)
		}
		return nil, err
	}

	uc.dispatch(caller, ap)
	return ap, nil
}

func (uc *UpdateAppointment) dispatch(caller authz.Caller, ap *models.Appointment) {
	callerID := caller.ID
	uc.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   audit.ActionAppointmentUpdated,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
}
