package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/audit"
	"github.com/odontolab/clinic-api/internal/authz"
	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/httperr"
	"github.com/odontolab/clinic-api/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
	reason string,
	caller authz.Caller,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.RequireAppointmentAccess(caller, ap.DentistID); err != nil {
		return nil, err
	}

	if !domain.CanBeCancelled(domain.Status(ap.Status)) {
		return nil, httperr.Business(
			httperr.CodeCannotCancel,
			"cannot cancel appointment with status "+ap.Status,
		)
	}

	ap.Status = string(domain.StatusCancelled)
	if reason != "" {
		// Appended, not replaced: prior notes stay intact.
		ap.Notes = strings.TrimSpace(ap.Notes + "\n" + domain.CancellationMarker + " " + reason)
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	callerID := caller.ID
	uc.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   audit.ActionAppointmentCancelled,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
