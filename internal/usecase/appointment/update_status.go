package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/audit"
	"github.com/odontolab/clinic-api/internal/authz"
	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/models"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	id uuid.UUID,
	newStatus domain.Status,
	notes string,
	caller authz.Caller,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.RequireAppointmentAccess(caller, ap.DentistID); err != nil {
		return nil, err
	}

	if err := domain.ValidateTransition(domain.Status(ap.Status), newStatus); err != nil {
		return nil, err
	}

	ap.Status = string(newStatus)
	if notes != "" {
		ap.Notes = notes
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	callerID := caller.ID
	uc.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   audit.ActionAppointmentStatus,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"status": string(newStatus)},
	})

	return ap, nil
}
