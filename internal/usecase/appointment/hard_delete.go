package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/audit"
	"github.com/odontolab/clinic-api/internal/authz"
	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/httperr"
)

// HardDeleteAppointment physically removes a record. Administrative
// escape hatch only; normal flow cancels instead of deleting.
type HardDeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewHardDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *HardDeleteAppointment {
	return &HardDeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *HardDeleteAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
	caller authz.Caller,
) error {

	if !authz.CanHardDelete(caller) {
		return httperr.Business(
			httperr.CodeNotAuthorized,
			"only administrators may delete appointments",
		)
	}

	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}

	callerID := caller.ID
	uc.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   audit.ActionAppointmentHardDeleted,
		Entity:   "appointment",
		EntityID: &id,
	})

	return nil
}
