package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/authz"
	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
	caller authz.Caller,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.RequireAppointmentAccess(caller, ap.DentistID); err != nil {
		return nil, err
	}

	return ap, nil
}
