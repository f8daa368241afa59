package appointment

import (
	"context"
	"time"

	"github.com/odontolab/clinic-api/internal/authz"
	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/httperr"
	"github.com/odontolab/clinic-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{
		repo: repo,
		now:  time.Now,
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	filters domain.ListFilters,
	caller authz.Caller,
) ([]models.Appointment, int64, error) {

	// Role-scoped visibility: a dentist only ever sees their own
	// calendar, whatever filter they asked for; any role outside the
	// three known ones is denied rather than given the full listing.
	switch caller.Role {
	case authz.RoleDentist:
		id := caller.ID
		filters.DentistID = &id
	case authz.RoleAdministrator:
	case authz.RoleReceptionist:
		if filters.DentistID == nil && filters.PatientID == nil {
			// Unfiltered receptionist queries default to the next 30 days.
			if filters.From == nil {
				from := uc.now().Truncate(24 * time.Hour)
				filters.From = &from
			}
			if filters.To == nil {
				to := filters.From.AddDate(0, 0, 30)
				filters.To = &to
			}
		}
	default:
		return nil, 0, httperr.Business(
			httperr.CodeNotAuthorized,
			"you don't have permission to list appointments",
		)
	}

	if filters.PerPage < 1 || filters.PerPage > 100 {
		filters.PerPage = 50
	}

	return uc.repo.ListAppointments(ctx, filters)
}
