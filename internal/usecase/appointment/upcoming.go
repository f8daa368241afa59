package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/authz"
	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/models"
)

const (
	defaultUpcomingDays  = 7
	defaultUpcomingLimit = 50
)

type ListUpcoming struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListUpcoming(repo domain.Repository) *ListUpcoming {
	return &ListUpcoming{
		repo: repo,
		now:  time.Now,
	}
}

func (uc *ListUpcoming) Execute(
	ctx context.Context,
	daysAhead int,
	caller authz.Caller,
) ([]models.Appointment, error) {

	if daysAhead < 1 {
		daysAhead = defaultUpcomingDays
	}

	var dentistID *uuid.UUID
	if caller.Role == authz.RoleDentist {
		id := caller.ID
		dentistID = &id
	}

	from := uc.now()
	to := from.AddDate(0, 0, daysAhead)

	return uc.repo.ListUpcoming(ctx, dentistID, from, to, defaultUpcomingLimit)
}
