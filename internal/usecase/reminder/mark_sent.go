package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/audit"
	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/httperr"
	"github.com/odontolab/clinic-api/internal/models"
)

type MarkSent struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewMarkSent(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *MarkSent {
	return &MarkSent{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute flips sent exactly once; a reminder already sent stays
// immutable.
func (uc *MarkSent) Execute(
	ctx context.Context,
	id uuid.UUID,
) (*models.AppointmentReminder, error) {

	reminder, err := uc.repo.GetReminderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if reminder.Sent {
		return nil, httperr.Business(
			httperr.CodeAlreadySent,
			"reminder has already been sent",
		)
	}

	now := uc.now()
	reminder.Sent = true
	reminder.SentAt = &now

	if err := uc.repo.UpdateReminder(ctx, reminder); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionReminderSent,
		Entity:   "appointment_reminder",
		EntityID: &reminder.ID,
	})

	return reminder, nil
}
