package reminder

import (
	"context"
	"time"

	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/models"
)

const defaultDueLimit = 100

// ListDue returns unsent reminders whose fire time has arrived. The
// external dispatcher polls this and reports back through MarkSent.
type ListDue struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListDue(repo domain.Repository) *ListDue {
	return &ListDue{
		repo: repo,
		now:  time.Now,
	}
}

func (uc *ListDue) Execute(ctx context.Context, limit int) ([]models.AppointmentReminder, error) {
	if limit < 1 || limit > defaultDueLimit {
		limit = defaultDueLimit
	}
	return uc.repo.ListDueReminders(ctx, uc.now(), limit)
}
