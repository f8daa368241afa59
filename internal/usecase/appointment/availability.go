package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/httperr"
)

type AvailabilityInput struct {
	DentistID uuid.UUID
	Date      time.Time

	StartHour           int // default 8
	EndHour             int // default 18
	SlotDurationMinutes int // default 30
}

type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]domain.TimeSlot, error) {

	if in.StartHour == 0 {
		in.StartHour = domain.DefaultWorkStartHour
	}
	if in.EndHour == 0 {
		in.EndHour = domain.DefaultWorkEndHour
	}
	if in.SlotDurationMinutes == 0 {
		in.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}

	// Query parameters reach this point unvalidated; a negative slot
	// duration would turn the slot walk into an unbounded loop.
	if in.StartHour < 0 || in.EndHour > 24 || in.StartHour >= in.EndHour {
		return nil, httperr.Business(
			httperr.CodeInvalidAvailability,
			"start_hour and end_hour must form a window within 0-24",
		)
	}
	windowMinutes := (in.EndHour - in.StartHour) * 60
	if in.SlotDurationMinutes < 1 || in.SlotDurationMinutes > windowMinutes {
		return nil, httperr.Business(
			httperr.CodeInvalidAvailability,
			"slot duration must be positive and fit the requested window",
		)
	}

	loc := in.Date.Location()
	windowStart := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), in.StartHour, 0, 0, 0, loc)
	windowEnd := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), in.EndHour, 0, 0, 0, loc)

	// Single fetch; every slot is classified against this set in
	// memory.
	existing, err := uc.repo.ListActiveByDentistBetween(ctx, in.DentistID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	slots := domain.BuildDaySlots(
		in.Date,
		in.StartHour,
		in.EndHour,
		time.Duration(in.SlotDurationMinutes)*time.Minute,
		existing,
	)

	return slots, nil
}
