package appointment

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/authz"
	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	"github.com/odontolab/clinic-api/internal/httperr"
)

type Stats struct {
	TotalAppointments int64          `json:"total_appointments"`
	ByStatus          map[string]int `json:"by_status"`
	UpcomingCount     int            `json:"upcoming_count"`
	CompletionRate    float64        `json:"completion_rate"`
	NoShowRate        float64        `json:"no_show_rate"`
	TotalPatients     int            `json:"total_patients"`
}

type GetStats struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetStats(repo domain.Repository) *GetStats {
	return &GetStats{
		repo: repo,
		now:  time.Now,
	}
}

func (uc *GetStats) Execute(
	ctx context.Context,
	from *time.Time,
	to *time.Time,
	caller authz.Caller,
) (*Stats, error) {

	if !authz.CanViewStats(caller) {
		return nil, httperr.Business(
			httperr.CodeNotAuthorized,
			"you don't have permission to view statistics",
		)
	}

	appointments, total, err := uc.repo.ListAppointments(ctx, domain.ListFilters{
		From:    from,
		To:      to,
		Page:    1,
		PerPage: 10000, // full scan for aggregation
	})
	if err != nil {
		return nil, err
	}

	byStatus := map[string]int{}
	uniquePatients := map[uuid.UUID]struct{}{}
	completed := 0
	noShow := 0
	upcoming := 0
	now := uc.now()

	for _, ap := range appointments {
		byStatus[ap.Status]++
		uniquePatients[ap.PatientID] = struct{}{}

		switch domain.Status(ap.Status) {
		case domain.StatusCompleted:
			completed++
		case domain.StatusNoShow:
			noShow++
		}

		if ap.ScheduledTime.After(now) && !domain.IsTerminal(domain.Status(ap.Status)) {
			upcoming++
		}
	}

	finished := completed + noShow
	var completionRate, noShowRate float64
	if finished > 0 {
		completionRate = round2(float64(completed) / float64(finished) * 100)
		noShowRate = round2(float64(noShow) / float64(finished) * 100)
	}

	return &Stats{
		TotalAppointments: total,
		ByStatus:          byStatus,
		UpcomingCount:     upcoming,
		CompletionRate:    completionRate,
		NoShowRate:        noShowRate,
		TotalPatients:     len(uniquePatients),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
