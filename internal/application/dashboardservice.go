package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ericfisherdev/iocpanel/internal/domain/model"
	"github.com/ericfisherdev/iocpanel/internal/domain/port/driven"
)

// Dashboard is everything the landing page shows.
type Dashboard struct {
	Counts   []model.EntityCount
	Status   []model.StatusItem
	Activity []model.ActivityItem
}

// DashboardService aggregates the entity counts and the static status board.
type DashboardService struct {
	entities driven.EntityStore
	board    StatusBoard
	logger   *slog.Logger
}

// NewDashboardService creates a new DashboardService with the required dependencies.
func NewDashboardService(entities driven.EntityStore, board StatusBoard, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		entities: entities,
		board:    board,
		logger:   logger,
	}
}

// Summary counts the enabled rows of every entity kind. A failed count reads as
// zero and never fails the page; the remaining kinds are still counted.
func (s *DashboardService) Summary(ctx context.Context) Dashboard {
	counts := make([]model.EntityCount, 0, len(model.EntityKinds))

	for _, kind := range model.EntityKinds {
		n, err := s.entities.CountEnabled(ctx, kind)
		if err != nil {
			if errors.Is(err, driven.ErrTableMissing) {
				s.logger.Debug("entity table missing, counting as zero", "kind", kind)
			} else {
				s.logger.Warn("entity count failed, counting as zero", "kind", kind, "error", err)
			}
			n = 0
		}
		counts = append(counts, model.EntityCount{Kind: kind, Count: n})
	}

	return Dashboard{
		Counts:   counts,
		Status:   s.board.Status,
		Activity: s.board.Activity,
	}
}
