package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemeta"
)

// Ensure LoggingInspectionService implements pagemeta.InspectionService.
var _ pagemeta.InspectionService = (*LoggingInspectionService)(nil)

// LoggingInspectionService wraps an InspectionService with logging.
type LoggingInspectionService struct {
	next   pagemeta.InspectionService
	logger *slog.Logger
}

// NewLoggingInspectionService creates a new LoggingInspectionService.
func NewLoggingInspectionService(next pagemeta.InspectionService, logger *slog.Logger) *LoggingInspectionService {
	return &LoggingInspectionService{next: next, logger: logger}
}

func (s *LoggingInspectionService) CreateInspection(ctx context.Context, inspection *pagemeta.Inspection) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create inspection",
			"id", inspection.ID,
			"url", inspection.URL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateInspection(ctx, inspection)
}

func (s *LoggingInspectionService) FindInspectionByID(ctx context.Context, id string) (inspection *pagemeta.Inspection, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find inspection",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindInspectionByID(ctx, id)
}

func (s *LoggingInspectionService) FindInspections(ctx context.Context, filter pagemeta.InspectionFilter) (inspections []*pagemeta.Inspection, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find inspections",
			"count", len(inspections),
			"limit", filter.Limit,
			"offset", filter.Offset,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindInspections(ctx, filter)
}

func (s *LoggingInspectionService) DeleteInspection(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete inspection",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteInspection(ctx, id)
}
