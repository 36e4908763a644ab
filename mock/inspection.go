package mock

import (
	"context"

	"github.com/fwojciec/pagemeta"
)

var _ pagemeta.InspectionService = (*InspectionService)(nil)

// InspectionService is a mock implementation of pagemeta.InspectionService.
type InspectionService struct {
	CreateInspectionFn   func(ctx context.Context, inspection *pagemeta.Inspection) error
	FindInspectionByIDFn func(ctx context.Context, id string) (*pagemeta.Inspection, error)
	FindInspectionsFn    func(ctx context.Context, filter pagemeta.InspectionFilter) ([]*pagemeta.Inspection, error)
	DeleteInspectionFn   func(ctx context.Context, id string) error
}

func (s *InspectionService) CreateInspection(ctx context.Context, inspection *pagemeta.Inspection) error {
	return s.CreateInspectionFn(ctx, inspection)
}

func (s *InspectionService) FindInspectionByID(ctx context.Context, id string) (*pagemeta.Inspection, error) {
	return s.FindInspectionByIDFn(ctx, id)
}

func (s *InspectionService) FindInspections(ctx context.Context, filter pagemeta.InspectionFilter) ([]*pagemeta.Inspection, error) {
	return s.FindInspectionsFn(ctx, filter)
}

func (s *InspectionService) DeleteInspection(ctx context.Context, id string) error {
	return s.DeleteInspectionFn(ctx, id)
}
