package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"intranet/internal/apperr"
	"intranet/internal/domain"
	"intranet/internal/repository"
)

const dateLayout = "2006-01-02"

var ErrInvalidCycle = apperr.Validation("cycle requires a name and startDate <= endDate (YYYY-MM-DD)")

// CycleService administra los periodos academicos.
type CycleService struct {
	logger *zap.Logger
	cycles repository.CycleRepository
}

func NewCycleService(logger *zap.Logger, cycles repository.CycleRepository) *CycleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CycleService{logger: logger, cycles: cycles}
}

type CycleInput struct {
	Name      string
	StartDate string
	EndDate   string
}

func (s *CycleService) Create(ctx context.Context, input CycleInput) (domain.Cycle, error) {
	cycle, err := buildCycle(input)
	if err != nil {
		return domain.Cycle{}, err
	}
	cycle.ID = uuid.NewString()
	cycle.CreatedAt = time.Now().UTC()
	if err := s.cycles.Create(ctx, cycle); err != nil {
		return domain.Cycle{}, apperr.Internal("could not create cycle", err)
	}
	s.logger.Info("cycle created", zap.String("cycle_id", cycle.ID), zap.String("name", cycle.Name))
	return cycle, nil
}

func (s *CycleService) Get(ctx context.Context, id string) (domain.Cycle, error) {
	cycle, err := s.cycles.GetByID(ctx, id)
	if err != nil {
		return domain.Cycle{}, repoError(err, ErrCycleNotFound, "could not load cycle")
	}
	return cycle, nil
}

func (s *CycleService) List(ctx context.Context) ([]domain.Cycle, error) {
	cycles, err := s.cycles.List(ctx)
	if err != nil {
		return nil, apperr.Internal("could not list cycles", err)
	}
	return cycles, nil
}

func (s *CycleService) Update(ctx context.Context, id string, input CycleInput) (domain.Cycle, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return domain.Cycle{}, err
	}
	cycle, err := buildCycle(input)
	if err != nil {
		return domain.Cycle{}, err
	}
	cycle.ID = existing.ID
	cycle.CreatedAt = existing.CreatedAt
	if err := s.cycles.Update(ctx, cycle); err != nil {
		return domain.Cycle{}, repoError(err, ErrCycleNotFound, "could not update cycle")
	}
	return cycle, nil
}

func (s *CycleService) Delete(ctx context.Context, id string) error {
	return repoError(s.cycles.Delete(ctx, id), ErrCycleNotFound, "could not delete cycle")
}

func buildCycle(input CycleInput) (domain.Cycle, error) {
	name := strings.TrimSpace(input.Name)
	start, errStart := time.Parse(dateLayout, strings.TrimSpace(input.StartDate))
	end, errEnd := time.Parse(dateLayout, strings.TrimSpace(input.EndDate))
	if name == "" || errStart != nil || errEnd != nil || end.Before(start) {
		return domain.Cycle{}, ErrInvalidCycle
	}
	return domain.Cycle{Name: name, StartDate: start, EndDate: end}, nil
}
