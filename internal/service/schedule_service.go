package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"intranet/internal/apperr"
	"intranet/internal/domain"
	"intranet/internal/metrics"
	"intranet/internal/repository"
)

var (
	ErrInvalidDay      = apperr.Validation("dayOfWeek must be one of LUNES, MARTES, MIERCOLES, JUEVES, VIERNES, SABADO, DOMINGO")
	ErrInvalidTime     = apperr.Validation("startTime and endTime must be HH:MM")
	ErrInvalidRange    = apperr.Validation("startTime must be before endTime")
	ErrInvalidModality = apperr.Validation("modality must be PRESENCIAL, VIRTUAL or HIBRIDO")
	ErrScheduleOverlap = apperr.Conflict("schedule overlaps an existing timeslot")
)

// ScheduleService valida y persiste los bloques semanales de cada curso.
// Ningun par de horarios del mismo curso y dia puede solaparse.
type ScheduleService struct {
	logger    *zap.Logger
	schedules repository.ScheduleRepository
	courses   repository.CourseRepository
	cycles    repository.CycleRepository
	now       func() time.Time
}

func NewScheduleService(logger *zap.Logger, schedules repository.ScheduleRepository, courses repository.CourseRepository, cycles repository.CycleRepository) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		logger:    logger,
		schedules: schedules,
		courses:   courses,
		cycles:    cycles,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type ScheduleInput struct {
	CourseID  string
	DayOfWeek string
	StartTime string
	EndTime   string
	Room      string
	Modality  string
	CycleID   *string
}

// ScheduleUpdateInput solo modifica los campos presentes.
type ScheduleUpdateInput struct {
	CourseID  *string
	DayOfWeek *string
	StartTime *string
	EndTime   *string
	Room      *string
	Modality  *string
	CycleID   *string
}

// CheckConflict devuelve el primer horario del curso en ese dia que se solapa
// con [start, end), ignorando excludeID. nil significa sin conflicto.
func (s *ScheduleService) CheckConflict(ctx context.Context, courseID, day string, start, end domain.ClockTime, excludeID string) (*domain.Schedule, error) {
	dayOfWeek, ok := domain.ParseDayOfWeek(day)
	if !ok {
		return nil, ErrInvalidDay
	}
	return findConflict(ctx, s.schedules, courseID, dayOfWeek, start, end, excludeID)
}

func findConflict(ctx context.Context, repo repository.ScheduleRepository, courseID string, day domain.DayOfWeek, start, end domain.ClockTime, excludeID string) (*domain.Schedule, error) {
	candidates, err := repo.ListByCourseAndDay(ctx, courseID, day, excludeID)
	if err != nil {
		return nil, repoError(err, ErrCourseNotFound, "could not load schedules")
	}
	for i := range candidates {
		if candidates[i].Overlaps(start, end) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

func (s *ScheduleService) Create(ctx context.Context, input ScheduleInput) (domain.Schedule, error) {
	schedule, start, end, err := s.buildSchedule(ctx, input)
	if err != nil {
		return domain.Schedule{}, err
	}
	now := s.now()
	schedule.ID = uuid.NewString()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now

	err = s.schedules.WithTx(ctx, func(repo repository.ScheduleRepository) error {
		if err := s.guard(ctx, repo, schedule, start, end); err != nil {
			return err
		}
		if err := repo.Create(ctx, schedule); err != nil {
			return apperr.Internal("could not create schedule", err)
		}
		return nil
	})
	if err != nil {
		return domain.Schedule{}, err
	}
	s.logger.Info("schedule created",
		zap.String("schedule_id", schedule.ID),
		zap.String("course_id", schedule.CourseID),
		zap.String("day", string(schedule.DayOfWeek)),
	)
	return schedule, nil
}

func (s *ScheduleService) Update(ctx context.Context, id string, input ScheduleUpdateInput) (domain.Schedule, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return domain.Schedule{}, err
	}

	merged := ScheduleInput{
		CourseID:  existing.CourseID,
		DayOfWeek: string(existing.DayOfWeek),
		StartTime: existing.StartTime,
		EndTime:   existing.EndTime,
		Room:      existing.Room,
		Modality:  string(existing.Modality),
		CycleID:   existing.CycleID,
	}
	if input.CourseID != nil {
		merged.CourseID = *input.CourseID
	}
	if input.DayOfWeek != nil {
		merged.DayOfWeek = *input.DayOfWeek
	}
	if input.StartTime != nil {
		merged.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		merged.EndTime = *input.EndTime
	}
	if input.Room != nil {
		merged.Room = *input.Room
	}
	if input.Modality != nil {
		merged.Modality = *input.Modality
	}
	if input.CycleID != nil {
		merged.CycleID = input.CycleID
	}

	schedule, start, end, err := s.buildSchedule(ctx, merged)
	if err != nil {
		return domain.Schedule{}, err
	}
	schedule.ID = existing.ID
	schedule.CreatedAt = existing.CreatedAt
	schedule.UpdatedAt = s.now()

	slotChanged := schedule.CourseID != existing.CourseID ||
		schedule.DayOfWeek != existing.DayOfWeek ||
		schedule.StartTime != existing.StartTime ||
		schedule.EndTime != existing.EndTime

	err = s.schedules.WithTx(ctx, func(repo repository.ScheduleRepository) error {
		if slotChanged {
			if err := s.guard(ctx, repo, schedule, start, end); err != nil {
				return err
			}
		}
		if err := repo.Update(ctx, schedule); err != nil {
			return repoError(err, ErrScheduleNotFound, "could not update schedule")
		}
		return nil
	})
	if err != nil {
		return domain.Schedule{}, err
	}
	return schedule, nil
}

// guard bloquea el curso y rechaza el horario si se solapa con otro del mismo dia.
// Debe ejecutarse dentro de la transaccion que luego escribe.
func (s *ScheduleService) guard(ctx context.Context, repo repository.ScheduleRepository, schedule domain.Schedule, start, end domain.ClockTime) error {
	if err := repo.LockCourse(ctx, schedule.CourseID); err != nil {
		return repoError(err, ErrCourseNotFound, "could not lock course")
	}
	conflict, err := findConflict(ctx, repo, schedule.CourseID, schedule.DayOfWeek, start, end, schedule.ID)
	if err != nil {
		return err
	}
	if conflict != nil {
		metrics.ScheduleConflicts.Inc()
		s.logger.Info("schedule conflict",
			zap.String("course_id", schedule.CourseID),
			zap.String("day", string(schedule.DayOfWeek)),
			zap.String("conflicting_id", conflict.ID),
		)
		return &apperr.Error{
			Kind:    ErrScheduleOverlap.Kind,
			Message: ErrScheduleOverlap.Message,
			Err:     fmt.Errorf("conflicts with %s %s-%s", conflict.ID, conflict.StartTime, conflict.EndTime),
		}
	}
	return nil
}

func (s *ScheduleService) Get(ctx context.Context, id string) (domain.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return domain.Schedule{}, repoError(err, ErrScheduleNotFound, "could not load schedule")
	}
	return schedule, nil
}

func (s *ScheduleService) ListByCourse(ctx context.Context, courseID string) ([]domain.Schedule, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, repoError(err, ErrCourseNotFound, "could not load course")
	}
	schedules, err := s.schedules.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, repoError(err, ErrCourseNotFound, "could not list schedules")
	}
	return schedules, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	return repoError(s.schedules.Delete(ctx, id), ErrScheduleNotFound, "could not delete schedule")
}

func (s *ScheduleService) buildSchedule(ctx context.Context, input ScheduleInput) (domain.Schedule, domain.ClockTime, domain.ClockTime, error) {
	courseID := strings.TrimSpace(input.CourseID)
	if courseID == "" {
		return domain.Schedule{}, 0, 0, apperr.Validation("courseId is required")
	}
	day, ok := domain.ParseDayOfWeek(input.DayOfWeek)
	if !ok {
		return domain.Schedule{}, 0, 0, ErrInvalidDay
	}
	start, errStart := domain.ParseClockTime(input.StartTime)
	end, errEnd := domain.ParseClockTime(input.EndTime)
	if errStart != nil || errEnd != nil {
		return domain.Schedule{}, 0, 0, ErrInvalidTime
	}
	if start >= end {
		return domain.Schedule{}, 0, 0, ErrInvalidRange
	}
	modality, ok := domain.ParseModality(input.Modality)
	if !ok {
		return domain.Schedule{}, 0, 0, ErrInvalidModality
	}
	cycleID, err := resolveCycle(ctx, s.cycles, input.CycleID)
	if err != nil {
		return domain.Schedule{}, 0, 0, err
	}

	return domain.Schedule{
		CourseID:  courseID,
		CycleID:   cycleID,
		DayOfWeek: day,
		StartTime: start.String(),
		EndTime:   end.String(),
		Room:      strings.TrimSpace(input.Room),
		Modality:  modality,
	}, start, end, nil
}
