package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"intranet/internal/apperr"
	"intranet/internal/domain"
	"intranet/internal/repository"
)

var (
	ErrInvalidTask     = apperr.Validation("task requires a title")
	ErrInvalidExam     = apperr.Validation("exam requires a title, scheduledAt and a positive durationMinutes")
	ErrInvalidResource = apperr.Validation("resource requires a title, an http(s) url and kind link, document or video")
)

// CourseworkService agrupa tareas, examenes y recursos, todos colgados de un curso.
type CourseworkService struct {
	logger    *zap.Logger
	courses   repository.CourseRepository
	tasks     repository.TaskRepository
	exams     repository.ExamRepository
	resources repository.ResourceRepository
	now       func() time.Time
}

func NewCourseworkService(
	logger *zap.Logger,
	courses repository.CourseRepository,
	tasks repository.TaskRepository,
	exams repository.ExamRepository,
	resources repository.ResourceRepository,
) *CourseworkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseworkService{
		logger:    logger,
		courses:   courses,
		tasks:     tasks,
		exams:     exams,
		resources: resources,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *CourseworkService) requireCourse(ctx context.Context, courseID string) error {
	_, err := s.courses.GetByID(ctx, courseID)
	return repoError(err, ErrCourseNotFound, "could not load course")
}

type TaskInput struct {
	CourseID    string
	Title       string
	Description string
	DueAt       *time.Time
}

func (s *CourseworkService) CreateTask(ctx context.Context, input TaskInput) (domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Task{}, ErrInvalidTask
	}
	if err := s.requireCourse(ctx, input.CourseID); err != nil {
		return domain.Task{}, err
	}
	now := s.now()
	task := domain.Task{
		ID:          uuid.NewString(),
		CourseID:    input.CourseID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		DueAt:       input.DueAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return domain.Task{}, apperr.Internal("could not create task", err)
	}
	s.logger.Info("task created", zap.String("task_id", task.ID), zap.String("course_id", task.CourseID))
	return task, nil
}

func (s *CourseworkService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, repoError(err, ErrTaskNotFound, "could not load task")
	}
	return task, nil
}

func (s *CourseworkService) ListTasks(ctx context.Context, courseID string) ([]domain.Task, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, apperr.Internal("could not list tasks", err)
	}
	return tasks, nil
}

// UpdateTask reemplaza titulo, descripcion y fecha de entrega; el curso no cambia.
func (s *CourseworkService) UpdateTask(ctx context.Context, id string, input TaskInput) (domain.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Task{}, ErrInvalidTask
	}
	task.Title = title
	task.Description = strings.TrimSpace(input.Description)
	task.DueAt = input.DueAt
	task.UpdatedAt = s.now()
	if err := s.tasks.Update(ctx, task); err != nil {
		return domain.Task{}, repoError(err, ErrTaskNotFound, "could not update task")
	}
	return task, nil
}

func (s *CourseworkService) DeleteTask(ctx context.Context, id string) error {
	return repoError(s.tasks.Delete(ctx, id), ErrTaskNotFound, "could not delete task")
}

type ExamInput struct {
	CourseID        string
	Title           string
	Description     string
	ScheduledAt     time.Time
	DurationMinutes int
}

func validExam(input ExamInput) bool {
	return strings.TrimSpace(input.Title) != "" && !input.ScheduledAt.IsZero() && input.DurationMinutes > 0
}

func (s *CourseworkService) CreateExam(ctx context.Context, input ExamInput) (domain.Exam, error) {
	if !validExam(input) {
		return domain.Exam{}, ErrInvalidExam
	}
	if err := s.requireCourse(ctx, input.CourseID); err != nil {
		return domain.Exam{}, err
	}
	now := s.now()
	exam := domain.Exam{
		ID:              uuid.NewString(),
		CourseID:        input.CourseID,
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		ScheduledAt:     input.ScheduledAt.UTC(),
		DurationMinutes: input.DurationMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.exams.Create(ctx, exam); err != nil {
		return domain.Exam{}, apperr.Internal("could not create exam", err)
	}
	s.logger.Info("exam created",
		zap.String("exam_id", exam.ID),
		zap.String("course_id", exam.CourseID),
		zap.Time("scheduled_at", exam.ScheduledAt),
	)
	return exam, nil
}

func (s *CourseworkService) GetExam(ctx context.Context, id string) (domain.Exam, error) {
	exam, err := s.exams.GetByID(ctx, id)
	if err != nil {
		return domain.Exam{}, repoError(err, ErrExamNotFound, "could not load exam")
	}
	return exam, nil
}

func (s *CourseworkService) ListExams(ctx context.Context, courseID string) ([]domain.Exam, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	exams, err := s.exams.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, apperr.Internal("could not list exams", err)
	}
	return exams, nil
}

func (s *CourseworkService) UpdateExam(ctx context.Context, id string, input ExamInput) (domain.Exam, error) {
	exam, err := s.GetExam(ctx, id)
	if err != nil {
		return domain.Exam{}, err
	}
	if !validExam(input) {
		return domain.Exam{}, ErrInvalidExam
	}
	exam.Title = strings.TrimSpace(input.Title)
	exam.Description = strings.TrimSpace(input.Description)
	exam.ScheduledAt = input.ScheduledAt.UTC()
	exam.DurationMinutes = input.DurationMinutes
	exam.UpdatedAt = s.now()
	if err := s.exams.Update(ctx, exam); err != nil {
		return domain.Exam{}, repoError(err, ErrExamNotFound, "could not update exam")
	}
	return exam, nil
}

func (s *CourseworkService) DeleteExam(ctx context.Context, id string) error {
	return repoError(s.exams.Delete(ctx, id), ErrExamNotFound, "could not delete exam")
}

type ResourceInput struct {
	CourseID string
	Title    string
	URL      string
	Kind     string
}

func buildResource(input ResourceInput) (domain.Resource, error) {
	title := strings.TrimSpace(input.Title)
	rawURL := strings.TrimSpace(input.URL)
	kind := domain.ResourceKind(strings.ToLower(strings.TrimSpace(input.Kind)))
	if kind == "" {
		kind = domain.ResourceLink
	}
	if title == "" || !kind.Valid() || !isHTTPURL(rawURL) {
		return domain.Resource{}, ErrInvalidResource
	}
	return domain.Resource{Title: title, URL: rawURL, Kind: kind}, nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func (s *CourseworkService) CreateResource(ctx context.Context, input ResourceInput) (domain.Resource, error) {
	resource, err := buildResource(input)
	if err != nil {
		return domain.Resource{}, err
	}
	if err := s.requireCourse(ctx, input.CourseID); err != nil {
		return domain.Resource{}, err
	}
	now := s.now()
	resource.ID = uuid.NewString()
	resource.CourseID = input.CourseID
	resource.CreatedAt = now
	resource.UpdatedAt = now
	if err := s.resources.Create(ctx, resource); err != nil {
		return domain.Resource{}, apperr.Internal("could not create resource", err)
	}
	s.logger.Info("resource created", zap.String("resource_id", resource.ID), zap.String("course_id", resource.CourseID))
	return resource, nil
}

func (s *CourseworkService) GetResource(ctx context.Context, id string) (domain.Resource, error) {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return domain.Resource{}, repoError(err, ErrResourceNotFound, "could not load resource")
	}
	return resource, nil
}

func (s *CourseworkService) ListResources(ctx context.Context, courseID string) ([]domain.Resource, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	resources, err := s.resources.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, apperr.Internal("could not list resources", err)
	}
	return resources, nil
}

func (s *CourseworkService) UpdateResource(ctx context.Context, id string, input ResourceInput) (domain.Resource, error) {
	existing, err := s.GetResource(ctx, id)
	if err != nil {
		return domain.Resource{}, err
	}
	resource, err := buildResource(input)
	if err != nil {
		return domain.Resource{}, err
	}
	resource.ID = existing.ID
	resource.CourseID = existing.CourseID
	resource.CreatedAt = existing.CreatedAt
	resource.UpdatedAt = s.now()
	if err := s.resources.Update(ctx, resource); err != nil {
		return domain.Resource{}, repoError(err, ErrResourceNotFound, "could not update resource")
	}
	return resource, nil
}

func (s *CourseworkService) DeleteResource(ctx context.Context, id string) error {
	return repoError(s.resources.Delete(ctx, id), ErrResourceNotFound, "could not delete resource")
}
