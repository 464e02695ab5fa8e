package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"intranet/internal/apperr"
	"intranet/internal/domain"
	"intranet/internal/repository"
)

var (
	ErrInvalidCourse      = apperr.Validation("course requires code and name")
	ErrCourseCodeTaken    = apperr.Conflict("course code already exists")
	ErrNotAProfessor      = apperr.Validation("professorId must reference a professor")
	ErrNotAStudent        = apperr.Validation("studentId must reference a student")
	ErrAlreadyEnrolled    = apperr.Conflict("student already enrolled")
	ErrEnrollmentNotFound = apperr.NotFound("enrollment not found")
)

// CourseService administra cursos y matriculas.
type CourseService struct {
	logger  *zap.Logger
	courses repository.CourseRepository
	users   repository.UserRepository
	cycles  repository.CycleRepository
}

func NewCourseService(logger *zap.Logger, courses repository.CourseRepository, users repository.UserRepository, cycles repository.CycleRepository) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		logger:  logger,
		courses: courses,
		users:   users,
		cycles:  cycles,
	}
}

type CourseInput struct {
	Code        string
	Name        string
	Description string
	ProfessorID string
	CycleID     *string
}

func (s *CourseService) Create(ctx context.Context, input CourseInput) (domain.Course, error) {
	course, err := s.buildCourse(ctx, input)
	if err != nil {
		return domain.Course{}, err
	}
	now := time.Now().UTC()
	course.ID = uuid.NewString()
	course.CreatedAt = now
	course.UpdatedAt = now
	if err := s.courses.Create(ctx, course); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Course{}, ErrCourseCodeTaken
		}
		return domain.Course{}, apperr.Internal("could not create course", err)
	}
	s.logger.Info("course created",
		zap.String("course_id", course.ID),
		zap.String("code", course.Code),
		zap.String("professor_id", course.ProfessorID),
	)
	return course, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (domain.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return domain.Course{}, repoError(err, ErrCourseNotFound, "could not load course")
	}
	return course, nil
}

// ListForUser devuelve los cursos que dicta un profesor o en los que esta
// matriculado un estudiante. all solo tiene efecto para profesores.
func (s *CourseService) ListForUser(ctx context.Context, cred domain.Credential, all bool) ([]domain.Course, error) {
	var (
		courses []domain.Course
		err     error
	)
	switch {
	case cred.Role == domain.RoleProfessor && all:
		courses, err = s.courses.List(ctx)
	case cred.Role == domain.RoleProfessor:
		courses, err = s.courses.ListByProfessor(ctx, cred.UserID)
	default:
		courses, err = s.courses.ListByStudent(ctx, cred.UserID)
	}
	if err != nil {
		return nil, apperr.Internal("could not list courses", err)
	}
	return courses, nil
}

func (s *CourseService) Update(ctx context.Context, id string, input CourseInput) (domain.Course, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return domain.Course{}, err
	}
	if strings.TrimSpace(input.ProfessorID) == "" {
		input.ProfessorID = existing.ProfessorID
	}
	course, err := s.buildCourse(ctx, input)
	if err != nil {
		return domain.Course{}, err
	}
	course.ID = existing.ID
	course.CreatedAt = existing.CreatedAt
	course.UpdatedAt = time.Now().UTC()
	if err := s.courses.Update(ctx, course); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Course{}, ErrCourseCodeTaken
		}
		return domain.Course{}, repoError(err, ErrCourseNotFound, "could not update course")
	}
	return course, nil
}

// Delete borra el curso con sus tareas, examenes, recursos, horarios y matriculas.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		return repoError(err, ErrCourseNotFound, "could not delete course")
	}
	s.logger.Info("course deleted", zap.String("course_id", id))
	return nil
}

func (s *CourseService) Enroll(ctx context.Context, courseID, studentID string) (domain.Enrollment, error) {
	if _, err := s.Get(ctx, courseID); err != nil {
		return domain.Enrollment{}, err
	}
	student, err := s.users.GetByID(ctx, strings.TrimSpace(studentID))
	if err != nil {
		return domain.Enrollment{}, repoError(err, ErrUserNotFound, "could not load student")
	}
	if student.Role != domain.RoleStudent {
		return domain.Enrollment{}, ErrNotAStudent
	}

	enrollment := domain.Enrollment{
		CourseID:  courseID,
		StudentID: student.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.courses.Enroll(ctx, enrollment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Enrollment{}, ErrAlreadyEnrolled
		}
		return domain.Enrollment{}, apperr.Internal("could not enroll student", err)
	}
	s.logger.Info("student enrolled", zap.String("course_id", courseID), zap.String("student_id", student.ID))
	return enrollment, nil
}

func (s *CourseService) Unenroll(ctx context.Context, courseID, studentID string) error {
	return repoError(s.courses.Unenroll(ctx, courseID, studentID), ErrEnrollmentNotFound, "could not unenroll student")
}

func (s *CourseService) ListStudents(ctx context.Context, courseID string) ([]domain.User, error) {
	if _, err := s.Get(ctx, courseID); err != nil {
		return nil, err
	}
	students, err := s.courses.ListStudents(ctx, courseID)
	if err != nil {
		return nil, apperr.Internal("could not list students", err)
	}
	return students, nil
}

func (s *CourseService) buildCourse(ctx context.Context, input CourseInput) (domain.Course, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return domain.Course{}, ErrInvalidCourse
	}

	professor, err := s.users.GetByID(ctx, strings.TrimSpace(input.ProfessorID))
	if err != nil {
		return domain.Course{}, repoError(err, ErrUserNotFound, "could not load professor")
	}
	if professor.Role != domain.RoleProfessor {
		return domain.Course{}, ErrNotAProfessor
	}

	cycleID, err := resolveCycle(ctx, s.cycles, input.CycleID)
	if err != nil {
		return domain.Course{}, err
	}

	return domain.Course{
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		ProfessorID: professor.ID,
		CycleID:     cycleID,
	}, nil
}

// resolveCycle normaliza un cycleId opcional y verifica que exista.
func resolveCycle(ctx context.Context, cycles repository.CycleRepository, cycleID *string) (*string, error) {
	if cycleID == nil || strings.TrimSpace(*cycleID) == "" {
		return nil, nil
	}
	id := strings.TrimSpace(*cycleID)
	if _, err := cycles.GetByID(ctx, id); err != nil {
		return nil, repoError(err, ErrCycleNotFound, "could not load cycle")
	}
	return &id, nil
}
