package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"intranet/internal/domain"
)

type CourseRepository interface {
	Create(ctx context.Context, course domain.Course) error
	GetByID(ctx context.Context, id string) (domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	ListByProfessor(ctx context.Context, professorID string) ([]domain.Course, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Course, error)
	Update(ctx context.Context, course domain.Course) error
	Delete(ctx context.Context, id string) error
	Enroll(ctx context.Context, enrollment domain.Enrollment) error
	Unenroll(ctx context.Context, courseID, studentID string) error
	ListStudents(ctx context.Context, courseID string) ([]domain.User, error)
}

type PgCourseRepository struct {
	db DBTX
}

func NewPgCourseRepository(db DBTX) *PgCourseRepository {
	return &PgCourseRepository{db: db}
}

const courseColumns = `c.id, c.code, c.name, c.description, c.professor_id, c.cycle_id, c.created_at, c.updated_at`

func (r *PgCourseRepository) Create(ctx context.Context, course domain.Course) error {
	const query = `
		INSERT INTO courses (id, code, name, description, professor_id, cycle_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		course.ID,
		course.Code,
		course.Name,
		course.Description,
		course.ProfessorID,
		course.CycleID,
		course.CreatedAt,
		course.UpdatedAt,
	)
	return translate(err)
}

func (r *PgCourseRepository) GetByID(ctx context.Context, id string) (domain.Course, error) {
	row := r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses c WHERE c.id = $1`, id)
	return scanCourse(row)
}

func (r *PgCourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses c ORDER BY c.name ASC`)
}

func (r *PgCourseRepository) ListByProfessor(ctx context.Context, professorID string) ([]domain.Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses c WHERE c.professor_id = $1 ORDER BY c.name ASC`, professorID)
}

func (r *PgCourseRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Course, error) {
	const query = `
		SELECT ` + courseColumns + `
		FROM courses c
		JOIN enrollments e ON e.course_id = c.id
		WHERE e.student_id = $1
		ORDER BY c.name ASC
	`
	return r.list(ctx, query, studentID)
}

func (r *PgCourseRepository) Update(ctx context.Context, course domain.Course) error {
	const query = `
		UPDATE courses
		SET code = $2, name = $3, description = $4, professor_id = $5, cycle_id = $6, updated_at = $7
		WHERE id = $1
	`
	return affected(r.db.Exec(ctx, query,
		course.ID,
		course.Code,
		course.Name,
		course.Description,
		course.ProfessorID,
		course.CycleID,
		course.UpdatedAt,
	))
}

func (r *PgCourseRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id))
}

func (r *PgCourseRepository) Enroll(ctx context.Context, enrollment domain.Enrollment) error {
	const query = `
		INSERT INTO enrollments (course_id, student_id, created_at)
		VALUES ($1, $2, $3)
	`
	createdAt := enrollment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, query, enrollment.CourseID, enrollment.StudentID, createdAt)
	return translate(err)
}

func (r *PgCourseRepository) Unenroll(ctx context.Context, courseID, studentID string) error {
	return affected(r.db.Exec(ctx, `DELETE FROM enrollments WHERE course_id = $1 AND student_id = $2`, courseID, studentID))
}

func (r *PgCourseRepository) ListStudents(ctx context.Context, courseID string) ([]domain.User, error) {
	const query = `
		SELECT u.id, u.email, u.name, u.role, u.created_at, u.updated_at
		FROM users u
		JOIN enrollments e ON e.student_id = u.id
		WHERE e.course_id = $1
		ORDER BY u.name ASC
	`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, u)
	}
	return students, rows.Err()
}

func (r *PgCourseRepository) list(ctx context.Context, query string, args ...any) ([]domain.Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []domain.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func scanCourse(row pgx.Row) (domain.Course, error) {
	var c domain.Course
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Name,
		&c.Description,
		&c.ProfessorID,
		&c.CycleID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return domain.Course{}, err
	}
	return c, nil
}
