package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"intranet/internal/domain"
)

type ExamRepository interface {
	Create(ctx context.Context, exam domain.Exam) error
	GetByID(ctx context.Context, id string) (domain.Exam, error)
	ListByCourse(ctx context.Context, courseID string) ([]domain.Exam, error)
	Update(ctx context.Context, exam domain.Exam) error
	Delete(ctx context.Context, id string) error
}

type PgExamRepository struct {
	db DBTX
}

func NewPgExamRepository(db DBTX) *PgExamRepository {
	return &PgExamRepository{db: db}
}

const examColumns = `id, course_id, title, description, scheduled_at, duration_minutes, created_at, updated_at`

func (r *PgExamRepository) Create(ctx context.Context, exam domain.Exam) error {
	const query = `
		INSERT INTO exams (id, course_id, title, description, scheduled_at, duration_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		exam.ID,
		exam.CourseID,
		exam.Title,
		exam.Description,
		exam.ScheduledAt,
		exam.DurationMinutes,
		exam.CreatedAt,
		exam.UpdatedAt,
	)
	return translate(err)
}

func (r *PgExamRepository) GetByID(ctx context.Context, id string) (domain.Exam, error) {
	return scanExam(r.db.QueryRow(ctx, `SELECT `+examColumns+` FROM exams WHERE id = $1`, id))
}

func (r *PgExamRepository) ListByCourse(ctx context.Context, courseID string) ([]domain.Exam, error) {
	rows, err := r.db.Query(ctx, `SELECT `+examColumns+` FROM exams WHERE course_id = $1 ORDER BY scheduled_at ASC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exams := []domain.Exam{}
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, exam)
	}
	return exams, rows.Err()
}

func (r *PgExamRepository) Update(ctx context.Context, exam domain.Exam) error {
	const query = `
		UPDATE exams
		SET title = $2, description = $3, scheduled_at = $4, duration_minutes = $5, updated_at = $6
		WHERE id = $1
	`
	return affected(r.db.Exec(ctx, query,
		exam.ID,
		exam.Title,
		exam.Description,
		exam.ScheduledAt,
		exam.DurationMinutes,
		exam.UpdatedAt,
	))
}

func (r *PgExamRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id))
}

func scanExam(row pgx.Row) (domain.Exam, error) {
	var e domain.Exam
	err := row.Scan(
		&e.ID,
		&e.CourseID,
		&e.Title,
		&e.Description,
		&e.ScheduledAt,
		&e.DurationMinutes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return domain.Exam{}, err
	}
	return e, nil
}
