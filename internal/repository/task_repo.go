package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"intranet/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) error
	GetByID(ctx context.Context, id string) (domain.Task, error)
	ListByCourse(ctx context.Context, courseID string) ([]domain.Task, error)
	Update(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, id string) error
}

type PgTaskRepository struct {
	db DBTX
}

func NewPgTaskRepository(db DBTX) *PgTaskRepository {
	return &PgTaskRepository{db: db}
}

const taskColumns = `id, course_id, title, description, due_at, created_at, updated_at`

func (r *PgTaskRepository) Create(ctx context.Context, task domain.Task) error {
	const query = `
		INSERT INTO tasks (id, course_id, title, description, due_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		task.ID,
		task.CourseID,
		task.Title,
		task.Description,
		task.DueAt,
		task.CreatedAt,
		task.UpdatedAt,
	)
	return translate(err)
}

func (r *PgTaskRepository) GetByID(ctx context.Context, id string) (domain.Task, error) {
	return scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
}

func (r *PgTaskRepository) ListByCourse(ctx context.Context, courseID string) ([]domain.Task, error) {
	const query = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE course_id = $1
		ORDER BY due_at ASC NULLS LAST, created_at ASC
	`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *PgTaskRepository) Update(ctx context.Context, task domain.Task) error {
	const query = `
		UPDATE tasks
		SET title = $2, description = $3, due_at = $4, updated_at = $5
		WHERE id = $1
	`
	return affected(r.db.Exec(ctx, query, task.ID, task.Title, task.Description, task.DueAt, task.UpdatedAt))
}

func (r *PgTaskRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id))
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var t domain.Task
	if err := row.Scan(&t.ID, &t.CourseID, &t.Title, &t.Description, &t.DueAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}
