package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"intranet/internal/domain"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource domain.Resource) error
	GetByID(ctx context.Context, id string) (domain.Resource, error)
	ListByCourse(ctx context.Context, courseID string) ([]domain.Resource, error)
	Update(ctx context.Context, resource domain.Resource) error
	Delete(ctx context.Context, id string) error
}

type PgResourceRepository struct {
	db DBTX
}

func NewPgResourceRepository(db DBTX) *PgResourceRepository {
	return &PgResourceRepository{db: db}
}

const resourceColumns = `id, course_id, title, url, kind, created_at, updated_at`

func (r *PgResourceRepository) Create(ctx context.Context, resource domain.Resource) error {
	const query = `
		INSERT INTO resources (id, course_id, title, url, kind, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		resource.ID,
		resource.CourseID,
		resource.Title,
		resource.URL,
		resource.Kind,
		resource.CreatedAt,
		resource.UpdatedAt,
	)
	return translate(err)
}

func (r *PgResourceRepository) GetByID(ctx context.Context, id string) (domain.Resource, error) {
	return scanResource(r.db.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id))
}

func (r *PgResourceRepository) ListByCourse(ctx context.Context, courseID string) ([]domain.Resource, error) {
	rows, err := r.db.Query(ctx, `SELECT `+resourceColumns+` FROM resources WHERE course_id = $1 ORDER BY created_at DESC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := []domain.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

func (r *PgResourceRepository) Update(ctx context.Context, resource domain.Resource) error {
	const query = `
		UPDATE resources
		SET title = $2, url = $3, kind = $4, updated_at = $5
		WHERE id = $1
	`
	return affected(r.db.Exec(ctx, query, resource.ID, resource.Title, resource.URL, resource.Kind, resource.UpdatedAt))
}

func (r *PgResourceRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id))
}

func scanResource(row pgx.Row) (domain.Resource, error) {
	var res domain.Resource
	if err := row.Scan(&res.ID, &res.CourseID, &res.Title, &res.URL, &res.Kind, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return domain.Resource{}, err
	}
	return res, nil
}
