package repository

import (
	"context"

	"intranet/internal/domain"
)

type CycleRepository interface {
	Create(ctx context.Context, cycle domain.Cycle) error
	GetByID(ctx context.Context, id string) (domain.Cycle, error)
	List(ctx context.Context) ([]domain.Cycle, error)
	Update(ctx context.Context, cycle domain.Cycle) error
	Delete(ctx context.Context, id string) error
}

type PgCycleRepository struct {
	db DBTX
}

func NewPgCycleRepository(db DBTX) *PgCycleRepository {
	return &PgCycleRepository{db: db}
}

func (r *PgCycleRepository) Create(ctx context.Context, cycle domain.Cycle) error {
	const query = `
		INSERT INTO cycles (id, name, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, cycle.ID, cycle.Name, cycle.StartDate, cycle.EndDate, cycle.CreatedAt)
	return translate(err)
}

func (r *PgCycleRepository) GetByID(ctx context.Context, id string) (domain.Cycle, error) {
	const query = `
		SELECT id, name, start_date, end_date, created_at
		FROM cycles
		WHERE id = $1
	`
	var c domain.Cycle
	if err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.StartDate, &c.EndDate, &c.CreatedAt); err != nil {
		return domain.Cycle{}, err
	}
	return c, nil
}

func (r *PgCycleRepository) List(ctx context.Context) ([]domain.Cycle, error) {
	const query = `
		SELECT id, name, start_date, end_date, created_at
		FROM cycles
		ORDER BY start_date DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cycles := []domain.Cycle{}
	for rows.Next() {
		var c domain.Cycle
		if err := rows.Scan(&c.ID, &c.Name, &c.StartDate, &c.EndDate, &c.CreatedAt); err != nil {
			return nil, err
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

func (r *PgCycleRepository) Update(ctx context.Context, cycle domain.Cycle) error {
	const query = `
		UPDATE cycles
		SET name = $2, start_date = $3, end_date = $4
		WHERE id = $1
	`
	return affected(r.db.Exec(ctx, query, cycle.ID, cycle.Name, cycle.StartDate, cycle.EndDate))
}

func (r *PgCycleRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.Exec(ctx, `DELETE FROM cycles WHERE id = $1`, id))
}
