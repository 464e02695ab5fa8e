package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"intranet/internal/domain"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule domain.Schedule) error
	GetByID(ctx context.Context, id string) (domain.Schedule, error)
	ListByCourse(ctx context.Context, courseID string) ([]domain.Schedule, error)
	// ListByCourseAndDay devuelve los horarios del curso en ese dia, omitiendo excludeID si no es vacio.
	ListByCourseAndDay(ctx context.Context, courseID string, day domain.DayOfWeek, excludeID string) ([]domain.Schedule, error)
	Update(ctx context.Context, schedule domain.Schedule) error
	Delete(ctx context.Context, id string) error
	// LockCourse bloquea la fila del curso hasta el fin de la transaccion.
	// Devuelve pgx.ErrNoRows si el curso no existe.
	LockCourse(ctx context.Context, courseID string) error
	WithTx(ctx context.Context, fn func(repo ScheduleRepository) error) error
}

type PgScheduleRepository struct {
	db DBTX
}

func NewPgScheduleRepository(db DBTX) *PgScheduleRepository {
	return &PgScheduleRepository{db: db}
}

const scheduleColumns = `id, course_id, cycle_id, day_of_week, start_time, end_time, room, modality, created_at, updated_at`

func (r *PgScheduleRepository) Create(ctx context.Context, schedule domain.Schedule) error {
	const query = `
		INSERT INTO schedules (id, course_id, cycle_id, day_of_week, start_time, end_time, room, modality, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		schedule.ID,
		schedule.CourseID,
		schedule.CycleID,
		schedule.DayOfWeek,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Room,
		schedule.Modality,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	return translate(err)
}

func (r *PgScheduleRepository) GetByID(ctx context.Context, id string) (domain.Schedule, error) {
	return scanSchedule(r.db.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, id))
}

func (r *PgScheduleRepository) ListByCourse(ctx context.Context, courseID string) ([]domain.Schedule, error) {
	const query = `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE course_id = $1
		ORDER BY array_position(ARRAY['LUNES','MARTES','MIERCOLES','JUEVES','VIERNES','SABADO','DOMINGO'], day_of_week), start_time
	`
	return r.list(ctx, query, courseID)
}

func (r *PgScheduleRepository) ListByCourseAndDay(ctx context.Context, courseID string, day domain.DayOfWeek, excludeID string) ([]domain.Schedule, error) {
	const query = `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE course_id = $1 AND day_of_week = $2 AND ($3 = '' OR id::text <> $3)
		ORDER BY start_time
	`
	return r.list(ctx, query, courseID, day, excludeID)
}

func (r *PgScheduleRepository) Update(ctx context.Context, schedule domain.Schedule) error {
	const query = `
		UPDATE schedules
		SET course_id = $2, cycle_id = $3, day_of_week = $4, start_time = $5, end_time = $6, room = $7, modality = $8, updated_at = $9
		WHERE id = $1
	`
	return affected(r.db.Exec(ctx, query,
		schedule.ID,
		schedule.CourseID,
		schedule.CycleID,
		schedule.DayOfWeek,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Room,
		schedule.Modality,
		schedule.UpdatedAt,
	))
}

func (r *PgScheduleRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id))
}

func (r *PgScheduleRepository) LockCourse(ctx context.Context, courseID string) error {
	var id string
	return r.db.QueryRow(ctx, `SELECT id FROM courses WHERE id = $1 FOR UPDATE`, courseID).Scan(&id)
}

func (r *PgScheduleRepository) WithTx(ctx context.Context, fn func(repo ScheduleRepository) error) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&PgScheduleRepository{db: tx})
	})
}

func (r *PgScheduleRepository) list(ctx context.Context, query string, args ...any) ([]domain.Schedule, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := []domain.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func scanSchedule(row pgx.Row) (domain.Schedule, error) {
	var s domain.Schedule
	err := row.Scan(
		&s.ID,
		&s.CourseID,
		&s.CycleID,
		&s.DayOfWeek,
		&s.StartTime,
		&s.EndTime,
		&s.Room,
		&s.Modality,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return domain.Schedule{}, err
	}
	return s, nil
}
