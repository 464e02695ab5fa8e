package http

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"intranet/internal/domain"
	"intranet/internal/repository"
)

type mockUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	if _, taken := m.usersByEmail[user.Email]; taken {
		return repository.ErrDuplicate
	}
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(ctx, id)
}

func (m *mockUserRepo) List(_ context.Context, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.usersByID {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) Update(_ context.Context, user domain.User) error {
	old, ok := m.usersByID[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(m.usersByEmail, old.Email)
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	user, ok := m.usersByID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(m.usersByID, id)
	delete(m.usersByEmail, user.Email)
	return nil
}

type mockSessionRepo struct {
	byID   map[string]domain.SessionToken
	byHash map[string]string
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{
		byID:   make(map[string]domain.SessionToken),
		byHash: make(map[string]string),
	}
}

func (m *mockSessionRepo) Create(_ context.Context, token domain.SessionToken) error {
	m.byID[token.ID] = token
	m.byHash[token.TokenHash] = token.ID
	return nil
}

func (m *mockSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (domain.SessionToken, error) {
	id, ok := m.byHash[tokenHash]
	if !ok {
		return domain.SessionToken{}, pgx.ErrNoRows
	}
	return m.byID[id], nil
}

func (m *mockSessionRepo) InvalidateActiveByUser(_ context.Context, userID string, revokedAt time.Time) (int64, error) {
	var n int64
	for id, tok := range m.byID {
		if tok.UserID == userID && tok.IsValid {
			tok.IsValid = false
			tok.RevokedAt = &revokedAt
			m.byID[id] = tok
			n++
		}
	}
	return n, nil
}

func (m *mockSessionRepo) Invalidate(_ context.Context, id string, revokedAt *time.Time) error {
	tok, ok := m.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	tok.IsValid = false
	if revokedAt != nil {
		tok.RevokedAt = revokedAt
	}
	m.byID[id] = tok
	return nil
}

func (m *mockSessionRepo) WithTx(_ context.Context, fn func(repo repository.SessionTokenRepository) error) error {
	return fn(m)
}

type mockCycleRepo struct {
	cycles map[string]domain.Cycle
}

func (m *mockCycleRepo) Create(_ context.Context, cycle domain.Cycle) error {
	m.cycles[cycle.ID] = cycle
	return nil
}

func (m *mockCycleRepo) GetByID(_ context.Context, id string) (domain.Cycle, error) {
	cycle, ok := m.cycles[id]
	if !ok {
		return domain.Cycle{}, pgx.ErrNoRows
	}
	return cycle, nil
}

func (m *mockCycleRepo) List(_ context.Context) ([]domain.Cycle, error) {
	var out []domain.Cycle
	for _, c := range m.cycles {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCycleRepo) Update(_ context.Context, cycle domain.Cycle) error {
	m.cycles[cycle.ID] = cycle
	return nil
}

func (m *mockCycleRepo) Delete(_ context.Context, id string) error {
	delete(m.cycles, id)
	return nil
}

type mockCourseRepo struct {
	courses map[string]domain.Course
}

func (m *mockCourseRepo) Create(_ context.Context, course domain.Course) error {
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (domain.Course, error) {
	course, ok := m.courses[id]
	if !ok {
		return domain.Course{}, pgx.ErrNoRows
	}
	return course, nil
}

func (m *mockCourseRepo) List(_ context.Context) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range m.courses {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCourseRepo) ListByProfessor(ctx context.Context, professorID string) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range m.courses {
		if c.ProfessorID == professorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) ListByStudent(_ context.Context, _ string) ([]domain.Course, error) {
	return nil, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course domain.Course) error {
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.courses[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) Enroll(_ context.Context, _ domain.Enrollment) error {
	return nil
}

func (m *mockCourseRepo) Unenroll(_ context.Context, _, _ string) error {
	return pgx.ErrNoRows
}

func (m *mockCourseRepo) ListStudents(_ context.Context, _ string) ([]domain.User, error) {
	return nil, nil
}

type mockScheduleRepo struct {
	courses   *mockCourseRepo
	order     []string
	schedules map[string]domain.Schedule
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule domain.Schedule) error {
	m.schedules[schedule.ID] = schedule
	m.order = append(m.order, schedule.ID)
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (domain.Schedule, error) {
	schedule, ok := m.schedules[id]
	if !ok {
		return domain.Schedule{}, pgx.ErrNoRows
	}
	return schedule, nil
}

func (m *mockScheduleRepo) ListByCourse(_ context.Context, courseID string) ([]domain.Schedule, error) {
	var out []domain.Schedule
	for _, id := range m.order {
		if s, ok := m.schedules[id]; ok && s.CourseID == courseID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockScheduleRepo) ListByCourseAndDay(ctx context.Context, courseID string, day domain.DayOfWeek, excludeID string) ([]domain.Schedule, error) {
	all, _ := m.ListByCourse(ctx, courseID)
	var out []domain.Schedule
	for _, s := range all {
		if s.DayOfWeek == day && s.ID != excludeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule domain.Schedule) error {
	m.schedules[schedule.ID] = schedule
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.schedules[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.schedules, id)
	return nil
}

func (m *mockScheduleRepo) LockCourse(_ context.Context, courseID string) error {
	if _, ok := m.courses.courses[courseID]; !ok {
		return pgx.ErrNoRows
	}
	return nil
}

func (m *mockScheduleRepo) WithTx(_ context.Context, fn func(repo repository.ScheduleRepository) error) error {
	return fn(m)
}
