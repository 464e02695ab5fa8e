package service

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
	if owner, taken := m.usersByEmail[user.Email]; taken && owner != user.ID {
		return repository.ErrDuplicate
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
	if _, taken := m.byHash[token.TokenHash]; taken {
		return repository.ErrDuplicate
	}
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

func newMockCycleRepo() *mockCycleRepo {
	return &mockCycleRepo{cycles: make(map[string]domain.Cycle)}
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
	if _, ok := m.cycles[cycle.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.cycles[cycle.ID] = cycle
	return nil
}

func (m *mockCycleRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.cycles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.cycles, id)
	return nil
}

type mockCourseRepo struct {
	users       *mockUserRepo
	courses     map[string]domain.Course
	enrollments map[string]map[string]bool
}

func newMockCourseRepo(users *mockUserRepo) *mockCourseRepo {
	return &mockCourseRepo{
		users:       users,
		courses:     make(map[string]domain.Course),
		enrollments: make(map[string]map[string]bool),
	}
}

func (m *mockCourseRepo) Create(_ context.Context, course domain.Course) error {
	for _, c := range m.courses {
		if c.Code == course.Code {
			return repository.ErrDuplicate
		}
	}
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

func (m *mockCourseRepo) ListByProfessor(_ context.Context, professorID string) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range m.courses {
		if c.ProfessorID == professorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) ListByStudent(_ context.Context, studentID string) ([]domain.Course, error) {
	var out []domain.Course
	for courseID, students := range m.enrollments {
		if students[studentID] {
			out = append(out, m.courses[courseID])
		}
	}
	return out, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course domain.Course) error {
	if _, ok := m.courses[course.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.courses[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.courses, id)
	delete(m.enrollments, id)
	return nil
}

func (m *mockCourseRepo) Enroll(_ context.Context, enrollment domain.Enrollment) error {
	students := m.enrollments[enrollment.CourseID]
	if students == nil {
		students = make(map[string]bool)
		m.enrollments[enrollment.CourseID] = students
	}
	if students[enrollment.StudentID] {
		return repository.ErrDuplicate
	}
	students[enrollment.StudentID] = true
	return nil
}

func (m *mockCourseRepo) Unenroll(_ context.Context, courseID, studentID string) error {
	if !m.enrollments[courseID][studentID] {
		return pgx.ErrNoRows
	}
	delete(m.enrollments[courseID], studentID)
	return nil
}

func (m *mockCourseRepo) ListStudents(_ context.Context, courseID string) ([]domain.User, error) {
	var out []domain.User
	for studentID := range m.enrollments[courseID] {
		out = append(out, m.users.usersByID[studentID])
	}
	return out, nil
}

type mockTaskRepo struct {
	tasks map[string]domain.Task
}

func (m *mockTaskRepo) Create(_ context.Context, task domain.Task) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (domain.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return domain.Task{}, pgx.ErrNoRows
	}
	return task, nil
}

func (m *mockTaskRepo) ListByCourse(_ context.Context, courseID string) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range m.tasks {
		if t.CourseID == courseID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) Update(_ context.Context, task domain.Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.tasks[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.tasks, id)
	return nil
}

type mockExamRepo struct {
	exams map[string]domain.Exam
}

func (m *mockExamRepo) Create(_ context.Context, exam domain.Exam) error {
	m.exams[exam.ID] = exam
	return nil
}

func (m *mockExamRepo) GetByID(_ context.Context, id string) (domain.Exam, error) {
	exam, ok := m.exams[id]
	if !ok {
		return domain.Exam{}, pgx.ErrNoRows
	}
	return exam, nil
}

func (m *mockExamRepo) ListByCourse(_ context.Context, courseID string) ([]domain.Exam, error) {
	var out []domain.Exam
	for _, e := range m.exams {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockExamRepo) Update(_ context.Context, exam domain.Exam) error {
	if _, ok := m.exams[exam.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.exams[exam.ID] = exam
	return nil
}

func (m *mockExamRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.exams[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.exams, id)
	return nil
}

type mockResourceRepo struct {
	resources map[string]domain.Resource
}

func (m *mockResourceRepo) Create(_ context.Context, resource domain.Resource) error {
	m.resources[resource.ID] = resource
	return nil
}

func (m *mockResourceRepo) GetByID(_ context.Context, id string) (domain.Resource, error) {
	resource, ok := m.resources[id]
	if !ok {
		return domain.Resource{}, pgx.ErrNoRows
	}
	return resource, nil
}

func (m *mockResourceRepo) ListByCourse(_ context.Context, courseID string) ([]domain.Resource, error) {
	var out []domain.Resource
	for _, r := range m.resources {
		if r.CourseID == courseID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockResourceRepo) Update(_ context.Context, resource domain.Resource) error {
	if _, ok := m.resources[resource.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.resources[resource.ID] = resource
	return nil
}

func (m *mockResourceRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.resources[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.resources, id)
	return nil
}

// mockScheduleRepo conserva el orden de insercion para que el primer conflicto
// encontrado sea deterministico.
type mockScheduleRepo struct {
	courses   map[string]bool
	order     []string
	schedules map[string]domain.Schedule
	txCalls   int
	listErr   error
}

func newMockScheduleRepo(courseIDs ...string) *mockScheduleRepo {
	m := &mockScheduleRepo{
		courses:   make(map[string]bool),
		schedules: make(map[string]domain.Schedule),
	}
	for _, id := range courseIDs {
		m.courses[id] = true
	}
	return m
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
	if m.listErr != nil {
		return nil, m.listErr
	}
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
	if _, ok := m.schedules[schedule.ID]; !ok {
		return pgx.ErrNoRows
	}
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
	if !m.courses[courseID] {
		return pgx.ErrNoRows
	}
	return nil
}

func (m *mockScheduleRepo) WithTx(_ context.Context, fn func(repo repository.ScheduleRepository) error) error {
	m.txCalls++
	return fn(m)
}
