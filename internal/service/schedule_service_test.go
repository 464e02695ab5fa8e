package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"intranet/internal/apperr"
	"intranet/internal/domain"
)

func newTestScheduleService(courseIDs ...string) (*ScheduleService, *mockScheduleRepo, *mockCycleRepo) {
	repo := newMockScheduleRepo(courseIDs...)
	courses := newMockCourseRepo(newMockUserRepo())
	for _, id := range courseIDs {
		courses.courses[id] = domain.Course{ID: id, Code: id}
	}
	cycles := newMockCycleRepo()
	return NewScheduleService(zap.NewNop(), repo, courses, cycles), repo, cycles
}

func mustClock(t *testing.T, raw string) domain.ClockTime {
	t.Helper()
	c, err := domain.ParseClockTime(raw)
	if err != nil {
		t.Fatalf("parse clock %q: %v", raw, err)
	}
	return c
}

func TestScheduleService_CheckConflict(t *testing.T) {
	svc, _, _ := newTestScheduleService("c1")
	ctx := context.Background()

	existing, err := svc.Create(ctx, ScheduleInput{CourseID: "c1", DayOfWeek: "LUNES", StartTime: "09:00", EndTime: "11:00"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		name      string
		day       string
		start     string
		end       string
		excludeID string
		conflict  bool
	}{
		{name: "partial overlap", day: "LUNES", start: "10:00", end: "12:00", conflict: true},
		{name: "touching end is free", day: "LUNES", start: "11:00", end: "13:00"},
		{name: "touching start is free", day: "LUNES", start: "07:00", end: "09:00"},
		{name: "contained", day: "LUNES", start: "09:30", end: "10:00", conflict: true},
		{name: "lowercase day", day: "lunes", start: "10:00", end: "12:00", conflict: true},
		{name: "other day", day: "MARTES", start: "10:00", end: "12:00"},
		{name: "self excluded", day: "LUNES", start: "10:00", end: "12:00", excludeID: existing.ID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.CheckConflict(ctx, "c1", tc.day, mustClock(t, tc.start), mustClock(t, tc.end), tc.excludeID)
			if err != nil {
				t.Fatalf("check conflict: %v", err)
			}
			if tc.conflict && (got == nil || got.ID != existing.ID) {
				t.Fatalf("expected conflict with %s, got %+v", existing.ID, got)
			}
			if !tc.conflict && got != nil {
				t.Fatalf("expected no conflict, got %+v", got)
			}
		})
	}
}

func TestScheduleService_CheckConflictInvalidDay(t *testing.T) {
	svc, _, _ := newTestScheduleService("c1")
	_, err := svc.CheckConflict(context.Background(), "c1", "FUNDAY", 0, 60, "")
	if !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay, got %v", err)
	}
}

func TestScheduleService_CreateScenario(t *testing.T) {
	svc, repo, _ := newTestScheduleService("5")
	ctx := context.Background()

	if _, err := svc.Create(ctx, ScheduleInput{CourseID: "5", DayOfWeek: "LUNES", StartTime: "08:00", EndTime: "10:00"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, ScheduleInput{CourseID: "5", DayOfWeek: "LUNES", StartTime: "09:00", EndTime: "09:30"})
	if !errors.Is(err, ErrScheduleOverlap) {
		t.Fatalf("expected overlap, got %v", err)
	}
	if apperr.HTTPStatus(apperr.KindOf(err)) != 409 {
		t.Fatalf("expected 409, got %d", apperr.HTTPStatus(apperr.KindOf(err)))
	}

	tuesday, err := svc.Create(ctx, ScheduleInput{CourseID: "5", DayOfWeek: "martes", StartTime: "09:00", EndTime: "09:30", Modality: "virtual"})
	if err != nil {
		t.Fatalf("tuesday create: %v", err)
	}
	if tuesday.DayOfWeek != domain.Martes || tuesday.Modality != domain.ModalityVirtual {
		t.Fatalf("expected normalized day and modality, got %+v", tuesday)
	}
	if len(repo.schedules) != 2 {
		t.Fatalf("expected 2 stored schedules, got %d", len(repo.schedules))
	}
	if repo.txCalls != 3 {
		t.Fatalf("expected every create to run in a transaction, got %d", repo.txCalls)
	}
}

func TestScheduleService_CreateValidation(t *testing.T) {
	svc, _, _ := newTestScheduleService("c1")
	ctx := context.Background()
	missingCycle := "nope"

	cases := []struct {
		name  string
		input ScheduleInput
		want  error
	}{
		{"bad day", ScheduleInput{CourseID: "c1", DayOfWeek: "MONDAY", StartTime: "08:00", EndTime: "09:00"}, ErrInvalidDay},
		{"bad time", ScheduleInput{CourseID: "c1", DayOfWeek: "LUNES", StartTime: "8am", EndTime: "09:00"}, ErrInvalidTime},
		{"inverted range", ScheduleInput{CourseID: "c1", DayOfWeek: "LUNES", StartTime: "10:00", EndTime: "09:00"}, ErrInvalidRange},
		{"empty range", ScheduleInput{CourseID: "c1", DayOfWeek: "LUNES", StartTime: "10:00", EndTime: "10:00"}, ErrInvalidRange},
		{"bad modality", ScheduleInput{CourseID: "c1", DayOfWeek: "LUNES", StartTime: "08:00", EndTime: "09:00", Modality: "remote"}, ErrInvalidModality},
		{"missing course", ScheduleInput{CourseID: "c2", DayOfWeek: "LUNES", StartTime: "08:00", EndTime: "09:00"}, ErrCourseNotFound},
		{"missing cycle", ScheduleInput{CourseID: "c1", DayOfWeek: "LUNES", StartTime: "08:00", EndTime: "09:00", CycleID: &missingCycle}, ErrCycleNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestScheduleService_Update(t *testing.T) {
	svc, _, _ := newTestScheduleService("c1")
	ctx := context.Background()

	first, err := svc.Create(ctx, ScheduleInput{CourseID: "c1", DayOfWeek: "LUNES", StartTime: "08:00", EndTime: "10:00"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := svc.Create(ctx, ScheduleInput{CourseID: "c1", DayOfWeek: "LUNES", StartTime: "10:00", EndTime: "12:00"}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	// Mover el bloque dentro de su propio rango no choca consigo mismo.
	start := "08:30"
	moved, err := svc.Update(ctx, first.ID, ScheduleUpdateInput{StartTime: &start})
	if err != nil {
		t.Fatalf("expected self-overlap to be ignored, got %v", err)
	}
	if moved.StartTime != "08:30" || moved.EndTime != "10:00" {
		t.Fatalf("unexpected update: %+v", moved)
	}

	end := "11:00"
	if _, err := svc.Update(ctx, first.ID, ScheduleUpdateInput{EndTime: &end}); !errors.Is(err, ErrScheduleOverlap) {
		t.Fatalf("expected overlap with second block, got %v", err)
	}

	room := "A-101"
	updated, err := svc.Update(ctx, first.ID, ScheduleUpdateInput{Room: &room})
	if err != nil {
		t.Fatalf("room-only update: %v", err)
	}
	if updated.Room != room {
		t.Fatalf("expected room %s, got %s", room, updated.Room)
	}

	if _, err := svc.Update(ctx, "missing", ScheduleUpdateInput{Room: &room}); !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
}

func TestScheduleService_DeleteAndList(t *testing.T) {
	svc, _, _ := newTestScheduleService("c1")
	ctx := context.Background()

	s, err := svc.Create(ctx, ScheduleInput{CourseID: "c1", DayOfWeek: "JUEVES", StartTime: "14:00", EndTime: "16:00"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	list, err := svc.ListByCourse(ctx, "c1")
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one schedule, got %v %v", list, err)
	}
	if err := svc.Delete(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, s.ID); !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestScheduleService_UnknownCourseIsNotFound(t *testing.T) {
	svc, repo, _ := newTestScheduleService("c1")
	ctx := context.Background()

	if _, err := svc.ListByCourse(ctx, "c404"); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound listing an unknown course, got %v", err)
	}
	list, err := svc.ListByCourse(ctx, "c1")
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list for a known course, got %v %v", list, err)
	}

	repo.listErr = &pgconn.PgError{Code: "22P02"}
	start, end := mustClock(t, "08:00"), mustClock(t, "09:00")
	_, err = svc.CheckConflict(ctx, "not-a-uuid", "LUNES", start, end, "")
	if !errors.Is(err, ErrCourseNotFound) || apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NOT_FOUND for a malformed course id, got %v", err)
	}
}
