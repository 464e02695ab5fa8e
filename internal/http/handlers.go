package http

import (
	"go.uber.org/zap"

	"intranet/internal/service"
)

// Handlers agrupa los handlers que monta el router.
type Handlers struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Cycles     *CycleHandler
	Courses    *CourseHandler
	Coursework *CourseworkHandler
	Schedules  *ScheduleHandler
}

// Services son las dependencias de dominio que consumen los handlers.
type Services struct {
	Auth       *service.AuthService
	Users      *service.UserService
	Cycles     *service.CycleService
	Courses    *service.CourseService
	Coursework *service.CourseworkService
	Schedules  *service.ScheduleService
}

// NewHandlers crea todos los handlers HTTP a partir de los servicios.
func NewHandlers(logger *zap.Logger, svc Services) Handlers {
	return Handlers{
		Auth:       NewAuthHandler(logger, svc.Users, svc.Auth),
		Users:      NewUserHandler(logger, svc.Users),
		Cycles:     NewCycleHandler(logger, svc.Cycles),
		Courses:    NewCourseHandler(logger, svc.Courses),
		Coursework: NewCourseworkHandler(logger, svc.Coursework),
		Schedules:  NewScheduleHandler(logger, svc.Schedules),
	}
}
