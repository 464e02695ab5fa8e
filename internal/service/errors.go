package service

import (
	"errors"

	"intranet/internal/apperr"
	"intranet/internal/repository"
)

var (
	ErrUserNotFound     = apperr.NotFound("user not found")
	ErrCycleNotFound    = apperr.NotFound("cycle not found")
	ErrCourseNotFound   = apperr.NotFound("course not found")
	ErrTaskNotFound     = apperr.NotFound("task not found")
	ErrExamNotFound     = apperr.NotFound("exam not found")
	ErrResourceNotFound = apperr.NotFound("resource not found")
	ErrScheduleNotFound = apperr.NotFound("schedule not found")
)

// repoError traduce un error de repositorio: filas ausentes (o ids mal formados) al sentinel NotFound
// indicado, errores ya tipados sin cambios y el resto a INTERNAL_ERROR.
func repoError(err error, notFound *apperr.Error, op string) error {
	if err == nil {
		return nil
	}
	if repository.IsNotFound(err) {
		return notFound
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Internal(op, err)
}
