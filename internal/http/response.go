package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intranet/internal/apperr"
)

// respondError traduce cualquier error al sobre {success:false, error, message}.
// La causa de un error interno se registra pero nunca llega al cliente.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	message := "internal error"

	var appErr *apperr.Error
	if kind != apperr.KindInternal && errors.As(err, &appErr) {
		message = appErr.Message
	}
	if kind == apperr.KindInternal {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(apperr.HTTPStatus(kind), gin.H{
		"success": false,
		"error":   kind,
		"message": message,
	})
}

// respondInvalid responde 400 cuando el body no se puede bindear.
func respondInvalid(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request", zap.String("route", c.FullPath()), zap.Error(err))
	respondError(c, logger, apperr.Validation("invalid request"))
}

func respondOK(c *gin.Context, status int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(status, body)
}
