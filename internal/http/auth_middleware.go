package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intranet/internal/domain"
	"intranet/internal/service"
)

const credentialKey = "auth_credential"

// AuthMiddleware valida el bearer token contra el registro de sesiones y, si
// se indican roles, exige uno de ellos. Guarda la credencial en el contexto.
func AuthMiddleware(logger *zap.Logger, auth *service.AuthService, roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, err := auth.Authorize(c.Request.Context(), c.GetHeader("Authorization"), roles...)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.Set(credentialKey, cred)
		c.Next()
	}
}

// GetCredential obtiene la credencial autenticada desde el contexto.
func GetCredential(c *gin.Context) (domain.Credential, bool) {
	val, ok := c.Get(credentialKey)
	if !ok {
		return domain.Credential{}, false
	}
	cred, ok := val.(domain.Credential)
	return cred, ok
}
