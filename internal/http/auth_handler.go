package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intranet/internal/apperr"
	"intranet/internal/service"
)

// AuthHandler expone login, registro, logout y verificacion de sesion.
type AuthHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
	authServ *service.AuthService
}

func NewAuthHandler(logger *zap.Logger, userServ *service.UserService, authServ *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		userServ: userServ,
		authServ: authServ,
	}
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}

	user, err := h.userServ.VerifyCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	issued, err := h.authServ.Issue(c.Request.Context(), user.ID, user.Email, user.Role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("login", zap.String("user_id", user.ID))
	respondOK(c, http.StatusOK, gin.H{
		"token":     issued.Token,
		"expiresAt": issued.ExpiresAt,
		"user":      user,
	})
}

// Register maneja POST /auth/register. Las cuentas publicas son siempre de estudiante.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}

	user, err := h.userServ.Register(c.Request.Context(), service.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"user": user})
}

// Logout maneja POST /auth/logout. Siempre responde 200: un token ausente o
// ya revocado no es un error para el cliente.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := service.BearerToken(c.GetHeader("Authorization"))
	if ok {
		if err := h.authServ.Revoke(c.Request.Context(), token); err != nil && apperr.KindOf(err) == apperr.KindInternal {
			h.logger.Error("logout failed", zap.Error(err))
		}
	}
	respondOK(c, http.StatusOK, gin.H{"message": "logged out"})
}

// Session maneja GET /auth/session y devuelve el perfil del usuario autenticado.
func (h *AuthHandler) Session(c *gin.Context) {
	cred, ok := GetCredential(c)
	if !ok {
		respondError(c, h.logger, service.ErrMissingToken)
		return
	}
	user, err := h.userServ.Get(c.Request.Context(), cred.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": user})
}
