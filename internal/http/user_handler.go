package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intranet/internal/apperr"
	"intranet/internal/domain"
	"intranet/internal/service"
)

var errNotSelf = apperr.Forbidden("can only access your own profile")

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService) *UserHandler {
	return &UserHandler{
		logger:   logger,
		userServ: userServ,
	}
}

// ListUsers maneja GET /users?role=.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userServ.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"users": users})
}

// CreateUser maneja POST /users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}

	user, err := h.userServ.Create(c.Request.Context(), service.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"user": user})
}

// GetUser maneja GET /users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	if !h.selfOrProfessor(c) {
		return
	}
	user, err := h.userServ.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": user})
}

// UpdateUser maneja PUT /users/:id. Solo un profesor puede cambiar el rol.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	if !h.selfOrProfessor(c) {
		return
	}
	var req struct {
		Email    *string `json:"email"`
		Name     *string `json:"name"`
		Password *string `json:"password"`
		Role     *string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}

	input := service.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	}
	if req.Role != nil {
		cred, _ := GetCredential(c)
		if cred.Role != domain.RoleProfessor {
			respondError(c, h.logger, service.ErrInsufficientRole)
			return
		}
		role := domain.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.userServ.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": user})
}

// DeleteUser maneja DELETE /users/:id.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userServ.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "user deleted"})
}

// selfOrProfessor corta el request si quien llama no es el dueño del perfil ni profesor.
func (h *UserHandler) selfOrProfessor(c *gin.Context) bool {
	cred, ok := GetCredential(c)
	if !ok {
		respondError(c, h.logger, service.ErrMissingToken)
		return false
	}
	if cred.Role == domain.RoleProfessor || cred.UserID == c.Param("id") {
		return true
	}
	respondError(c, h.logger, errNotSelf)
	return false
}
