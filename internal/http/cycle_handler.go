package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intranet/internal/service"
)

type CycleHandler struct {
	logger    *zap.Logger
	cycleServ *service.CycleService
}

func NewCycleHandler(logger *zap.Logger, cycleServ *service.CycleService) *CycleHandler {
	return &CycleHandler{logger: logger, cycleServ: cycleServ}
}

type cycleRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

func (r cycleRequest) input() service.CycleInput {
	return service.CycleInput{Name: r.Name, StartDate: r.StartDate, EndDate: r.EndDate}
}

// ListCycles maneja GET /cycles.
func (h *CycleHandler) ListCycles(c *gin.Context) {
	cycles, err := h.cycleServ.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"cycles": cycles})
}

// GetCycle maneja GET /cycles/:id.
func (h *CycleHandler) GetCycle(c *gin.Context) {
	cycle, err := h.cycleServ.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"cycle": cycle})
}

// CreateCycle maneja POST /cycles.
func (h *CycleHandler) CreateCycle(c *gin.Context) {
	var req cycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}
	cycle, err := h.cycleServ.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"cycle": cycle})
}

// UpdateCycle maneja PUT /cycles/:id.
func (h *CycleHandler) UpdateCycle(c *gin.Context) {
	var req cycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}
	cycle, err := h.cycleServ.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"cycle": cycle})
}

// DeleteCycle maneja DELETE /cycles/:id.
func (h *CycleHandler) DeleteCycle(c *gin.Context) {
	if err := h.cycleServ.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "cycle deleted"})
}
