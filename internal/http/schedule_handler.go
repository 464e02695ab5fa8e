package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intranet/internal/service"
)

// ScheduleHandler expone los horarios semanales de los cursos.
type ScheduleHandler struct {
	logger       *zap.Logger
	scheduleServ *service.ScheduleService
}

func NewScheduleHandler(logger *zap.Logger, scheduleServ *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{logger: logger, scheduleServ: scheduleServ}
}

// ListSchedules maneja GET /courses/:id/schedules.
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.scheduleServ.ListByCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"schedules": schedules})
}

// GetSchedule maneja GET /schedules/:id.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.scheduleServ.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"schedule": schedule})
}

// CreateSchedule maneja POST /schedules.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req struct {
		CourseID  string  `json:"courseId" binding:"required"`
		DayOfWeek string  `json:"dayOfWeek" binding:"required"`
		StartTime string  `json:"startTime" binding:"required"`
		EndTime   string  `json:"endTime" binding:"required"`
		Room      string  `json:"room"`
		Modality  string  `json:"modality"`
		CycleID   *string `json:"cycleId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}

	schedule, err := h.scheduleServ.Create(c.Request.Context(), service.ScheduleInput{
		CourseID:  req.CourseID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Room:      req.Room,
		Modality:  req.Modality,
		CycleID:   req.CycleID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"schedule": schedule})
}

// UpdateSchedule maneja PUT /schedules/:id. Solo cambia los campos enviados.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req struct {
		CourseID  *string `json:"courseId"`
		DayOfWeek *string `json:"dayOfWeek"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		Room      *string `json:"room"`
		Modality  *string `json:"modality"`
		CycleID   *string `json:"cycleId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}

	schedule, err := h.scheduleServ.Update(c.Request.Context(), c.Param("id"), service.ScheduleUpdateInput{
		CourseID:  req.CourseID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Room:      req.Room,
		Modality:  req.Modality,
		CycleID:   req.CycleID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"schedule": schedule})
}

// DeleteSchedule maneja DELETE /schedules/:id.
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	if err := h.scheduleServ.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "schedule deleted"})
}
