package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intranet/internal/service"
)

// CourseworkHandler expone tareas, examenes y recursos de un curso.
type CourseworkHandler struct {
	logger   *zap.Logger
	workServ *service.CourseworkService
}

func NewCourseworkHandler(logger *zap.Logger, workServ *service.CourseworkService) *CourseworkHandler {
	return &CourseworkHandler{logger: logger, workServ: workServ}
}

type taskRequest struct {
	CourseID    string     `json:"courseId"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"dueAt"`
}

type examRequest struct {
	CourseID        string    `json:"courseId"`
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes"`
}

type resourceRequest struct {
	CourseID string `json:"courseId"`
	Title    string `json:"title" binding:"required"`
	URL      string `json:"url" binding:"required"`
	Kind     string `json:"kind"`
}

// ListTasks maneja GET /courses/:id/tasks.
func (h *CourseworkHandler) ListTasks(c *gin.Context) {
	tasks, err := h.workServ.ListTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"tasks": tasks})
}

// GetTask maneja GET /tasks/:id.
func (h *CourseworkHandler) GetTask(c *gin.Context) {
	task, err := h.workServ.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"task": task})
}

// CreateTask maneja POST /tasks.
func (h *CourseworkHandler) CreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CourseID == "" {
		respondInvalid(c, h.logger, err)
		return
	}
	task, err := h.workServ.CreateTask(c.Request.Context(), service.TaskInput{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"task": task})
}

// UpdateTask maneja PUT /tasks/:id.
func (h *CourseworkHandler) UpdateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}
	task, err := h.workServ.UpdateTask(c.Request.Context(), c.Param("id"), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"task": task})
}

// DeleteTask maneja DELETE /tasks/:id.
func (h *CourseworkHandler) DeleteTask(c *gin.Context) {
	if err := h.workServ.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "task deleted"})
}

// ListExams maneja GET /courses/:id/exams.
func (h *CourseworkHandler) ListExams(c *gin.Context) {
	exams, err := h.workServ.ListExams(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"exams": exams})
}

// GetExam maneja GET /exams/:id.
func (h *CourseworkHandler) GetExam(c *gin.Context) {
	exam, err := h.workServ.GetExam(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"exam": exam})
}

// CreateExam maneja POST /exams.
func (h *CourseworkHandler) CreateExam(c *gin.Context) {
	var req examRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CourseID == "" {
		respondInvalid(c, h.logger, err)
		return
	}
	exam, err := h.workServ.CreateExam(c.Request.Context(), service.ExamInput{
		CourseID:        req.CourseID,
		Title:           req.Title,
		Description:     req.Description,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"exam": exam})
}

// UpdateExam maneja PUT /exams/:id.
func (h *CourseworkHandler) UpdateExam(c *gin.Context) {
	var req examRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}
	exam, err := h.workServ.UpdateExam(c.Request.Context(), c.Param("id"), service.ExamInput{
		Title:           req.Title,
		Description:     req.Description,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"exam": exam})
}

// DeleteExam maneja DELETE /exams/:id.
func (h *CourseworkHandler) DeleteExam(c *gin.Context) {
	if err := h.workServ.DeleteExam(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "exam deleted"})
}

// ListResources maneja GET /courses/:id/resources.
func (h *CourseworkHandler) ListResources(c *gin.Context) {
	resources, err := h.workServ.ListResources(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"resources": resources})
}

// GetResource maneja GET /resources/:id.
func (h *CourseworkHandler) GetResource(c *gin.Context) {
	resource, err := h.workServ.GetResource(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"resource": resource})
}

// CreateResource maneja POST /resources.
func (h *CourseworkHandler) CreateResource(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CourseID == "" {
		respondInvalid(c, h.logger, err)
		return
	}
	resource, err := h.workServ.CreateResource(c.Request.Context(), service.ResourceInput{
		CourseID: req.CourseID,
		Title:    req.Title,
		URL:      req.URL,
		Kind:     req.Kind,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"resource": resource})
}

// UpdateResource maneja PUT /resources/:id.
func (h *CourseworkHandler) UpdateResource(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}
	resource, err := h.workServ.UpdateResource(c.Request.Context(), c.Param("id"), service.ResourceInput{
		Title: req.Title,
		URL:   req.URL,
		Kind:  req.Kind,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"resource": resource})
}

// DeleteResource maneja DELETE /resources/:id.
func (h *CourseworkHandler) DeleteResource(c *gin.Context) {
	if err := h.workServ.DeleteResource(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "resource deleted"})
}
