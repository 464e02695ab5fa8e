package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intranet/internal/service"
)

// CourseHandler expone cursos y matriculas.
type CourseHandler struct {
	logger     *zap.Logger
	courseServ *service.CourseService
}

func NewCourseHandler(logger *zap.Logger, courseServ *service.CourseService) *CourseHandler {
	return &CourseHandler{logger: logger, courseServ: courseServ}
}

type courseRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ProfessorID string  `json:"professorId"`
	CycleID     *string `json:"cycleId"`
}

func (r courseRequest) input() service.CourseInput {
	return service.CourseInput{
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		ProfessorID: r.ProfessorID,
		CycleID:     r.CycleID,
	}
}

// ListCourses maneja GET /courses. Devuelve los cursos propios; un profesor
// puede pedir todos con ?all=true.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	cred, _ := GetCredential(c)
	courses, err := h.courseServ.ListForUser(c.Request.Context(), cred, c.Query("all") == "true")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"courses": courses})
}

// GetCourse maneja GET /courses/:id.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseServ.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"course": course})
}

// CreateCourse maneja POST /courses. Sin professorId, el curso queda a cargo de quien lo crea.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}
	if req.ProfessorID == "" {
		cred, _ := GetCredential(c)
		req.ProfessorID = cred.UserID
	}
	course, err := h.courseServ.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"course": course})
}

// UpdateCourse maneja PUT /courses/:id.
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}
	course, err := h.courseServ.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"course": course})
}

// DeleteCourse maneja DELETE /courses/:id.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseServ.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "course deleted"})
}

// ListStudents maneja GET /courses/:id/students.
func (h *CourseHandler) ListStudents(c *gin.Context) {
	students, err := h.courseServ.ListStudents(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"students": students})
}

// Enroll maneja POST /courses/:id/enrollments.
func (h *CourseHandler) Enroll(c *gin.Context) {
	var req struct {
		StudentID string `json:"studentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err)
		return
	}
	enrollment, err := h.courseServ.Enroll(c.Request.Context(), c.Param("id"), req.StudentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// Unenroll maneja DELETE /courses/:id/enrollments/:studentId.
func (h *CourseHandler) Unenroll(c *gin.Context) {
	if err := h.courseServ.Unenroll(c.Request.Context(), c.Param("id"), c.Param("studentId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "student unenrolled"})
}
