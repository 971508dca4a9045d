package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutordesk/internal/academy"
)

// defaultSurah is where a newly enrolled student starts.
const defaultSurah = "Al-Fatiha"

type createStudentRequest struct {
	Name           string         `json:"name" binding:"required"`
	Email          string         `json:"email" binding:"required"`
	Phone          string         `json:"phone"`
	CurrentSurah   string         `json:"currentSurah"`
	Progress       int            `json:"progress"`
	Status         academy.Status `json:"status"`
	Tutor          string         `json:"tutor"`
	EnrollmentDate string         `json:"enrollmentDate"`
}

// ListStudents returns the students visible to the caller.
func (h *Handler) ListStudents(c *gin.Context) {
	students := academy.ScopeStudents(h.svc.Students(), h.actor(c))
	if c.Query("status") == string(academy.StatusActive) {
		students = academy.ActiveStudents(students)
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

// CreateStudent enrols a student.
func (h *Handler) CreateStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CurrentSurah == "" {
		req.CurrentSurah = defaultSurah
	}
	if req.EnrollmentDate == "" {
		req.EnrollmentDate = h.now().Format("2006-01-02")
	}

	st, err := h.svc.AddStudent(c.Request.Context(), academy.NewStudent{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		CurrentSurah:   req.CurrentSurah,
		Progress:       req.Progress,
		Status:         req.Status,
		Tutor:          req.Tutor,
		EnrollmentDate: req.EnrollmentDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// UpdateStudent applies a partial update.
func (h *Handler) UpdateStudent(c *gin.Context) {
	var upd academy.StudentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := h.svc.UpdateStudent(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DeleteStudent removes a student.
func (h *Handler) DeleteStudent(c *gin.Context) {
	if err := h.svc.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
