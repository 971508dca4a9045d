package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutordesk/internal/academy"
)

type createStaffRequest struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required"`
	Phone    string         `json:"phone"`
	Role     string         `json:"role" binding:"required"`
	Students int            `json:"students"`
	Status   academy.Status `json:"status"`
}

// ListStaff returns every staff member.
func (h *Handler) ListStaff(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"staff": h.svc.Staff()})
}

// CreateStaff adds a staff member.
func (h *Handler) CreateStaff(c *gin.Context) {
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, err := h.svc.AddStaff(c.Request.Context(), academy.NewStaffMember{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		Students: req.Students,
		Status:   req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// UpdateStaff applies a partial update.
func (h *Handler) UpdateStaff(c *gin.Context) {
	var upd academy.StaffUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, err := h.svc.UpdateStaff(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteStaff removes a staff member.
func (h *Handler) DeleteStaff(c *gin.Context) {
	if err := h.svc.DeleteStaff(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
