package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tutordesk/internal/academy"
)

type createSessionRequest struct {
	Student  string `json:"student" binding:"required"`
	Tutor    string `json:"tutor" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Duration string `json:"duration"`
	Surah    string `json:"surah"`
}

type endSessionRequest struct {
	Notes string `json:"notes"`
}

// ListSessions returns the sessions visible to the caller. ?upcoming=true
// drops completed sessions.
func (h *Handler) ListSessions(c *gin.Context) {
	sessions := academy.ScopeSessions(h.svc.Sessions(), h.actor(c))
	if c.Query("upcoming") == "true" {
		sessions = academy.UpcomingSessions(sessions, 0)
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// CreateSession schedules a session.
func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.svc.AddSession(c.Request.Context(), academy.NewSession{
		Student:  req.Student,
		Tutor:    req.Tutor,
		Time:     req.Time,
		Duration: req.Duration,
		Surah:    req.Surah,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// UpdateSession edits a session's descriptive fields.
func (h *Handler) UpdateSession(c *gin.Context) {
	var upd academy.SessionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.svc.UpdateSession(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// MarkSessionReady moves a scheduled session to ready.
func (h *Handler) MarkSessionReady(c *gin.Context) {
	h.transition(c, h.svc.MarkSessionReady)
}

// StartSession moves a scheduled or ready session to in progress.
func (h *Handler) StartSession(c *gin.Context) {
	h.transition(c, h.svc.StartSession)
}

// EndSession completes a session. The body is optional.
func (h *Handler) EndSession(c *gin.Context) {
	var req endSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	h.transition(c, func(ctx context.Context, id string) (academy.Session, error) {
		return h.svc.EndSession(ctx, id, req.Notes)
	})
}

// JoinSession acknowledges a join; it answers 409 unless the session is in progress.
func (h *Handler) JoinSession(c *gin.Context) {
	h.transition(c, h.svc.JoinSession)
}

// transition runs op on the session named in the path. Staff may only act on
// sessions they tutor; other sessions answer 404 as they do in listings.
func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, id string) (academy.Session, error)) {
	id := c.Param("id")
	if cur, err := h.svc.Store().Session(id); err == nil && !h.actor(c).CanSee(cur) {
		writeError(c, fmt.Errorf("session %q: %w", id, academy.ErrNotFound))
		return
	}
	sess, err := op(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}
