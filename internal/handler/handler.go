package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tutordesk/internal/academy"
	"tutordesk/internal/auth"
	"tutordesk/internal/httpmiddleware"
	"tutordesk/internal/notify"
)

// Options wires the router's collaborators.
type Options struct {
	Service        *academy.Service
	Auth           *auth.Authenticator
	Signer         *auth.Signer
	Feed           *notify.Feed
	Gatherer       prometheus.Gatherer
	Limiter        *httpmiddleware.TokenBucket
	Health         func(ctx context.Context) map[string]bool
	DashboardLimit int
	Logger         *zap.Logger
}

// Handler serves the dashboard API over the academy service.
type Handler struct {
	svc            *academy.Service
	authn          *auth.Authenticator
	signer         *auth.Signer
	feed           *notify.Feed
	health         func(ctx context.Context) map[string]bool
	dashboardLimit int
	log            *zap.Logger
	now            func() time.Time
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(o Options) *gin.Engine {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Feed == nil {
		o.Feed = notify.NewFeed(0)
	}
	if o.Gatherer == nil {
		o.Gatherer = prometheus.DefaultGatherer
	}
	h := &Handler{
		svc:            o.Service,
		authn:          o.Auth,
		signer:         o.Signer,
		feed:           o.Feed,
		health:         o.Health,
		dashboardLimit: o.DashboardLimit,
		log:            o.Logger,
		now:            time.Now,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.AccessLog(o.Logger, "/healthz", "/metrics"))
	r.Use(httpmiddleware.CORS())
	r.Use(httpmiddleware.SecurityHeaders())
	if o.Limiter != nil {
		r.Use(o.Limiter.Middleware())
	}

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(o.Gatherer, promhttp.HandlerOpts{})))
	r.GET("/healthz", h.Healthz)
	r.POST("/v1/auth/login", h.Login)
	r.POST("/v1/auth/refresh", h.Refresh)

	company := auth.RequireRole(academy.RoleCompany)
	v1 := r.Group("/v1", auth.Bearer(o.Signer))

	v1.GET("/me", h.Me)
	v1.GET("/dashboard", h.Dashboard)
	v1.GET("/notifications", h.Notifications)
	v1.GET("/tutors", h.ListTutors)
	v1.GET("/leaderboard", h.Leaderboard)

	v1.GET("/students", h.ListStudents)
	v1.POST("/students", company, h.CreateStudent)
	v1.PATCH("/students/:id", company, h.UpdateStudent)
	v1.DELETE("/students/:id", company, h.DeleteStudent)

	v1.GET("/staff", company, h.ListStaff)
	v1.POST("/staff", company, h.CreateStaff)
	v1.PATCH("/staff/:id", company, h.UpdateStaff)
	v1.DELETE("/staff/:id", company, h.DeleteStaff)

	v1.GET("/sessions", h.ListSessions)
	v1.POST("/sessions", company, h.CreateSession)
	v1.PATCH("/sessions/:id", company, h.UpdateSession)
	v1.POST("/sessions/:id/ready", h.MarkSessionReady)
	v1.POST("/sessions/:id/start", h.StartSession)
	v1.POST("/sessions/:id/end", h.EndSession)
	v1.POST("/sessions/:id/join", h.JoinSession)

	return r
}

// ---------- Health ----------

// Healthz reports dependency health; any failing dependency answers 503.
func (h *Handler) Healthz(c *gin.Context) {
	deps := map[string]bool{}
	if h.health != nil {
		deps = h.health(c.Request.Context())
	}
	status := http.StatusOK
	for _, ok := range deps {
		if !ok {
			status = http.StatusServiceUnavailable
		}
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "deps": deps})
}

// ---------- Auth ----------

type loginRequest struct {
	Email    string       `json:"email" binding:"required"`
	Password string       `json:"password" binding:"required"`
	Role     academy.Role `json:"role" binding:"required"`
}

// Login runs the stub login and returns the identity with a token pair.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.authn.Login(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tokens, err := h.signer.Issue(id)
	if err != nil {
		h.log.Error("token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": id, "tokens": tokens})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh exchanges a refresh token for a new token pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := h.signer.Parse(req.RefreshToken, auth.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	id := auth.IdentityFromClaims(claims)
	if !id.Role.Valid() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	tokens, err := h.signer.Issue(id)
	if err != nil {
		h.log.Error("token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": id, "tokens": tokens})
}

// Me returns the caller's identity.
func (h *Handler) Me(c *gin.Context) {
	id, _ := auth.FromContext(c)
	c.JSON(http.StatusOK, id)
}

// ---------- Views ----------

// Dashboard returns the role-specific landing projection.
func (h *Handler) Dashboard(c *gin.Context) {
	actor := h.actor(c)
	c.JSON(http.StatusOK, academy.BuildDashboard(h.svc.Store().Snapshot(), actor, h.dashboardLimit))
}

// Notifications returns recent operation feedback, newest first.
func (h *Handler) Notifications(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": h.feed.Recent(limit)})
}

// ListTutors returns the staff who can be assigned students or sessions.
func (h *Handler) ListTutors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tutors": academy.ActiveTutors(h.svc.Staff())})
}

// Leaderboard ranks all active students academy-wide by progress.
func (h *Handler) Leaderboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"leaderboard": academy.Leaderboard(h.svc.Students())})
}

func (h *Handler) actor(c *gin.Context) academy.Actor {
	id, _ := auth.FromContext(c)
	return id.Actor()
}

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, academy.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, academy.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, academy.ErrValidation):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
