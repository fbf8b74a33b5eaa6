/**
* Name:			handler.go
* Description:	Shared dependencies and rendering helpers for the web handlers
* Workflow:		router -> Gate -> HandlerFunc(c, session) -> render / redirect with flash
 */
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"TravelPlanner_WebProject/internal/auth"
	"TravelPlanner_WebProject/internal/metrics"
	"TravelPlanner_WebProject/internal/models"
	"TravelPlanner_WebProject/internal/planner"
	"TravelPlanner_WebProject/internal/session"

	"github.com/gin-gonic/gin"
)

// HandlerFunc is a route handler that receives the request session
// explicitly. Flashes and identity changes made on sess are persisted by
// render and redirect.
type HandlerFunc func(c *gin.Context, sess *session.Session)

// Credentials registers and verifies users. *auth.CredentialStore satisfies it.
type Credentials interface {
	Register(ctx context.Context, in auth.RegisterInput) (*models.User, error)
	Verify(ctx context.Context, email, password string) (*models.User, error)
}

// TripPlanner runs a trip request. *planner.Orchestrator satisfies it.
type TripPlanner interface {
	Plan(ctx context.Context, f planner.Form, observe planner.Observer) (*planner.Plan, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the handlers need. Metrics may be nil.
type Deps struct {
	Credentials Credentials
	Planner     TripPlanner
	DB          Pinger
	Sessions    *session.Store
	Metrics     *metrics.Metrics
	Logger      *slog.Logger

	// AllowedOrigins are accepted for websocket upgrades in addition to the
	// serving host.
	AllowedOrigins []string
}

type Handler struct {
	creds    Credentials
	planner  TripPlanner
	db       Pinger
	sessions *session.Store
	metrics  *metrics.Metrics
	logger   *slog.Logger
	origins  map[string]struct{}
	now      func() time.Time
}

func New(d Deps) *Handler {
	origins := make(map[string]struct{}, len(d.AllowedOrigins))
	for _, o := range d.AllowedOrigins {
		origins[o] = struct{}{}
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		creds:    d.Credentials,
		planner:  d.Planner,
		db:       d.DB,
		sessions: d.Sessions,
		metrics:  d.Metrics,
		logger:   logger,
		origins:  origins,
		now:      time.Now,
	}
}

func withSession(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		h(c, session.From(c))
	}
}

// render writes an HTML page. Pending flashes are consumed, so the session
// cookie is rewritten before the body.
func (h *Handler) render(c *gin.Context, sess *session.Session, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Flashes"] = sess.PopFlashes()
	data["User"] = sess
	data["Now"] = h.now()

	h.saveSession(c, sess)
	c.HTML(status, name, data)
}

// redirect queues a flash (when message is non-empty) and sends a 303.
func (h *Handler) redirect(c *gin.Context, sess *session.Session, location, category, message string) {
	if message != "" {
		sess.AddFlash(category, message)
	}
	h.saveSession(c, sess)
	c.Redirect(http.StatusSeeOther, location)
}

func (h *Handler) saveSession(c *gin.Context, sess *session.Session) {
	if err := h.sessions.Save(c.Writer, sess); err != nil {
		h.logger.Error("Failed to save session", "path", c.Request.URL.Path, "error", err)
	}
}
