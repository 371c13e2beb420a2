package web

import (
	"net/http"
	"time"

	"sweetshop-web/internal/api"
	"sweetshop-web/internal/config"
	"sweetshop-web/internal/session"
	"sweetshop-web/internal/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers renders the storefront pages. Every page reads from the session's
// own views and every form post funnels through them, so all inventory state
// and notices live in one place per session.
type Handlers struct {
	cfg      *config.Config
	sessions *session.Manager
	registry *views.Registry
	logger   *zap.Logger
}

// NewHandlers creates the page handler set
func NewHandlers(cfg *config.Config, sessions *session.Manager, registry *views.Registry, logger *zap.Logger) *Handlers {
	return &Handlers{
		cfg:      cfg,
		sessions: sessions,
		registry: registry,
		logger:   logger,
	}
}

// Home redirects to the dashboard, or to login for anonymous visitors
func (h *Handlers) Home(c *gin.Context) {
	if getSession(c) == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// Health returns service health status
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "sweetshop-web",
		"time":    time.Now().UTC(),
	})
}

func (h *Handlers) setSessionCookie(c *gin.Context, sess *session.Session) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetCookie(h.cfg.SessionCookie, sess.ID, maxAge, "/", "", h.cfg.CookieSecure, true)
}

func (h *Handlers) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.cfg.SessionCookie, "", -1, "/", "", h.cfg.CookieSecure, true)
}

// expireSession tears the session down after the backend rejected its token.
// The user lands back on the login page instead of a broken half-view.
func (h *Handlers) expireSession(c *gin.Context, sess *session.Session) {
	h.logger.Info("Session token rejected by backend", zap.String("username", sess.Username))
	h.sessions.Logout(c.Request.Context(), sess.ID)
	h.registry.Drop(sess.ID)
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

// unauthorized reports whether the error chain contains a 401 from the
// sweets API
func unauthorized(err error) bool {
	return err != nil && api.IsUnauthorized(err)
}
