package web

import (
	"net/http"

	"sweetshop-web/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sessionContextKey is the gin context key holding the resolved session
const sessionContextKey = "session"

// SessionMiddleware resolves the session cookie into a session.Session and
// stores it in the request context. Anonymous requests pass through with no
// session set; the Require* guards decide what that means per route.
func SessionMiddleware(manager *session.Manager, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		sess, err := manager.Lookup(c.Request.Context(), cookie)
		if err != nil {
			logger.Debug("Stale session cookie",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// RequireSession redirects anonymous requests to the login page
func RequireSession(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if getSession(c) == nil {
			logger.Debug("Unauthenticated request",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin silently redirects non-admin sessions to the dashboard before
// any admin data is loaded. This only gates navigation; the sweets API
// enforces authorization on every call.
func RequireAdmin(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := getSession(c)
		if sess == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if !sess.IsAdmin() {
			logger.Warn("Non-admin attempted to reach admin view",
				zap.String("username", sess.Username),
				zap.String("path", c.Request.URL.Path),
			)
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// getSession retrieves the resolved session from the gin context, or nil
func getSession(c *gin.Context) *session.Session {
	if value, exists := c.Get(sessionContextKey); exists {
		if sess, ok := value.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
