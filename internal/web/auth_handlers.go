package web

import (
	"net/http"

	"sweetshop-web/internal/api"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type authPageData struct {
	Error    string
	Email    string
	Username string
}

// ShowLogin renders the login form. Authenticated visitors are sent straight
// to the dashboard.
func (h *Handlers) ShowLogin(c *gin.Context) {
	if getSession(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login", authPageData{})
}

// Login exchanges the submitted credentials for a session
func (h *Handlers) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		c.HTML(http.StatusBadRequest, "login", authPageData{
			Error: "Email and password are required",
			Email: email,
		})
		return
	}

	sess, err := h.sessions.Login(c.Request.Context(), email, password)
	if err != nil {
		message := api.ServerMessage(err)
		if message == "" {
			message = "Login failed"
		}
		c.HTML(http.StatusUnauthorized, "login", authPageData{
			Error: message,
			Email: email,
		})
		return
	}

	h.setSessionCookie(c, sess)
	c.Redirect(http.StatusFound, "/dashboard")
}

// ShowRegister renders the registration form
func (h *Handlers) ShowRegister(c *gin.Context) {
	if getSession(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "register", authPageData{})
}

// Register creates an account on the sweets API and logs the new user in
func (h *Handlers) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	data := authPageData{Email: email, Username: username}

	switch {
	case username == "" || email == "" || password == "":
		data.Error = "All fields are required"
	case len(username) < 3:
		data.Error = "Username must be at least 3 characters"
	case len(password) < 6:
		data.Error = "Password must be at least 6 characters"
	case password != confirm:
		data.Error = "Passwords do not match"
	}
	if data.Error != "" {
		c.HTML(http.StatusBadRequest, "register", data)
		return
	}

	sess, err := h.sessions.Register(c.Request.Context(), username, email, password)
	if err != nil {
		message := api.ServerMessage(err)
		if message == "" {
			message = "Registration failed"
		}
		data.Error = message
		c.HTML(http.StatusBadRequest, "register", data)
		return
	}

	h.setSessionCookie(c, sess)
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout drops the session and its views and returns to the login page
func (h *Handlers) Logout(c *gin.Context) {
	if sess := getSession(c); sess != nil {
		h.logger.Info("User logged out", zap.String("username", sess.Username))
		h.sessions.Logout(c.Request.Context(), sess.ID)
		h.registry.Drop(sess.ID)
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}
