package web

import (
	"embed"
	"html/template"

	"sweetshop-web/internal/config"
	"sweetshop-web/internal/session"
	"sweetshop-web/internal/views"
	"sweetshop-web/pkg/logger"
	"sweetshop-web/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// NewRouter assembles the page routes and middleware chain
func NewRouter(cfg *config.Config, log *zap.Logger, sessions *session.Manager, registry *views.Registry) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryHandler(log))
	router.Use(logger.GinMiddleware(log))
	router.Use(middleware.RequestIDMiddleware(log))
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	h := NewHandlers(cfg, sessions, registry, log)

	router.GET("/health", h.Health)

	router.Use(SessionMiddleware(sessions, cfg.SessionCookie, log))

	router.GET("/", h.Home)
	router.GET("/login", h.ShowLogin)
	router.POST("/login", h.Login)
	router.GET("/register", h.ShowRegister)
	router.POST("/register", h.Register)
	router.POST("/logout", h.Logout)

	authed := router.Group("/", RequireSession(log))
	{
		authed.GET("/dashboard", h.ShowDashboard)
		authed.POST("/dashboard/filter", h.ApplyFilters)
		authed.POST("/dashboard/clear", h.ClearFilters)
		authed.POST("/sweets/:id/purchase", h.Purchase)
	}

	// Admin pages are gated locally for navigation only; the sweets API makes
	// the authoritative call on every request it receives
	adminPages := router.Group("/admin", RequireAdmin(log))
	{
		adminPages.GET("", h.ShowAdmin)
		adminPages.GET("/sweets/new", h.OpenAddForm)
		adminPages.GET("/sweets/:id/edit", h.OpenEditForm)
		adminPages.GET("/form/cancel", h.CloseForm)
		adminPages.POST("/sweets", h.CreateSweet)
		adminPages.POST("/sweets/:id", h.UpdateSweet)
		adminPages.POST("/sweets/:id/delete", h.DeleteSweet)
		adminPages.GET("/sweets/:id/restock", h.OpenRestock)
		adminPages.GET("/restock/cancel", h.CancelRestock)
		adminPages.POST("/sweets/:id/restock", h.SubmitRestock)
	}

	return router
}
