package routes

import (
	"net/http"

	authapi "catalog-app/internal/api/auth"
	categoriesapi "catalog-app/internal/api/categories"
	worksapi "catalog-app/internal/api/works"
	"catalog-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router serves.
type Handlers struct {
	Auth       *authapi.Handler
	Works      *worksapi.Handler
	Categories *categoriesapi.Handler
	JWTSecret  string
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/events", h.Works.Events)
	// passwords are compared as typed
	r.POST("/login", h.Auth.Login)

	r.GET("/artworks", h.Works.List)
	r.GET("/artworks/:id", h.Works.Get)
	r.GET("/artworks/:id/inquiry", h.Works.Inquiry)
	r.GET("/categories", h.Categories.List)

	// Admin
	admin := r.Group("/")
	admin.Use(
		middleware.AuthMiddleware(h.JWTSecret),
		middleware.RequireRole(authapi.RoleAdmin),
		middleware.SanitizeAndCleanInputMiddleware(),
	)

	admin.POST("/images", h.Works.PreviewImage)
	admin.POST("/artworks", h.Works.Create)
	admin.PUT("/artworks/:id", h.Works.Update)
	admin.DELETE("/artworks/:id", h.Works.Delete)
	admin.PUT("/artworks/:id/status", h.Works.SetStatus)

	admin.POST("/categories", h.Categories.Add)
	admin.DELETE("/categories/:name", h.Categories.Remove)
}
