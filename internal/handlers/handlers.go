// Package handlers wires the HTTP surface: JSON endpoints for accounts,
// survey traversal, footprint results and carbon offsets. Responses share
// one envelope: {"success": true, ...} or {"success": false, "error": ...}.
package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"carbontrack/internal/auth"
	"carbontrack/internal/config"
	"carbontrack/internal/middleware"
	"carbontrack/internal/models"
)

func SetupRoutes(r *gin.Engine, db *sql.DB, manager *auth.Manager, cfg *config.Config) {
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RateLimit(cfg))
	r.Use(addDBContext(db))
	r.Use(addAuthContext(manager))

	api := r.Group("/api")

	api.POST("/auth/register", middleware.AuthRateLimit(cfg), handleRegister)
	api.POST("/auth/login", middleware.AuthRateLimit(cfg), handleLogin)
	api.POST("/auth/password-reset/request", middleware.AuthRateLimit(cfg), handleRequestPasswordReset)
	api.POST("/auth/password-reset/confirm", middleware.AuthRateLimit(cfg), handleResetPassword)

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(manager))
	{
		protected.POST("/auth/logout", handleLogout)
		protected.GET("/auth/me", handleMe)

		protected.PUT("/profile", handleUpdateProfile)
		protected.PUT("/profile/picture", handleUpdateProfilePicture)

		protected.GET("/survey/categories", handleCategories)
		protected.GET("/survey/categories/:id/questions", handleCategoryQuestions)
		protected.POST("/survey/sessions", handleStartSession)
		protected.GET("/survey/sessions/active", handleActiveSession)
		protected.PUT("/survey/sessions/:id/progress", handleSessionProgress)
		protected.POST("/survey/answers", handleSaveAnswer)
		protected.GET("/survey/sessions/:id/answers", handleSessionAnswers)

		protected.POST("/results", handleSubmitResult)
		protected.GET("/results", handleListResults)
		protected.GET("/results/latest", handleLatestResult)

		protected.GET("/offsets/projects", handleOffsetProjects)
		protected.POST("/offsets", handleCreateOffset)
		protected.GET("/offsets", handleListOffsets)
	}
}

func addDBContext(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

func addAuthContext(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("auth", manager)
		c.Next()
	}
}

func getDB(c *gin.Context) *sql.DB {
	return c.MustGet("db").(*sql.DB)
}

func getAuth(c *gin.Context) *auth.Manager {
	return c.MustGet("auth").(*auth.Manager)
}

func getUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func respondOK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}
