package api

import (
	"net/http"
	"time"

	authDelivery "mailsort-backend/internal/auth/delivery"
	authUsecase "mailsort-backend/internal/auth/usecase"
	emailDelivery "mailsort-backend/internal/email/delivery"
	emailUsecase "mailsort-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestLogger emits one structured line per request.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

func SetupRoutes(r *gin.Engine, auth authUsecase.AuthUsecase, emails emailUsecase.EmailUsecase, categories emailUsecase.CategoryUsecase) {
	authHandler := authDelivery.NewAuthHandler(auth)
	emailHandler := emailDelivery.NewEmailHandler(emails, categories)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/me", authDelivery.AuthMiddleware(auth), authHandler.Me)
		}

		protected := api.Group("")
		protected.Use(authDelivery.AuthMiddleware(auth))
		{
			protected.GET("/stats", emailHandler.Stats)

			categoryRoutes := protected.Group("/categories")
			{
				categoryRoutes.GET("", emailHandler.ListCategories)
				categoryRoutes.POST("", emailHandler.CreateCategory)
				categoryRoutes.GET("/stats", emailHandler.CategoryStats)
				categoryRoutes.PATCH("/:id", emailHandler.UpdateCategory)
				categoryRoutes.DELETE("/:id", emailHandler.DeleteCategory)
			}

			emailRoutes := protected.Group("/emails")
			{
				emailRoutes.GET("", emailHandler.ListEmails)
				emailRoutes.GET("/:id", emailHandler.GetEmail)
				emailRoutes.POST("/sync", emailHandler.Sync)
				emailRoutes.POST("/:id/classify", emailHandler.Classify)
				emailRoutes.POST("/compute-embeddings", emailHandler.ComputeEmbeddings)
			}
		}
	}
}
