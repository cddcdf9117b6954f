package routes

import (
	"template-review-api/controllers"
	"template-review-api/middleware"
	"template-review-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Template Review API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Lookups (all authenticated users)
			protected.GET("/departments", controllers.GetDepartments)
			protected.GET("/equipment", controllers.GetEquipment)

			// Notifications
			protected.GET("/notifications", controllers.GetNotifications)
			protected.PUT("/notifications/:id/read", controllers.MarkNotificationRead)

			// Template requests
			templates := protected.Group("/template-requests")
			{
				templates.GET("", controllers.GetTemplateRequests)
				templates.GET("/:id", controllers.GetTemplateRequest)
				templates.GET("/:id/current", controllers.GetCurrentSubmission)
				templates.GET("/:id/submissions", controllers.GetSubmissionHistory)

				// Supervisors create and resubmit
				templates.POST("", middleware.RequireRole(models.RoleSupervisor), controllers.CreateTemplateRequest)
				templates.POST("/:id/resubmit", middleware.RequireRole(models.RoleSupervisor), controllers.PostResubmit)

				// Reviewers and admins decide
				templates.POST("/:id/decision", middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.PostDecision)
			}

			// Review queue
			review := protected.Group("/review")
			review.Use(middleware.RequireRole(models.RoleReviewer, models.RoleAdmin))
			{
				review.GET("/pending", controllers.GetReviewQueue)
			}
		}
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Route not found",
		})
	})
}
