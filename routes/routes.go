// File: /routes/routes.go
package routes

import (
	"aquaevents-api/config"
	"aquaevents-api/controllers"
	"aquaevents-api/database"
	"aquaevents-api/middleware"
	"aquaevents-api/repositories"
	"aquaevents-api/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, mongoStore *database.Mongo, cfg *config.Config, emailService *services.EmailService) {
	// Repositories
	submissionRepo := repositories.NewSubmissionRepository(db)
	eventRepo := repositories.NewEventRepository(mongoStore)
	userRepo := repositories.NewUserRepository(db)

	// Services
	llm := services.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	seoService := services.NewSEOService(llm)
	systemeService := services.NewSystemeService(cfg.SystemeAPIBase, cfg.SystemeAPIKey)
	publishService := services.NewPublishService(submissionRepo, eventRepo, seoService, cfg.SiteURL)
	submissionService := services.NewSubmissionService(submissionRepo, publishService, systemeService, userRepo)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db, eventRepo)
	submissionController := controllers.NewSubmissionController(db, submissionService)
	eventController := controllers.NewEventController(eventRepo, publishService)
	federationController := controllers.NewFederationController(db)
	blogController := controllers.NewBlogController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
		auth.POST("/logout", authController.Logout)
		auth.POST("/send-verification", authController.SendVerificationCode)
		auth.POST("/verify-code", authController.VerifyCode)
		auth.POST("/resend-verification", authController.ResendVerificationCode)

		auth.GET("/debug/verification-code", authController.GetVerificationCode)
	}

	// Public calendar routes
	events := v1.Group("/events")
	{
		events.GET("/", eventController.GetEvents)
		events.GET("/stats", eventController.GetStats)
		events.GET("/:id", eventController.GetEvent)
	}

	// Public reference data
	v1.GET("/federations", federationController.GetFederations)

	// Public blog
	blog := v1.Group("/blog")
	{
		blog.GET("/", blogController.GetPublishedPosts)
		blog.GET("/:slug", blogController.GetPostBySlug)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
			users.GET("/favorites", userController.GetFavorites)
			users.POST("/favorites/:id", userController.AddFavorite)
			users.DELETE("/favorites/:id", userController.RemoveFavorite)
			users.GET("/favorites/:id/check", userController.IsFavorite)
		}

		// Submission routes
		submissions := protected.Group("/submissions")
		{
			submissions.POST("/", submissionController.Submit)
			submissions.GET("/mine", submissionController.MySubmissions)
			submissions.PUT("/:id", submissionController.Update)
			submissions.DELETE("/:id", submissionController.Delete)
		}

		// Authenticated blog actions
		protected.POST("/blog", blogController.CreatePost)

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("/submissions", submissionController.List)
			admin.GET("/submissions/pending", submissionController.Pending)
			admin.POST("/submissions/:id/approve", submissionController.Approve)
			admin.POST("/submissions/:id/reject", submissionController.Reject)
			admin.POST("/submissions/:id/publish", submissionController.Publish)
			admin.DELETE("/events/:id", eventController.DeleteEvent)
			admin.PUT("/blog/:id/status", blogController.UpdatePostStatus)
		}
	}
}
