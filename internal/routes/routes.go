package routes

import (
	"task-approval-api/internal/handlers"
	"task-approval-api/internal/middleware"
	"task-approval-api/internal/models"
	"task-approval-api/internal/realtime"
	"task-approval-api/internal/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes builds the router around an engine owning the given
// database handle.
func SetupRoutes(db *gorm.DB) *gin.Engine {
	engine := workflow.NewEngine(db)
	hub := realtime.NewHub()

	authHandler := handlers.NewAuthHandler(engine)
	taskHandler := handlers.NewTaskHandler(engine, hub)
	memberHandler := handlers.NewMemberHandler(engine)
	projectHandler := handlers.NewProjectHandler(engine)
	wsHandler := handlers.NewWSHandler(hub)

	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204) // This depends on the implementation of the frontend
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Approval API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/auth/request-otp", authHandler.RequestOTP)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Task endpoints
		protectedRoutes.GET("/tasks", taskHandler.GetTasks)
		protectedRoutes.GET("/my-tasks", taskHandler.GetMyTasks)
		protectedRoutes.GET("/tasks/:id", taskHandler.GetTaskByID)
		protectedRoutes.POST("/tasks", taskHandler.CreateTask)
		protectedRoutes.PUT("/tasks/:id", taskHandler.UpdateTask)
		protectedRoutes.PATCH("/tasks/:id/status", taskHandler.UpdateTaskStatus)
		protectedRoutes.DELETE("/tasks/:id", taskHandler.DeleteTask)

		// Workflow transitions
		protectedRoutes.POST("/tasks/:id/submit", taskHandler.SubmitCompletion)
		protectedRoutes.POST("/tasks/:id/admin-review", taskHandler.AdminReview)
		protectedRoutes.POST("/tasks/:id/superadmin-review", taskHandler.SuperadminReview)

		// Role-scoped review queues
		protectedRoutes.GET("/reviews/admin", taskHandler.PendingAdminReview)
		protectedRoutes.GET("/reviews/superadmin", taskHandler.PendingSuperadminApproval)

		// Stats endpoint
		protectedRoutes.GET("/stats/:email", taskHandler.GetStatsByAssignee)

		// Project endpoints
		protectedRoutes.GET("/projects", projectHandler.GetProjects)
		protectedRoutes.POST("/projects", projectHandler.CreateProject)
		protectedRoutes.DELETE("/projects/:id", projectHandler.DeleteProject)

		// Realtime task events
		protectedRoutes.GET("/ws", wsHandler.Serve)
	}

	// Roster management is superadmin-only
	memberRoutes := protectedRoutes.Group("/members")
	memberRoutes.GET("", memberHandler.GetMembers)
	memberRoutes.Use(middleware.RequireRole(models.RoleSuperadmin))
	{
		memberRoutes.POST("", memberHandler.CreateMember)
		memberRoutes.DELETE("/:id", memberHandler.DeleteMember)
	}

	return ginRouter
}
