package main

import (
	"fmt"
	"net/http"
	"os"

	"operationaltracker/internal/config"
	"operationaltracker/internal/database"
	"operationaltracker/internal/handlers"
	"operationaltracker/internal/logger"
	"operationaltracker/internal/middleware"
	"operationaltracker/internal/models"
	"operationaltracker/internal/services"
	"operationaltracker/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "operationaltracker/internal/docs" // Import swagger docs
)

// @title           Operational Tracker API
// @version         1.0
// @description     Operational Tracker manages construction site operations: projects, tasks, materials, equipment, attendance and documents, with a full audit trail.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validations
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	defer auditService.Close()

	userService := services.NewUserService(db)
	projectService := services.NewProjectService(db)
	taskService := services.NewTaskService(db)
	materialService := services.NewMaterialService(db)
	equipmentService := services.NewEquipmentService(db)
	attendanceService := services.NewAttendanceService(db)
	documentService := services.NewDocumentService(db)
	notificationService := services.NewNotificationService(db)
	reportService := services.NewReportService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	projectHandler := handlers.NewProjectHandler(projectService, auditService)
	taskHandler := handlers.NewTaskHandler(taskService, auditService)
	materialHandler := handlers.NewMaterialHandler(materialService, auditService)
	equipmentHandler := handlers.NewEquipmentHandler(equipmentService, auditService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, auditService)
	documentHandler := handlers.NewDocumentHandler(documentService, auditService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reportHandler := handlers.NewReportHandler(reportService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthRequired())

	protected.GET("/auth/me", authHandler.Me)

	staffRoles := middleware.RequireRoles(models.RoleAdmin, models.RoleManager, models.RoleSupervisor)
	managerRoles := middleware.RequireRoles(models.RoleAdmin, models.RoleManager)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	// User routes
	users := protected.Group("/users")
	users.GET("", adminOnly, userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.POST("", adminOnly, userHandler.CreateUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.PATCH("/:id/deactivate", adminOnly, userHandler.DeactivateUser)
	users.PATCH("/:id/activate", adminOnly, userHandler.ActivateUser)

	// Project routes
	projects := protected.Group("/projects")
	projects.GET("", projectHandler.ListProjects)
	projects.GET("/:id", projectHandler.GetProject)
	projects.POST("", managerRoles, projectHandler.CreateProject)
	projects.PUT("/:id", managerRoles, projectHandler.UpdateProject)
	projects.POST("/:id/team", staffRoles, projectHandler.AssignTeam)

	// Task routes
	tasks := protected.Group("/tasks")
	tasks.GET("", taskHandler.ListTasks)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.POST("", staffRoles, taskHandler.CreateTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.POST("/:id/activity", taskHandler.LogActivity)
	tasks.GET("/:id/activities", taskHandler.GetActivities)

	// Material routes
	materials := protected.Group("/materials")
	materials.GET("", materialHandler.ListMaterials)
	materials.GET("/:id", materialHandler.GetMaterial)
	materials.POST("", staffRoles, materialHandler.CreateMaterial)
	materials.PUT("/:id", staffRoles, materialHandler.UpdateMaterial)
	materials.POST("/:id/usage", materialHandler.RecordUsage)
	materials.GET("/:id/usage", materialHandler.ListUsage)
	materials.POST("/requisitions", materialHandler.CreateRequisition)
	materials.GET("/requisitions", materialHandler.ListRequisitions)
	materials.PATCH("/requisitions/:id/review", managerRoles, materialHandler.ReviewRequisition)

	// Equipment routes
	equipment := protected.Group("/equipment")
	equipment.GET("", equipmentHandler.ListEquipment)
	equipment.GET("/:id", equipmentHandler.GetEquipment)
	equipment.POST("", equipmentHandler.CreateEquipment)
	equipment.PUT("/:id", equipmentHandler.UpdateEquipment)
	equipment.POST("/:id/breakdown", equipmentHandler.ReportBreakdown)
	equipment.POST("/:id/maintenance", equipmentHandler.RecordMaintenance)
	equipment.GET("/:id/breakdowns", equipmentHandler.ListBreakdowns)
	equipment.GET("/:id/maintenance", equipmentHandler.ListMaintenance)

	// Attendance routes
	attendance := protected.Group("/attendance")
	attendance.GET("", attendanceHandler.ListAttendance)
	attendance.POST("/clock-in", attendanceHandler.ClockIn)
	attendance.POST("/clock-out", attendanceHandler.ClockOut)
	attendance.POST("/mark", staffRoles, attendanceHandler.MarkAttendance)
	attendance.PUT("/:id", staffRoles, attendanceHandler.UpdateAttendance)
	attendance.POST("/leave-requests", attendanceHandler.CreateLeaveRequest)
	attendance.GET("/leave-requests", attendanceHandler.ListLeaveRequests)
	attendance.PATCH("/leave-requests/:id/review", staffRoles, attendanceHandler.ReviewLeaveRequest)

	// Document routes
	documents := protected.Group("/documents")
	documents.GET("", documentHandler.ListDocuments)
	documents.GET("/:id", documentHandler.GetDocument)
	documents.POST("", documentHandler.CreateDocument)
	documents.DELETE("/:id", documentHandler.DeleteDocument)

	// Notification routes
	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.ListNotifications)
	notifications.PATCH("/:id/read", notificationHandler.MarkRead)
	notifications.PATCH("/read-all", notificationHandler.MarkAllRead)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/dashboard", reportHandler.Dashboard)
	reports.GET("/progress", reportHandler.ProjectProgress)

	// Audit trail
	protected.GET("/audit", managerRoles, auditHandler.ListAuditLogs)

	log.Infof("Starting operational tracker server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
