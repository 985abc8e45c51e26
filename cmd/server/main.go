package main

import (
	"log"

	"github.com/clientdesk/assignment-api/internal/config"
	"github.com/clientdesk/assignment-api/internal/constants"
	"github.com/clientdesk/assignment-api/internal/database"
	"github.com/clientdesk/assignment-api/internal/handlers"
	"github.com/clientdesk/assignment-api/internal/middleware"
	"github.com/clientdesk/assignment-api/internal/repository"
	"github.com/clientdesk/assignment-api/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	clientService := services.NewClientService(clientRepo)
	templateService := services.NewTemplateService(templateRepo)
	assignmentService := services.NewAssignmentService(db, assignmentRepo, templateRepo, clientRepo, taskRepo, settingRepo, categoryRepo, activityRepo)
	syncService := services.NewTemplateSyncService(db, assignmentRepo, templateRepo, taskRepo, settingRepo, categoryRepo, activityRepo)
	taskService := services.NewTaskService(taskRepo, assignmentRepo)

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(clientService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService, syncService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Client Assignment API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Client routes (protected)
		clients := api.Group("/clients")
		clients.Use(middleware.RequireAuth())
		{
			clients.GET("", clientHandler.ListClients)
			clients.POST("", clientHandler.CreateClient)
			clients.GET("/:id", clientHandler.GetClient)
			clients.PATCH("/:id", clientHandler.UpdateClient)
			clients.DELETE("/:id", clientHandler.DeleteClient)
		}

		// Template routes (protected)
		templates := api.Group("/templates")
		templates.Use(middleware.RequireAuth())
		{
			templates.GET("", templateHandler.ListTemplates)
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("/:id", templateHandler.GetTemplate)
		}

		// Assignment routes (protected)
		assignments := api.Group("/assignments")
		assignments.Use(middleware.RequireAuth())
		{
			assignments.GET("", assignmentHandler.ListAssignments)
			assignments.POST("", assignmentHandler.CreateAssignment)
			assignments.GET("/:id", assignmentHandler.GetAssignment)
			assignments.POST("/:id/team", assignmentHandler.AddTeamMember)
			assignments.POST("/:id/sync-template", assignmentHandler.SyncTemplate)
			assignments.GET("/:id/activity", assignmentHandler.ListActivity)
			assignments.GET("/:id/tasks", taskHandler.ListTasks)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.PATCH("/:id", taskHandler.UpdateTask)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
