package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/intask-dev/intask/internal/config"
	"github.com/intask-dev/intask/internal/database"
	"github.com/intask-dev/intask/internal/handlers"
	"github.com/intask-dev/intask/internal/middleware"
	"github.com/intask-dev/intask/internal/models"
	"github.com/intask-dev/intask/internal/repository"
	"github.com/intask-dev/intask/internal/services"
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

	r := newRouter(cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func newRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, teamRepo, cfg.JWTSecret)
	dashboardService := services.NewDashboardService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	teamHandler := handlers.NewTeamHandler(teamRepo)
	projectHandler := handlers.NewProjectHandler(projectRepo)
	taskHandler := handlers.NewTaskHandler(taskRepo, projectRepo, userRepo)
	userHandler := handlers.NewUserHandler(userRepo, teamRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	adminHandler := handlers.NewAdminHandler(teamRepo)

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		// Auth routes (public except verify)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify", requireAuth, authHandler.Verify)
			auth.PATCH("/password", requireAuth, authHandler.ChangePassword)
		}

		// Project routes (protected; per-operation rules live in policy)
		projects := api.Group("/projects", requireAuth)
		{
			projects.GET("", projectHandler.List)
			projects.POST("", projectHandler.Create)
			projects.PUT("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Delete)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks", requireAuth)
		{
			tasks.GET("", taskHandler.List)
			tasks.POST("", taskHandler.Create)
			tasks.PATCH("/:id", taskHandler.Update)
			tasks.DELETE("/:id", taskHandler.Delete)
		}

		// Team routes (protected)
		teams := api.Group("/teams", requireAuth)
		{
			teams.GET("", teamHandler.List)
			teams.POST("", teamHandler.Create)
			teams.PUT("/:id", teamHandler.Update)
			teams.DELETE("/:id", teamHandler.Delete)
		}

		// User routes (protected)
		users := api.Group("/users", requireAuth)
		{
			users.PATCH("/:id/team", middleware.RequireRoles(models.RoleAdmin), userHandler.AssignTeam)
		}

		// Admin-only routes
		dashboard := api.Group("/dashboard", requireAuth, middleware.RequireRoles(models.RoleAdmin))
		{
			dashboard.GET("/admin", dashboardHandler.AdminDashboard)
		}

		admin := api.Group("/admin", requireAuth, middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/teams/deleted", adminHandler.ListDeletedTeams)
			admin.POST("/teams/:id/restore", adminHandler.RestoreTeam)
		}
	}

	return r
}
