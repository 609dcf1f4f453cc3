package main

import (
	"project-service/internal/handler"
	mid "project-service/internal/middleware"
	"project-service/pkg/config"
	"project-service/pkg/database"
	"project-service/pkg/logger"
	"project-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env if present)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting project-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established",
		zap.String("driver", appConfig.DB.Driver))

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoints
	e.GET("/health", handler.HealthCheck)
	e.GET("/ping", handler.HealthCheck)

	// API routes - every request is resolved to an organization (or to
	// no tenant context) before any entity access
	api := e.Group("/api", mid.OrganizationMiddleware)

	api.GET("/organization", handler.GetOrganization)

	// Project routes
	api.GET("/projects", handler.ListProjects)
	api.POST("/projects", handler.CreateProject)
	api.GET("/projects/:id", handler.GetProject)
	api.PUT("/projects/:id", handler.UpdateProject)
	api.DELETE("/projects/:id", handler.DeleteProject)
	api.GET("/projects/:id/tasks", handler.ListTasks)
	api.GET("/projects/:id/stats", handler.GetProjectStats)

	// Task routes
	api.POST("/tasks", handler.CreateTask)
	api.GET("/tasks/:id", handler.GetTask)
	api.PUT("/tasks/:id", handler.UpdateTask)
	api.DELETE("/tasks/:id", handler.DeleteTask)
	api.GET("/tasks/:id/comments", handler.ListComments)

	// Comment routes
	api.POST("/comments", handler.AddComment)
	api.PUT("/comments/:id", handler.UpdateComment)
	api.DELETE("/comments/:id", handler.DeleteComment)

	// Statistics routes
	api.GET("/stats/organization", handler.GetOrganizationStats)
	api.GET("/stats/projects", handler.ListAllProjectStats)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
