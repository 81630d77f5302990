package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"directory-backend/internal/shared/middleware"
	"directory-backend/internal/shared/response"
	"directory-backend/pkg/container"
)

const healthPath = "/api/v1/health"

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(healthPath),
		middleware.Recovery(),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupDirectoryRoutes(v1, c)
	}

	return router
}

// ========================================
// DIRECTORY ROUTES
// ========================================
func setupDirectoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	h := c.DirectoryHandler

	directory := v1.Group("/directory")
	{
		directory.GET("", h.GetVisiblePage)
		directory.GET("/query", h.Query)
		directory.GET("/export", h.ExportRoster)
		directory.POST("/load", h.LoadDirectory)
		directory.PUT("/filter", h.SetLetterFilter)
		directory.PUT("/page", h.GoToPage)
		directory.POST("/entries/:ordinal/select", h.SelectEntry)
	}
}

// ========================================
// HEALTH
// ========================================

// healthCheckHandler: status "degraded" khi một source không sẵn sàng.
// The directory keeps serving from whatever source answered.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := "ok"
		services := gin.H{}

		// Check database
		if err := appCtx.DB.Ping(ctx); err != nil {
			services["database"] = "error: " + err.Error()
			status = "degraded"
		} else {
			stats, _ := appCtx.DB.Stats()
			services["database"] = gin.H{"status": "ok", "pool": stats}
		}

		// Check redis (memory cache khi Redis down)
		if appCtx.Redis == nil {
			services["redis"] = "disconnected"
			status = "degraded"
		} else if err := appCtx.Redis.Ping(ctx); err != nil {
			services["redis"] = "error: " + err.Error()
			status = "degraded"
		} else {
			services["redis"] = "ok"
		}

		// Check minio
		if appCtx.Storage == nil {
			services["minio"] = "disabled"
		} else if err := appCtx.Storage.Ping(ctx); err != nil {
			services["minio"] = "error: " + err.Error()
		} else {
			services["minio"] = "ok"
		}

		response.Success(c, http.StatusOK, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
			"directory": appCtx.DirectoryService.Roster().Summary(),
		})
	}
}
