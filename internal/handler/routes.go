package handler

import (
	"github.com/dafibh/fortuna/fortuna-forecast/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, forecastHandler *ForecastHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Forecast routes (protected, rate limited per workspace)
	forecastGroup := api.Group("/forecast")
	forecastGroup.Use(authMiddleware.Authenticate())
	forecastGroup.Use(middleware.RateLimitMiddleware(rateLimiter))
	forecastGroup.POST("/projection", forecastHandler.Project)
	forecastGroup.GET("/projection", forecastHandler.ProjectWorkspace)
	forecastGroup.POST("/simulation", forecastHandler.Simulate)
	forecastGroup.POST("/workspace-simulation", forecastHandler.SimulateWorkspace)
}
