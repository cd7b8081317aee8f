// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"insight/internal/delivery/http/middleware"
	"insight/internal/delivery/http/router/handler"
	"insight/internal/delivery/http/web"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	InsightHandler      *handler.InsightHandler
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	insightHandler      *handler.InsightHandler
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		insightHandler:      params.InsightHandler,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// The browser map view
	web.Register(e)

	apiGroup := e.Group("/api")
	{
		apiGroup.GET("/suggest", r.insightHandler.Suggest)
		apiGroup.POST("/analyze", r.insightHandler.Analyze)
		apiGroup.GET("/location", r.insightHandler.Current)
		apiGroup.GET("/history", r.insightHandler.History)
		apiGroup.GET("/export.kml", r.insightHandler.ExportKML)
	}
}
