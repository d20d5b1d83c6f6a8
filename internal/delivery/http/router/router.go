// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler      *handler.AccountHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler      *handler.AccountHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:      params.AccountHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Handle)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account CRUD
	userGroup := e.Group("/users")
	{
		userGroup.POST("", r.accountHandler.CreateAccount)
		userGroup.GET("", r.accountHandler.ListAccounts)
		userGroup.GET("/:id", r.accountHandler.GetAccountByID)
		userGroup.GET("/email/:email", r.accountHandler.GetAccountByEmail)
		userGroup.PATCH("/:id", r.accountHandler.UpdateAccount)
		userGroup.DELETE("/:id", r.accountHandler.DeleteAccount)
	}

	// Login
	e.POST("/sessions", r.accountHandler.CreateSession)

	// Routes that require a valid bearer token
	authGroup := e.Group("/auth")
	authGroup.Use(r.authMiddleware.Authenticate)
	{
		authGroup.GET("/me", r.accountHandler.Me)
	}
}
