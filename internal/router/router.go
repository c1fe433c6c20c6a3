// Package router wires handlers onto Echo route groups. Reads are open
// to any authenticated user; fleet, schedule and reference-data writes
// require the STAFF role.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/vllynnyk/airport-service/internal/config"
	"github.com/vllynnyk/airport-service/internal/handler"
	"github.com/vllynnyk/airport-service/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Airport  *handler.AirportHandler
	Route    *handler.RouteHandler
	Airplane *handler.AirplaneHandler
	Crew     *handler.CrewHandler
	Flight   *handler.FlightHandler
	Order    *handler.OrderHandler
}

// Register mounts all routes. The health check and /v1/auth are public;
// everything else under /v1 requires a valid access token. rdb may be
// nil, which disables rate limiting and response caching.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	v1 := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	v1.GET("/me", h.Auth.Me)

	// Listing endpoints are read-heavy; serve repeats from Redis.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	v1.GET("/airports", h.Airport.List, cache)
	v1.GET("/airports/:id", h.Airport.Get)
	v1.GET("/routes", h.Route.List, cache)
	v1.GET("/routes/:id", h.Route.Get)
	v1.GET("/airplane-types", h.Airplane.ListTypes, cache)
	v1.GET("/airplane-types/:id", h.Airplane.GetType)
	v1.GET("/airplanes", h.Airplane.List, cache)
	v1.GET("/airplanes/:id", h.Airplane.Get)
	v1.GET("/crew", h.Crew.List, cache)
	v1.GET("/crew/:id", h.Crew.Get)
	v1.GET("/flights", h.Flight.List, cache)
	v1.GET("/flights/:id", h.Flight.Get)

	// Orders are personal: any authenticated user books and manages
	// their own.
	v1.POST("/orders", h.Order.Create)
	v1.GET("/orders", h.Order.List)
	v1.GET("/orders/:id", h.Order.Get)
	v1.DELETE("/orders/:id", h.Order.Delete)

	staff := v1.Group("", middleware.RequireRole("STAFF"))

	staff.POST("/airports", h.Airport.Create)
	staff.PUT("/airports/:id", h.Airport.Update)
	staff.DELETE("/airports/:id", h.Airport.Delete)

	staff.POST("/routes", h.Route.Create)
	staff.PUT("/routes/:id", h.Route.Update)
	staff.DELETE("/routes/:id", h.Route.Delete)

	staff.POST("/airplane-types", h.Airplane.CreateType)
	staff.PUT("/airplane-types/:id", h.Airplane.UpdateType)
	staff.DELETE("/airplane-types/:id", h.Airplane.DeleteType)

	staff.POST("/airplanes", h.Airplane.Create)
	staff.PUT("/airplanes/:id", h.Airplane.Update)
	staff.DELETE("/airplanes/:id", h.Airplane.Delete)

	staff.POST("/crew", h.Crew.Create)
	staff.PUT("/crew/:id", h.Crew.Update)
	staff.DELETE("/crew/:id", h.Crew.Delete)

	staff.POST("/flights", h.Flight.Create)
	staff.PUT("/flights/:id", h.Flight.Update)
	staff.DELETE("/flights/:id", h.Flight.Delete)
}
