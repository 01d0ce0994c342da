// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/landsuite/plot-erp/internal/handler"
	"github.com/landsuite/plot-erp/internal/middleware"
	"github.com/landsuite/plot-erp/internal/permission"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Project  *handler.ProjectHandler
	Plot     *handler.PlotHandler
	Lead     *handler.LeadHandler
	Activity *handler.ActivityHandler
	Booking  *handler.BookingHandler
	Document *handler.DocumentHandler
	Settings *handler.SettingsHandler
}

// Register mounts all routes. The health check is public, /v1/auth hosts
// the session endpoints, and everything else under /v1 requires a valid
// access token. Capability gates are applied per route; read endpoints
// are open to every authenticated role. The optional cache middleware is
// applied to the heavy read routes only.
func Register(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	v1 := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	v1.POST("/auth/logout", h.Auth.Logout)
	v1.GET("/auth/me", h.Auth.Me)

	v1.GET("/users", h.User.List)
	v1.GET("/users/:id", h.User.Get)

	v1.GET("/projects", h.Project.List, cache)
	v1.GET("/projects/:id", h.Project.Get)
	v1.POST("/projects", h.Project.Create, middleware.RequireCapability(permission.SettingsCRUD))

	v1.GET("/plots", h.Plot.List, cache)
	v1.GET("/plots/:id", h.Plot.Get)
	v1.POST("/plots", h.Plot.Create, middleware.RequireCapability(permission.SettingsCRUD))
	v1.POST("/plots/:id/hold", h.Plot.Hold, middleware.RequireCapability(permission.HoldPlot))
	v1.PATCH("/plots/:id/rates", h.Plot.UpdateRates, middleware.RequireCapability(permission.EditRates))

	v1.GET("/leads", h.Lead.List)
	v1.GET("/leads/:id", h.Lead.Get)
	v1.POST("/leads", h.Lead.Create)
	v1.PUT("/leads/:id", h.Lead.Update)
	v1.DELETE("/leads/:id", h.Lead.Delete, middleware.RequireCapability(permission.DeleteEntity))
	v1.GET("/leads/:id/activities", h.Activity.List)
	v1.POST("/leads/:id/activities", h.Activity.Create)

	v1.GET("/bookings", h.Booking.List)
	v1.GET("/bookings/:id", h.Booking.Get)
	v1.POST("/bookings/:id/confirm", h.Booking.Confirm, middleware.RequireCapability(permission.BookPlot))
	v1.POST("/bookings/:id/cancel", h.Booking.Cancel, middleware.RequireCapability(permission.ReReleasePlot))
	v1.GET("/bookings/:id/payments", h.Booking.ListPayments)
	v1.POST("/bookings/:id/payments", h.Booking.RecordPayment, middleware.RequireCapability(permission.BookPlot))

	v1.GET("/documents", h.Document.List)
	v1.POST("/documents", h.Document.Create)
	v1.POST("/documents/:id/verify", h.Document.Verify, middleware.RequireCapability(permission.VerifyDocs))

	v1.GET("/settings", h.Settings.Get)
	v1.PUT("/settings", h.Settings.Update, middleware.RequireCapability(permission.SettingsCRUD))
}
