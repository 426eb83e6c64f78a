package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	custommw "truckpro/internal/api/middleware"
	"truckpro/internal/models"
	"truckpro/internal/modules/assistance"
	"truckpro/internal/modules/booking"
	"truckpro/internal/modules/maintenance"
	"truckpro/internal/modules/session"
	"truckpro/internal/modules/telemetry"
)

// Handlers bundles every module handler the router mounts.
type Handlers struct {
	Session     *session.Handler
	Telemetry   *telemetry.Handler
	Booking     *booking.Handler
	Maintenance *maintenance.Handler
	Assistance  *assistance.Handler
}

// SetupRoutes mounts every route under /api. Authentication is a JWT on
// everything except login, role guards narrow the role-exclusive routes.
func SetupRoutes(e *echo.Echo, h Handlers, jwtSecret string) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	api.POST("/auth/login", h.Session.Login)
	api.POST("/auth/logout", h.Session.Logout)

	protected := api.Group("", custommw.JWTAuth(jwtSecret))

	ownerOnly := custommw.RoleRequired(models.RoleOwner)
	driverOnly := custommw.RoleRequired(models.RoleDriver)
	shipperOnly := custommw.RoleRequired(models.RoleShipper)

	// Role-specific dashboards.
	protected.GET("/dashboard/fleet", h.Telemetry.FleetOverview, ownerOnly)
	protected.POST("/dashboard/fleet/refresh", h.Telemetry.ForceRefresh, ownerOnly)
	protected.GET("/dashboard/driver", h.Telemetry.DriverDashboard, driverOnly)
	protected.GET("/dashboard/trips/:truckId", h.Telemetry.TripView, shipperOnly)

	// Bookings.
	protected.POST("/bookings/estimate", h.Booking.Estimate, shipperOnly)
	protected.POST("/bookings", h.Booking.Create, shipperOnly)
	protected.GET("/bookings", h.Booking.List)
	protected.GET("/bookings/billing", h.Booking.Billing)
	protected.GET("/bookings/:id", h.Booking.Get)
	protected.PATCH("/bookings/:id/status", h.Booking.UpdateStatus, ownerOnly)

	// Maintenance.
	protected.GET("/maintenance/alerts", h.Maintenance.Alerts, ownerOnly)
	protected.POST("/maintenance/requests", h.Maintenance.Schedule, ownerOnly)
	protected.GET("/maintenance/requests", h.Maintenance.List, ownerOnly)
	protected.PATCH("/maintenance/requests/:id/status", h.Maintenance.UpdateStatus, ownerOnly)

	// Roadside assistance.
	protected.POST("/assistance", h.Assistance.Create)
	protected.GET("/assistance", h.Assistance.List)
	protected.PATCH("/assistance/:id/status", h.Assistance.UpdateStatus, ownerOnly)
}
