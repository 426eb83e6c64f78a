package telemetry

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"truckpro/internal/models"
	"truckpro/pkg/utils"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// FleetOverview handles GET /dashboard/fleet for owners.
func (h *Handler) FleetOverview(c echo.Context) error {
	resp := h.service.FleetOverview(c.Request().Context())
	return utils.RespondWithJSON(c, http.StatusOK, resp)
}

// DriverDashboard handles GET /dashboard/driver. The truck comes from the
// session, not the request, so a driver can only see their own vehicle.
func (h *Handler) DriverDashboard(c echo.Context) error {
	_, _, truckID, err := utils.ExtractSessionInfo(c)
	if err != nil {
		return err
	}
	if truckID == "" {
		return utils.HandleServiceError(c, models.ErrTruckRequired)
	}
	resp, err := h.service.DriverView(c.Request().Context(), truckID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, resp)
}

// TripView handles GET /dashboard/trips/:truckId for shippers. The select
// query parameter reloads the truck's history and rewinds its cursor.
func (h *Handler) TripView(c echo.Context) error {
	truckID := c.Param("truckId")
	selecting := c.QueryParam("select") == "true"
	resp, err := h.service.TripView(c.Request().Context(), truckID, selecting)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, resp)
}

// ForceRefresh handles POST /dashboard/fleet/refresh for owners.
func (h *Handler) ForceRefresh(c echo.Context) error {
	if err := h.service.RefreshFleet(c.Request().Context()); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Fleet data refreshed"})
}
