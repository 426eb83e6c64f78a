package maintenance

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

// Alerts handles GET /maintenance/alerts for owners: the live triage table.
func (h *Handler) Alerts(c echo.Context) error {
	return utils.RespondWithJSON(c, http.StatusOK, h.service.Alerts())
}

// Schedule handles POST /maintenance/requests for owners.
func (h *Handler) Schedule(c echo.Context) error {
	var req models.CreateMaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Schedule(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, created)
}

// List handles GET /maintenance/requests, optionally filtered by truck.
func (h *Handler) List(c echo.Context) error {
	page, limit := utils.GetPageLimit(c)
	requests, err := h.service.List(c.Request().Context(), c.QueryParam("truck_id"), page, limit)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, requests)
}

// UpdateStatus handles PATCH /maintenance/requests/:id/status.
func (h *Handler) UpdateStatus(c echo.Context) error {
	var req models.UpdateMaintenanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	m, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, m)
}
