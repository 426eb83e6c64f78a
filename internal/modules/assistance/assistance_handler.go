package assistance

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

// Create handles POST /assistance. A driver may only call for their own
// truck; the owner can call for any truck.
func (h *Handler) Create(c echo.Context) error {
	_, role, truckID, err := utils.ExtractSessionInfo(c)
	if err != nil {
		return err
	}

	var req models.CreateAssistanceRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if role == string(models.RoleDriver) {
		req.TruckID = truckID
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, created)
}

// List handles GET /assistance. Drivers see their own truck's requests.
func (h *Handler) List(c echo.Context) error {
	_, role, sessionTruck, err := utils.ExtractSessionInfo(c)
	if err != nil {
		return err
	}

	truckID := c.QueryParam("truck_id")
	if role == string(models.RoleDriver) {
		truckID = sessionTruck
	}
	page, limit := utils.GetPageLimit(c)

	requests, err := h.service.List(c.Request().Context(), truckID, page, limit)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, requests)
}

// UpdateStatus handles PATCH /assistance/:id/status for owners.
func (h *Handler) UpdateStatus(c echo.Context) error {
	var req models.UpdateAssistanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	a, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, a)
}
