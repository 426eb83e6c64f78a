package booking

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

// Estimate handles POST /bookings/estimate for shippers.
func (h *Handler) Estimate(c echo.Context) error {
	var req models.PriceEstimateRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}
	return utils.RespondWithJSON(c, http.StatusOK, h.service.Estimate(req))
}

// Create handles POST /bookings for shippers.
func (h *Handler) Create(c echo.Context) error {
	username, _, _, err := utils.ExtractSessionInfo(c)
	if err != nil {
		return err
	}

	var req models.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), username, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, created)
}

// List handles GET /bookings. Owners see every booking, shippers only their
// own. An optional status query narrows the list.
func (h *Handler) List(c echo.Context) error {
	username, role, _, err := utils.ExtractSessionInfo(c)
	if err != nil {
		return err
	}

	shipperName := ""
	if role == string(models.RoleShipper) {
		shipperName = username
	}
	page, limit := utils.GetPageLimit(c)

	bookings, err := h.service.List(c.Request().Context(), shipperName, c.QueryParam("status"), page, limit)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, bookings)
}

// Get handles GET /bookings/:id.
func (h *Handler) Get(c echo.Context) error {
	username, role, _, err := utils.ExtractSessionInfo(c)
	if err != nil {
		return err
	}

	shipperName := ""
	if role == string(models.RoleShipper) {
		shipperName = username
	}

	b, err := h.service.Get(c.Request().Context(), c.Param("id"), shipperName)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, b)
}

// Billing handles GET /bookings/billing: the completed, billable bookings.
func (h *Handler) Billing(c echo.Context) error {
	username, role, _, err := utils.ExtractSessionInfo(c)
	if err != nil {
		return err
	}

	shipperName := ""
	if role == string(models.RoleShipper) {
		shipperName = username
	}
	page, limit := utils.GetPageLimit(c)

	bookings, err := h.service.Billing(c.Request().Context(), shipperName, page, limit)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, bookings)
}

// UpdateStatus handles PATCH /bookings/:id/status for owners.
func (h *Handler) UpdateStatus(c echo.Context) error {
	var req models.UpdateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	b, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, b)
}
