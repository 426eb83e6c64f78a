package session

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

// Login handles POST /auth/login.
func (h *Handler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	resp, err := h.service.Login(req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, resp)
}

// Logout handles POST /auth/logout. Tokens are stateless, so logout is the
// client discarding its token; the endpoint exists so clients have a
// uniform call to make.
func (h *Handler) Logout(c echo.Context) error {
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Logged out"})
}
