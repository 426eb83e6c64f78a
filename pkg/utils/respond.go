package utils

import (
	"errors"
	"net/http"
	"strconv"

	"truckpro/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes a JSON payload with the given status code.
func RespondWithJSON(c echo.Context, code int, payload interface{}) error {
	return c.JSON(code, payload)
}

// RespondWithError writes a uniform JSON error body.
func RespondWithError(c echo.Context, code int, message string) error {
	return c.JSON(code, models.ErrorResponse{Message: message})
}

// HandleServiceError maps known service-layer errors onto HTTP statuses and
// hides everything else behind a generic 500.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, models.ErrEmptyDataset):
		return RespondWithError(c, http.StatusNotFound, "No telemetry data available for this truck")
	case errors.Is(err, models.ErrMalformedPayload):
		return RespondWithError(c, http.StatusBadGateway, "Telemetry feed returned a malformed payload")
	case errors.Is(err, models.ErrInvalidTransition):
		return RespondWithError(c, http.StatusConflict, "Requested status change is not allowed")
	case errors.Is(err, models.ErrInvalidRole):
		return RespondWithError(c, http.StatusBadRequest, "Unknown role")
	case errors.Is(err, models.ErrTruckRequired):
		return RespondWithError(c, http.StatusBadRequest, "A truck assignment is required for this role")
	default:
		c.Logger().Error("unhandled service error: ", err)
		return RespondWithError(c, http.StatusInternalServerError, "An internal error occurred")
	}
}

// GetPageLimit reads pagination query parameters with sane defaults.
func GetPageLimit(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
