package utils

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ExtractSessionInfo reads the session identity the JWT middleware stored on
// the context. It returns an echo HTTP error when the middleware did not run
// (route misconfiguration), so handlers can simply `return err`.
func ExtractSessionInfo(c echo.Context) (username, role, truckID string, err error) {
	username, _ = c.Get("username").(string)
	role, _ = c.Get("role").(string)
	truckID, _ = c.Get("truckId").(string)
	if username == "" || role == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "Session context not found")
	}
	return username, role, truckID, nil
}

// NewReference builds a short human-readable record reference such as
// BK-7F3A21C9 for bookings or REQ-0B44D1E2 for assistance requests.
func NewReference(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return prefix + "-" + id[:8]
}
