package middleware

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"truckpro/internal/models"
	"truckpro/pkg/utils"
)

// JWTAuth validates the session token and stashes its claims in the request
// context for utils.ExtractSessionInfo.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(models.SessionClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*models.SessionClaims)
			if !ok {
				return
			}
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)
			c.Set("truckId", claims.TruckID)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			msg := "invalid or expired session token"
			if errors.Is(err, echojwt.ErrJWTMissing) {
				msg = "missing session token"
			}
			return utils.RespondWithError(c, http.StatusUnauthorized, msg)
		},
	})
}

// RoleRequired rejects requests whose session carries a different role.
func RoleRequired(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, sessionRole, _, err := utils.ExtractSessionInfo(c)
			if err != nil {
				return err
			}
			if sessionRole != string(role) {
				return utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions for this resource")
			}
			return next(c)
		}
	}
}
