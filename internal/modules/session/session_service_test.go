package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truckpro/internal/models"
)

const testSecret = "test-secret"

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := NewService(testSecret)

	resp, err := svc.Login(models.LoginRequest{
		Role:     "driver",
		Username: "asha",
		Password: "anything",
		TruckID:  "TRK-001",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, models.RoleDriver, resp.User.Role)
	assert.Equal(t, "TRK-001", resp.User.TruckID)

	parsed, err := jwt.ParseWithClaims(resp.AccessToken, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(*models.SessionClaims)
	require.True(t, ok)
	assert.Equal(t, "driver", claims.Role)
	assert.Equal(t, "asha", claims.Username)
	assert.Equal(t, "TRK-001", claims.TruckID)
}

func TestLoginAcceptsAnyCredentials(t *testing.T) {
	svc := NewService(testSecret)

	_, err := svc.Login(models.LoginRequest{Role: "owner", Username: "whoever", Password: "whatever"})
	assert.NoError(t, err)
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	svc := NewService(testSecret)

	_, err := svc.Login(models.LoginRequest{Role: "admin", Username: "x", Password: "y"})
	assert.ErrorIs(t, err, models.ErrInvalidRole)
}

func TestLoginDriverRequiresTruck(t *testing.T) {
	svc := NewService(testSecret)

	_, err := svc.Login(models.LoginRequest{Role: "driver", Username: "asha", Password: "pw"})
	assert.ErrorIs(t, err, models.ErrTruckRequired)

	// Other roles never need a truck.
	_, err = svc.Login(models.LoginRequest{Role: "shipper", Username: "acme", Password: "pw"})
	assert.NoError(t, err)
}
