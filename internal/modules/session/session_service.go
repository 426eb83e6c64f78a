package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"truckpro/internal/models"
)

// tokenTTL is how long a dashboard session stays valid.
const tokenTTL = 24 * time.Hour

// Service issues dashboard session tokens. There is no account store: any
// non-empty credentials are accepted, identity is whatever the login form
// claims.
type Service struct {
	jwtSecret string
}

func NewService(jwtSecret string) *Service {
	return &Service{jwtSecret: jwtSecret}
}

// Login validates the role and, for drivers, the truck assignment, then
// issues a signed session token carrying the claimed identity.
func (s *Service) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	role := models.Role(req.Role)
	if !models.IsValidRole(role) {
		return nil, models.ErrInvalidRole
	}
	if role == models.RoleDriver && req.TruckID == "" {
		return nil, models.ErrTruckRequired
	}

	now := time.Now()
	claims := models.SessionClaims{
		Role:     req.Role,
		Username: req.Username,
		TruckID:  req.TruckID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   req.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("service.Login: sign token: %w", err)
	}

	return &models.AuthResponse{
		AccessToken: signed,
		User: &models.User{
			Role:     role,
			Username: req.Username,
			TruckID:  req.TruckID,
		},
	}, nil
}
