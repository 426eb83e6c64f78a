package models

import "github.com/golang-jwt/jwt/v5"

// Role identifies which dashboard a session is entitled to.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleDriver  Role = "driver"
	RoleShipper Role = "shipper"
)

// IsValidRole reports whether the role is one the platform knows.
func IsValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleDriver, RoleShipper:
		return true
	default:
		return false
	}
}

// User is the session record created at login. There is no account store
// behind it: any non-empty credentials are accepted and the record lives
// only as long as the issued token.
type User struct {
	Role     Role   `json:"role"`
	Username string `json:"username"`
	TruckID  string `json:"truck_id,omitempty"`
}

// LoginRequest is the login form. The password is required but never
// verified against anything.
type LoginRequest struct {
	Role     string `json:"role" validate:"required,oneof=owner driver shipper"`
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
	TruckID  string `json:"truck_id,omitempty"`
}

// AuthResponse is returned on a successful login.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// SessionClaims are the JWT claims carried by a dashboard session token.
type SessionClaims struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	TruckID  string `json:"truckId,omitempty"`
	jwt.RegisteredClaims
}
