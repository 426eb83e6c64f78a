package models

import (
	"database/sql"
	"time"
)

// Booking lifecycle statuses. A booking starts pending, is accepted or
// rejected by the owner, and an accepted booking moves through active to
// completed.
const (
	BookingStatusPending   = "pending"
	BookingStatusAccepted  = "accepted"
	BookingStatusRejected  = "rejected"
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
)

// Booking represents a shipper-submitted trip request.
type Booking struct {
	ID              string          `json:"id"` // BK-prefixed reference
	ShipperName     string          `json:"shipper_name"`
	Pickup          string          `json:"pickup"`
	Drop            string          `json:"drop"`
	LoadTonnes      float64         `json:"load_tonnes"`
	BookingDate     string          `json:"booking_date"`
	BookingTime     string          `json:"booking_time"`
	GoodsType       string          `json:"goods_type"`
	TruckID         string          `json:"truck_id"`
	DistanceKm      sql.NullFloat64 `json:"distance_km,omitempty"`
	Status          string          `json:"status"`
	CalculatedPrice float64         `json:"calculated_price"`
	ContactPhone    sql.NullString  `json:"contact_phone,omitempty"`
	ContactEmail    sql.NullString  `json:"contact_email,omitempty"`
	Notes           sql.NullString  `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateBookingRequest is the booking form submitted by a shipper.
// DistanceKm is optional: when present the trip-rate formula applies,
// otherwise the simplified form estimate is used.
type CreateBookingRequest struct {
	Pickup       string   `json:"pickup" validate:"required,min=2"`
	Drop         string   `json:"drop" validate:"required,min=2"`
	LoadTonnes   float64  `json:"load_tonnes" validate:"required,gt=0"`
	BookingDate  string   `json:"booking_date" validate:"required,datetime=2006-01-02"`
	BookingTime  string   `json:"booking_time" validate:"required"`
	GoodsType    string   `json:"goods_type" validate:"required"`
	TruckID      string   `json:"truck_id" validate:"required"`
	DistanceKm   *float64 `json:"distance_km,omitempty" validate:"omitempty,gt=0"`
	ContactPhone string   `json:"contact_phone,omitempty"`
	ContactEmail string   `json:"contact_email,omitempty" validate:"omitempty,email"`
	Notes        string   `json:"notes,omitempty"`
}

// UpdateBookingStatusRequest is the owner's lifecycle action on a booking.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected active completed"`
}

// PriceEstimateRequest asks for a quote without creating a booking.
type PriceEstimateRequest struct {
	Pickup     string   `json:"pickup" validate:"required"`
	Drop       string   `json:"drop" validate:"required"`
	LoadTonnes float64  `json:"load_tonnes" validate:"required,gt=0"`
	DistanceKm *float64 `json:"distance_km,omitempty" validate:"omitempty,gt=0"`
}

// PriceEstimateResponse carries the computed quote back to the form.
type PriceEstimateResponse struct {
	EstimatedPrice float64 `json:"estimated_price"`
}
