package models

import "time"

// TruckCardView is one truck's tile on the owner dashboard: the reading the
// rotation cursor currently points to, plus everything derived from it.
type TruckCardView struct {
	TruckID  string       `json:"truck_id"`
	Reading  TruckReading `json:"reading"`
	Position int          `json:"position"` // 1-based cursor position
	Total    int          `json:"total"`    // readings held for this truck
	Warnings []string     `json:"warnings"`
	Priority string       `json:"priority"`
}

// FleetStats are the owner dashboard's headline numbers.
type FleetStats struct {
	TotalTrucks       int `json:"total_trucks"`
	ActiveTrips       int `json:"active_trips"`
	MaintenanceAlerts int `json:"maintenance_alerts"`
}

// FleetOverviewResponse is the owner dashboard payload.
type FleetOverviewResponse struct {
	Trucks      []TruckCardView `json:"trucks"`
	Stats       FleetStats      `json:"stats"`
	LastRefresh time.Time       `json:"last_refresh"`
}

// DriverDashboardResponse is the driver's single-truck view.
type DriverDashboardResponse struct {
	Reading          TruckReading `json:"reading"`
	Warnings         []string     `json:"warnings"`
	SuggestedActions []string     `json:"suggested_actions"`
	DrivingScore     int          `json:"driving_score"`
	ScoreTier        string       `json:"score_tier"`
	Stale            bool         `json:"stale"` // true when serving the last good reading after a failed fetch
	LastRefresh      time.Time    `json:"last_refresh"`
}

// TripViewResponse is the shipper's live-trip view for one selected truck.
type TripViewResponse struct {
	TruckID          string       `json:"truck_id"`
	Reading          TruckReading `json:"reading"`
	Position         int          `json:"position"`
	Total            int          `json:"total"`
	BackhaulDiscount bool         `json:"backhaul_discount"`
	LastRefresh      time.Time    `json:"last_refresh"`
}

// ErrorResponse is the uniform error body for every handler.
type ErrorResponse struct {
	Message string `json:"message"`
}
