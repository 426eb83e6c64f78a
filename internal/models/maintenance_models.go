package models

import "time"

// Maintenance request lifecycle statuses.
const (
	MaintenanceStatusPending   = "pending"
	MaintenanceStatusScheduled = "scheduled"
	MaintenanceStatusCompleted = "completed"
)

// MaintenanceRequest is a scheduled service action for one truck, created
// from the maintenance triage view.
type MaintenanceRequest struct {
	ID            string    `json:"id"`
	TruckID       string    `json:"truck_id"`
	Issue         string    `json:"issue"`
	ScheduledDate string    `json:"scheduled_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateMaintenanceRequest is the scheduling form.
type CreateMaintenanceRequest struct {
	TruckID       string `json:"truck_id" validate:"required"`
	Issue         string `json:"issue" validate:"required,min=3"`
	ScheduledDate string `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
}

// UpdateMaintenanceStatusRequest moves a request through its lifecycle.
type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed"`
}

// MaintenanceAlert is one row of the owner's triage table, derived from the
// currently displayed reading of a truck.
type MaintenanceAlert struct {
	TruckID         string `json:"truck_id"`
	Driver          string `json:"driver"`
	Alert           string `json:"alert"`
	SuggestedAction string `json:"suggested_action"`
	Priority        string `json:"priority"`
	Timestamp       string `json:"timestamp"`
}
