package models

import "time"

// Assistance request lifecycle statuses.
const (
	AssistanceStatusPending    = "pending"
	AssistanceStatusDispatched = "dispatched"
	AssistanceStatusCompleted  = "completed"
)

// AssistanceRequest is a roadside assistance call for one truck.
type AssistanceRequest struct {
	ID          string    `json:"id"`
	TruckID     string    `json:"truck_id"`
	Driver      string    `json:"driver"`
	IssueType   string    `json:"issue_type"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateAssistanceRequest is the emergency form a driver (or the owner on a
// driver's behalf) submits.
type CreateAssistanceRequest struct {
	TruckID     string `json:"truck_id" validate:"required"`
	IssueType   string `json:"issue_type" validate:"required,oneof=engine tire fuel accident breakdown other"`
	Description string `json:"description" validate:"required,min=5"`
}

// UpdateAssistanceStatusRequest moves a request through its lifecycle.
type UpdateAssistanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=dispatched completed"`
}
