package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrMalformedPayload is returned when a telemetry response, after
	// unwrapping, is neither a JSON object nor a non-empty JSON array.
	ErrMalformedPayload = errors.New("malformed telemetry payload")

	// ErrEmptyDataset is returned when a telemetry feed answers with a
	// well-formed but empty payload for the requested truck.
	ErrEmptyDataset = errors.New("no telemetry data for requested truck")

	// ErrInvalidTransition is returned when a status change is requested
	// that the record's lifecycle does not allow (e.g. completing a
	// booking that was never accepted).
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidRole is returned when a login names a role the platform
	// does not know.
	ErrInvalidRole = errors.New("invalid role")

	// ErrTruckRequired is returned when a driver logs in without naming
	// an assigned truck.
	ErrTruckRequired = errors.New("truck assignment required for this role")
)
