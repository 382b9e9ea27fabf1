package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a deal does not exist upstream
	ErrNotFound = errors.New("deal not found")

	// ErrInvalidInput is returned when a mutation's input breaks a service
	// limit, such as an oversized transfer summary
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream is returned when the CRM rejected or failed a call
	ErrUpstream = errors.New("crm request failed")
)
