package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrMissingIndex is returned by the history repository when the store
	// rejects the optimized query because the composite index backing it
	// does not exist. It is recovered internally by falling back to the
	// basic query and is never surfaced to callers of the service.
	ErrMissingIndex = errors.New("store is missing the composite index for this query")

	// ErrNoRoutesFound is returned when the directions provider cannot
	// produce any route between the requested addresses.
	ErrNoRoutesFound = errors.New("no routes found")

	// ErrEmailNotConfigured is returned when a share is requested but no
	// email sender has been configured for this deployment.
	ErrEmailNotConfigured = errors.New("email delivery is not configured")
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Message string `json:"message"`
}
