package utils

import (
	"errors"
	"net/http"

	"github.com/pavankontham/smart-maps/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(c echo.Context, code int, payload interface{}) error {
	return c.JSON(code, payload)
}

// RespondWithError writes a JSON error body with the given status code.
func RespondWithError(c echo.Context, code int, message string) error {
	return c.JSON(code, models.ErrorResponse{Message: message})
}

// HandleServiceError maps service-layer sentinel errors to HTTP responses.
// Anything unclassified is a 500; the detailed error stays in the server
// log, not the response body.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, models.ErrNoRoutesFound):
		return RespondWithError(c, http.StatusNotFound, "No routes found between the given locations")
	case errors.Is(err, models.ErrEmailNotConfigured):
		return RespondWithError(c, http.StatusServiceUnavailable, "Email delivery is not configured")
	default:
		c.Logger().Errorf("service error: %v", err)
		return RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
