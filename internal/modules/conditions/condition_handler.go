package conditions

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pavankontham/smart-maps/internal/models"
	"github.com/pavankontham/smart-maps/pkg/utils"
)

// Handler exposes the real-time conditions endpoints.
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new conditions handler.
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetWeather handles GET /api/conditions/weather.
func (h *Handler) GetWeather(c echo.Context) error {
	city := c.QueryParam("city")
	if city == "" {
		city = "Hyderabad"
	}
	lat := queryFloat(c, "lat", defaultLat)
	lon := queryFloat(c, "lon", defaultLon)

	report, err := h.service.Weather(c.Request().Context(), city, lat, lon)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, report)
}

// GetTraffic handles GET /api/conditions/traffic.
func (h *Handler) GetTraffic(c echo.Context) error {
	lat := queryFloat(c, "lat", defaultLat)
	lon := queryFloat(c, "lon", defaultLon)
	radius := queryInt(c, "radius", 5000)

	report, err := h.service.Traffic(c.Request().Context(), lat, lon, radius)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, report)
}

// GetTransit handles GET /api/conditions/transit.
func (h *Handler) GetTransit(c echo.Context) error {
	lat := queryFloat(c, "lat", defaultLat)
	lon := queryFloat(c, "lon", defaultLon)
	radius := queryFloat(c, "radius", 1000)

	report, err := h.service.Transit(c.Request().Context(), lat, lon, radius)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, report)
}

// GetAirQuality handles GET /api/conditions/air-quality.
func (h *Handler) GetAirQuality(c echo.Context) error {
	lat := queryFloat(c, "lat", defaultLat)
	lon := queryFloat(c, "lon", defaultLon)

	report, err := h.service.AirQuality(c.Request().Context(), lat, lon)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, report)
}

// CalculateEmissions handles POST /api/conditions/emissions.
func (h *Handler) CalculateEmissions(c echo.Context) error {
	var req models.EmissionsRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	report, err := h.service.Emissions(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, report)
}

func queryFloat(c echo.Context, name string, fallback float64) float64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
