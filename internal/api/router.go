package api

import (
	"net/http"
	"time"

	"github.com/pavankontham/smart-maps/internal/api/middleware"
	"github.com/pavankontham/smart-maps/internal/modules/chat"
	"github.com/pavankontham/smart-maps/internal/modules/conditions"
	"github.com/pavankontham/smart-maps/internal/modules/history"
	"github.com/pavankontham/smart-maps/internal/modules/routes"

	"github.com/labstack/echo/v4"
)

// Features reports which optional collaborators are configured, for the
// health check and the frontend config endpoint.
type Features struct {
	GoogleMaps   bool `json:"google_maps"`
	EcoChatbot   bool `json:"eco_chatbot"`
	EmailSharing bool `json:"email_sharing"`
}

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	jwtSecret string,
	mapsAPIKey string,
	features Features,
	historyHandler *history.Handler,
	routesHandler *routes.Handler,
	conditionsHandler *conditions.Handler,
	chatHandler *chat.Handler,
) {
	authRequired := middleware.JWTAuth(jwtSecret)

	// --- Public Routes ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"services":  features,
		})
	})

	e.GET("/api/config", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"google_maps_api_key": mapsAPIKey,
			"features":            features,
		})
	})

	// --- Route Planning ---
	e.POST("/api/routes", routesHandler.PlanRoute)

	// --- Real-time Conditions ---
	conditionsGroup := e.Group("/api/conditions")
	{
		conditionsGroup.GET("/weather", conditionsHandler.GetWeather)
		conditionsGroup.GET("/traffic", conditionsHandler.GetTraffic)
		conditionsGroup.GET("/transit", conditionsHandler.GetTransit)
		conditionsGroup.GET("/air-quality", conditionsHandler.GetAirQuality)
		conditionsGroup.POST("/emissions", conditionsHandler.CalculateEmissions)
	}

	// --- Eco Assistant ---
	e.POST("/api/chat", chatHandler.Chat)
	e.GET("/api/chat/tips", chatHandler.GetEcoTips)

	// --- Search History (owner-scoped, auth required) ---
	historyGroup := e.Group("/api/history", authRequired)
	{
		historyGroup.POST("", historyHandler.SaveSearch)
		historyGroup.GET("", historyHandler.ListHistory)
		historyGroup.DELETE("/:recordId", historyHandler.DeleteRecord)
		historyGroup.DELETE("", historyHandler.ClearHistory)
		historyGroup.POST("/:recordId/share", historyHandler.ShareRecord)
	}
}
