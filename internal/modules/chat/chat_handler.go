package chat

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pavankontham/smart-maps/internal/models"
	"github.com/pavankontham/smart-maps/pkg/utils"
)

// Handler exposes the eco assistant endpoints.
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new chat handler.
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(c echo.Context) error {
	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	resp, err := h.service.Chat(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, resp)
}

// GetEcoTips handles GET /api/chat/tips.
func (h *Handler) GetEcoTips(c echo.Context) error {
	location := c.QueryParam("location")

	commuteKm := 0.0
	if raw := c.QueryParam("commute_distance"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil && value > 0 {
			commuteKm = value
		}
	}

	tips := h.service.EcoTips(location, commuteKm)
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{
		"tips":  tips,
		"count": len(tips),
	})
}
