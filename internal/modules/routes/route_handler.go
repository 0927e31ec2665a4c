package routes

import (
	"net/http"

	"github.com/pavankontham/smart-maps/internal/models"
	"github.com/pavankontham/smart-maps/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for route planning.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new routes handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PlanRoute(c echo.Context) error {
	var req models.RouteRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	resp, err := h.svc.PlanRoute(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusOK, resp)
}
