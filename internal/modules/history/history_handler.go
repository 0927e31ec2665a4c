package history

import (
	"net/http"

	"github.com/pavankontham/smart-maps/internal/models"
	"github.com/pavankontham/smart-maps/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for search history.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new history handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) SaveSearch(c echo.Context) error {
	userID, userEmail, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.SaveSearchRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	record, err := h.svc.Save(c.Request().Context(), userID, userEmail, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusCreated, record)
}

func (h *Handler) ListHistory(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	filter := models.HistoryFilter{
		VehicleType: c.QueryParam("vehicle_type"),
		RouteType:   c.QueryParam("route_type"),
	}

	records, err := h.svc.List(c.Request().Context(), userID, filter)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if records == nil {
		records = []*models.SearchRecord{}
	}

	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{
		"history": records,
		"count":   len(records),
	})
}

func (h *Handler) DeleteRecord(c echo.Context) error {
	if _, _, err := utils.ExtractUserInfo(c); err != nil {
		return err
	}

	recordID := c.Param("recordId")
	if recordID == "" {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid record ID")
	}

	if err := h.svc.Delete(c.Request().Context(), recordID); err != nil {
		return utils.HandleServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ClearHistory(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	deleted, err := h.svc.DeleteAll(c.Request().Context(), userID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusOK, map[string]int{"deleted": deleted})
}

func (h *Handler) ShareRecord(c echo.Context) error {
	userID, userEmail, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	recordID := c.Param("recordId")
	if recordID == "" {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid record ID")
	}

	if err := h.svc.Share(c.Request().Context(), userID, userEmail, recordID); err != nil {
		return utils.HandleServiceError(c, err)
	}

	return c.NoContent(http.StatusAccepted)
}
