package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ExtractUserInfo reads the authenticated user's ID and email out of the
// Echo context, where the JWT middleware placed them. Handlers behind the
// auth middleware can rely on both being present; if they are not, the
// request is rejected here rather than reaching a service with no owner.
func ExtractUserInfo(c echo.Context) (userID, email string, err error) {
	userID, _ = c.Get("userID").(string)
	email, _ = c.Get("userEmail").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return userID, email, nil
}
