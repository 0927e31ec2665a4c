package middleware

import (
	"errors"
	"net/http"

	"github.com/pavankontham/smart-maps/internal/models"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTAuth configures Echo's JWT middleware. Tokens are issued by the
// external identity provider; this middleware only verifies the signature
// and lifts the subject and email claims into the request context, where
// handlers read them via utils.ExtractUserInfo. Ownership of stored records
// is scoped entirely by the UserID claim.
func JWTAuth(jwtSecretKey string) echo.MiddlewareFunc {
	config := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(models.JwtCustomClaims)
		},
		SigningKey: []byte(jwtSecretKey),
		SuccessHandler: func(c echo.Context) {
			userToken := c.Get("user").(*jwt.Token)
			claims := userToken.Claims.(*models.JwtCustomClaims)
			c.Set("userID", claims.UserID)
			c.Set("userEmail", claims.Email)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			c.Logger().Errorf("jwt error: %v", err)
			switch {
			case errors.Is(err, echojwt.ErrJWTMissing):
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Missing or malformed JWT"})
			case errors.Is(err, jwt.ErrTokenExpired):
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Token has expired"})
			case errors.Is(err, jwt.ErrTokenSignatureInvalid):
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid token signature"})
			default:
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid or expired JWT"})
			}
		},
	}
	return echojwt.WithConfig(config)
}
