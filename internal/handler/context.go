package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"autostats/internal/auth"
)

// currentUserID extracts the authenticated user id from the verified JWT.
// It is the only place identity is read from the request; services always
// receive it as an explicit argument. A missing identity is an
// authorization failure, never a domain error.
func currentUserID(c echo.Context) (string, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.UserID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	return claims.UserID, nil
}
