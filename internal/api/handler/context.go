package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - user_id must be non-empty (presence proves the middleware ran).
//   - role must parse to a known role; an unknown role token is structurally
//     valid but operationally unusable — reject with 401.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	raw, _ := c.Get("role").(string)
	role, ok := domain.ParseRole(raw)
	if !ok {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token carries unknown role")
	}

	return userID, role, nil
}
