package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/landsuite/plot-erp/internal/domain"
	"github.com/landsuite/plot-erp/internal/permission"
)

// RequireCapability enforces that the authenticated user's role carries
// the given capability. It assumes JWTAuth already stored the role in
// context. The lifecycle engines re-check permissions themselves; this
// gate exists so unauthorized requests are rejected before any store
// access.
func RequireCapability(cap permission.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !permission.Can(domain.Role(role), cap) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
