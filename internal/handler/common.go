// Package handler contains the Echo HTTP handlers. Handlers validate and
// bind requests, delegate state transitions to the engine services, and
// map domain errors to HTTP status codes. They assume JWTAuth has run.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/landsuite/plot-erp/internal/domain"
)

// getUserID extracts the authenticated user's ID stored by the JWT
// middleware. Returns an error when the claim is missing or not a string.
func getUserID(c echo.Context) (string, error) {
	id, ok := c.Get("user_id").(string)
	if !ok || id == "" {
		return "", errors.New("missing user id in context")
	}
	return id, nil
}

// actingUser rebuilds the acting user from the token claims. The engine
// only needs the ID and role; anything else comes from the store.
func actingUser(c echo.Context) (domain.User, error) {
	id, err := getUserID(c)
	if err != nil {
		return domain.User{}, err
	}
	role, ok := c.Get("role").(string)
	if !ok || role == "" {
		return domain.User{}, errors.New("missing role in context")
	}
	return domain.User{ID: id, Role: domain.Role(role)}, nil
}

// domainError translates engine/store sentinels into JSON error
// responses. Unknown errors become opaque 500s so internals never leak.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid state transition"})
	case errors.Is(err, domain.ErrBookingConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "plot already has an open booking"})
	case errors.Is(err, domain.ErrApprovalRequired):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "discount approval required"})
	case domain.IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
