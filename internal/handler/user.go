package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/landsuite/plot-erp/internal/repository"
)

// UserHandler lists operators for assignment pickers.
type UserHandler struct {
	Store *repository.Store
}

func NewUserHandler(store *repository.Store) *UserHandler {
	return &UserHandler{Store: store}
}

// List handles GET /v1/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Store.ListUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list users"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": users})
}

// Get handles GET /v1/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.Store.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
