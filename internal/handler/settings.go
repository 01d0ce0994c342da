package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/landsuite/plot-erp/internal/repository"
)

// SettingsHandler reads and updates the policy singleton.
type SettingsHandler struct {
	Store *repository.Store
}

func NewSettingsHandler(store *repository.Store) *SettingsHandler {
	return &SettingsHandler{Store: store}
}

// Get handles GET /v1/settings.
func (h *SettingsHandler) Get(c echo.Context) error {
	settings, err := h.Store.GetSettings(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// Update handles PUT /v1/settings. The route is gated on the
// settings-crud capability.
func (h *SettingsHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	settings, err := h.Store.GetSettings(ctx)
	if err != nil {
		return domainError(c, err)
	}

	var body struct {
		DefaultHoldHours          *int     `json:"default_hold_hours"`
		AutoExpireHold            *bool    `json:"auto_expire_hold"`
		AutoReassignDeadLeadsDays *int     `json:"auto_reassign_dead_leads_days"`
		DiscountApprovalThreshold *float64 `json:"discount_approval_threshold"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.DefaultHoldHours != nil {
		if *body.DefaultHoldHours < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "default_hold_hours must be at least 1"})
		}
		settings.DefaultHoldHours = *body.DefaultHoldHours
	}
	if body.AutoExpireHold != nil {
		settings.AutoExpireHold = *body.AutoExpireHold
	}
	if body.AutoReassignDeadLeadsDays != nil {
		settings.AutoReassignDeadLeadsDays = *body.AutoReassignDeadLeadsDays
	}
	if body.DiscountApprovalThreshold != nil {
		if *body.DiscountApprovalThreshold < 0 || *body.DiscountApprovalThreshold > 100 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "discount_approval_threshold must be between 0 and 100"})
		}
		settings.DiscountApprovalThreshold = *body.DiscountApprovalThreshold
	}

	if err := h.Store.PutSettings(ctx, settings); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update settings"})
	}
	return c.JSON(http.StatusOK, settings)
}
