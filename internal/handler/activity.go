package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/landsuite/plot-erp/internal/domain"
	"github.com/landsuite/plot-erp/internal/repository"
	"github.com/landsuite/plot-erp/internal/utils"
)

// ActivityHandler logs lead touchpoints. Logging an activity also rolls
// the lead's last-contact and next-followup timestamps forward.
type ActivityHandler struct {
	Store *repository.Store
}

func NewActivityHandler(store *repository.Store) *ActivityHandler {
	return &ActivityHandler{Store: store}
}

// Create handles POST /v1/leads/:id/activities.
func (h *ActivityHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Type         string     `json:"type"`
		Summary      string     `json:"summary"`
		Outcome      string     `json:"outcome"`
		NextActionAt *time.Time `json:"next_action_at"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Type == "" || body.Summary == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type and summary are required"})
	}

	ctx := c.Request().Context()
	now := time.Now().UTC()
	activity := domain.Activity{
		ID:           utils.NewID("act"),
		LeadID:       c.Param("id"),
		UserID:       userID,
		Type:         domain.ActivityType(body.Type),
		Summary:      body.Summary,
		Outcome:      domain.ActivityOutcome(body.Outcome),
		NextActionAt: body.NextActionAt,
		CreatedAt:    now,
	}

	err = h.Store.WithTx(ctx, func(txCtx context.Context) error {
		lead, err := h.Store.GetLead(txCtx, activity.LeadID)
		if err != nil {
			return err
		}
		if err := h.Store.CreateActivity(txCtx, activity); err != nil {
			return err
		}
		lead.LastContactAt = &now
		if body.NextActionAt != nil {
			lead.NextFollowupAt = body.NextActionAt
		}
		lead.UpdatedAt = now
		return h.Store.PutLead(txCtx, lead)
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, activity)
}

// List handles GET /v1/leads/:id/activities.
func (h *ActivityHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if _, err := h.Store.GetLead(ctx, c.Param("id")); err != nil {
		return domainError(c, err)
	}
	activities, err := h.Store.ListActivitiesByLead(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list activities"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": activities})
}
