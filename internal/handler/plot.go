package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/landsuite/plot-erp/internal/domain"
	"github.com/landsuite/plot-erp/internal/engine"
	"github.com/landsuite/plot-erp/internal/repository"
	"github.com/landsuite/plot-erp/internal/utils"
)

// PlotHandler exposes plot inventory and the hold entry point. The hold
// transition itself lives in engine.HoldService; this handler only binds
// the request and maps errors.
type PlotHandler struct {
	Store *repository.Store
	Holds *engine.HoldService
}

func NewPlotHandler(store *repository.Store, holds *engine.HoldService) *PlotHandler {
	return &PlotHandler{Store: store, Holds: holds}
}

// List handles GET /v1/plots. Optional query params: project_id, status.
func (h *PlotHandler) List(c echo.Context) error {
	f := repository.PlotFilter{
		ProjectID: c.QueryParam("project_id"),
		Status:    domain.PlotStatus(c.QueryParam("status")),
	}
	plots, err := h.Store.ListPlots(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list plots"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": plots})
}

// Get handles GET /v1/plots/:id.
func (h *PlotHandler) Get(c echo.Context) error {
	plot, err := h.Store.GetPlot(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, plot)
}

// Create handles POST /v1/plots. New plots start in available status with
// current rate defaulting to the base rate.
func (h *PlotHandler) Create(c echo.Context) error {
	var body struct {
		ProjectID string  `json:"project_id"`
		Block     string  `json:"block"`
		Phase     string  `json:"phase"`
		PlotNo    string  `json:"plot_no"`
		Size      float64 `json:"size"`
		SizeUnit  string  `json:"size_unit"`
		Facing    string  `json:"facing"`
		Corner    bool    `json:"corner"`
		BaseRate  float64 `json:"base_rate"`
		MinRate   float64 `json:"min_rate"`
		MaxRate   float64 `json:"max_rate"`
		Notes     string  `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ProjectID == "" || body.PlotNo == "" || body.Size <= 0 || body.BaseRate <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "project_id, plot_no, size and base_rate are required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Store.GetProject(ctx, body.ProjectID); err != nil {
		return domainError(c, err)
	}

	plot := domain.Plot{
		ID:                 utils.NewID("plot"),
		ProjectID:          body.ProjectID,
		Block:              body.Block,
		Phase:              body.Phase,
		PlotNo:             body.PlotNo,
		Size:               body.Size,
		SizeUnit:           domain.SizeUnit(body.SizeUnit),
		Facing:             domain.Facing(body.Facing),
		Corner:             body.Corner,
		Status:             domain.PlotStatusAvailable,
		BaseRate:           body.BaseRate,
		CurrentRate:        body.BaseRate,
		MinRate:            body.MinRate,
		MaxRate:            body.MaxRate,
		LastStatusChangeAt: time.Now().UTC(),
		Notes:              body.Notes,
	}
	if err := h.Store.PutPlot(ctx, plot); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create plot"})
	}
	return c.JSON(http.StatusCreated, plot)
}

// Hold handles POST /v1/plots/:id/hold. Body: {"lead_id": "..."}.
func (h *PlotHandler) Hold(c echo.Context) error {
	user, err := actingUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		LeadID string `json:"lead_id"`
	}
	if err := c.Bind(&body); err != nil || body.LeadID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lead_id is required"})
	}

	booking, err := h.Holds.PlaceHold(c.Request().Context(), user, engine.PlaceHoldInput{
		PlotID: c.Param("id"),
		LeadID: body.LeadID,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

// UpdateRates handles PATCH /v1/plots/:id/rates. The new rates must
// satisfy min <= current <= max.
func (h *PlotHandler) UpdateRates(c echo.Context) error {
	var body struct {
		CurrentRate float64 `json:"current_rate"`
		MinRate     float64 `json:"min_rate"`
		MaxRate     float64 `json:"max_rate"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.MinRate <= 0 || body.MinRate > body.CurrentRate || body.CurrentRate > body.MaxRate {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rates must satisfy min <= current <= max"})
	}

	ctx := c.Request().Context()
	if _, err := h.Store.GetPlot(ctx, c.Param("id")); err != nil {
		return domainError(c, err)
	}
	if err := h.Store.UpdatePlotRates(ctx, c.Param("id"), body.CurrentRate, body.MinRate, body.MaxRate); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update rates"})
	}
	plot, err := h.Store.GetPlot(ctx, c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, plot)
}
