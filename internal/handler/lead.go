package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/landsuite/plot-erp/internal/domain"
	"github.com/landsuite/plot-erp/internal/repository"
	"github.com/landsuite/plot-erp/internal/utils"
)

// LeadHandler owns the lead CRUD surface. Lead funnel transitions are
// plain field updates; only plot/booking transitions go through the
// engine.
type LeadHandler struct {
	Store *repository.Store
}

func NewLeadHandler(store *repository.Store) *LeadHandler {
	return &LeadHandler{Store: store}
}

type leadBody struct {
	Source           string     `json:"source"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	City             string     `json:"city"`
	BudgetMin        float64    `json:"budget_min"`
	BudgetMax        float64    `json:"budget_max"`
	PlotSizePref     *float64   `json:"plot_size_pref"`
	FacingPref       string     `json:"facing_pref"`
	Status           string     `json:"status"`
	ReasonLost       string     `json:"reason_lost"`
	LeadScore        int        `json:"lead_score"`
	AssignedToUserID string     `json:"assigned_to_user_id"`
	NextFollowupAt   *time.Time `json:"next_followup_at"`
}

// List handles GET /v1/leads. Optional query params: status, assigned_to.
func (h *LeadHandler) List(c echo.Context) error {
	f := repository.LeadFilter{
		Status:     domain.LeadStatus(c.QueryParam("status")),
		AssignedTo: c.QueryParam("assigned_to"),
	}
	leads, err := h.Store.ListLeads(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list leads"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": leads})
}

// Get handles GET /v1/leads/:id.
func (h *LeadHandler) Get(c echo.Context) error {
	lead, err := h.Store.GetLead(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, lead)
}

// Create handles POST /v1/leads. New leads start in "new" status assigned
// to the creating user unless assigned_to_user_id says otherwise.
func (h *LeadHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body leadBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.FirstName == "" || body.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and phone are required"})
	}

	assigned := body.AssignedToUserID
	if assigned == "" {
		assigned = userID
	}
	now := time.Now().UTC()
	lead := domain.Lead{
		ID:               utils.NewID("lead"),
		Source:           domain.LeadSource(body.Source),
		FirstName:        body.FirstName,
		LastName:         body.LastName,
		Phone:            body.Phone,
		Email:            body.Email,
		City:             body.City,
		BudgetMin:        body.BudgetMin,
		BudgetMax:        body.BudgetMax,
		PlotSizePref:     body.PlotSizePref,
		FacingPref:       domain.Facing(body.FacingPref),
		Status:           domain.LeadStatusNew,
		LeadScore:        body.LeadScore,
		AssignedToUserID: assigned,
		NextFollowupAt:   body.NextFollowupAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := h.Store.PutLead(c.Request().Context(), lead); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create lead"})
	}
	return c.JSON(http.StatusCreated, lead)
}

// Update handles PUT /v1/leads/:id. The full lead body replaces the
// stored fields; ID and CreatedAt are preserved.
func (h *LeadHandler) Update(c echo.Context) error {
	var body leadBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	lead, err := h.Store.GetLead(ctx, c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}

	if body.Status != "" {
		lead.Status = domain.LeadStatus(body.Status)
	}
	if body.Status == string(domain.LeadStatusLost) && body.ReasonLost == "" && lead.ReasonLost == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason_lost is required when marking a lead lost"})
	}
	if body.Source != "" {
		lead.Source = domain.LeadSource(body.Source)
	}
	if body.FirstName != "" {
		lead.FirstName = body.FirstName
	}
	if body.LastName != "" {
		lead.LastName = body.LastName
	}
	if body.Phone != "" {
		lead.Phone = body.Phone
	}
	if body.Email != "" {
		lead.Email = body.Email
	}
	if body.City != "" {
		lead.City = body.City
	}
	if body.BudgetMin != 0 {
		lead.BudgetMin = body.BudgetMin
	}
	if body.BudgetMax != 0 {
		lead.BudgetMax = body.BudgetMax
	}
	if body.PlotSizePref != nil {
		lead.PlotSizePref = body.PlotSizePref
	}
	if body.FacingPref != "" {
		lead.FacingPref = domain.Facing(body.FacingPref)
	}
	if body.ReasonLost != "" {
		lead.ReasonLost = body.ReasonLost
	}
	if body.LeadScore != 0 {
		lead.LeadScore = body.LeadScore
	}
	if body.AssignedToUserID != "" {
		lead.AssignedToUserID = body.AssignedToUserID
	}
	if body.NextFollowupAt != nil {
		lead.NextFollowupAt = body.NextFollowupAt
	}
	lead.UpdatedAt = time.Now().UTC()

	if err := h.Store.PutLead(ctx, lead); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update lead"})
	}
	return c.JSON(http.StatusOK, lead)
}

// Delete handles DELETE /v1/leads/:id. The route is gated on the
// delete-entity capability.
func (h *LeadHandler) Delete(c echo.Context) error {
	if err := h.Store.DeleteLead(c.Request().Context(), c.Param("id")); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
