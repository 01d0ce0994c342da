package domain

import "time"

// LeadSource records where a lead entered the pipeline.
type LeadSource string

const (
	LeadSourceWalkIn   LeadSource = "walk-in"
	LeadSourceMeta     LeadSource = "Meta"
	LeadSourceGoogle   LeadSource = "Google"
	LeadSourceReferral LeadSource = "Referral"
	LeadSourceOther    LeadSource = "Other"
)

// LeadStatus is the sales funnel position of a lead
// (new -> working -> qualified -> hot -> won/lost).
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusWorking   LeadStatus = "working"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusHot       LeadStatus = "hot"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
)

// Lead is a sales contact. Plots reference it through BuyerID while the
// lead has a plot on hold, booked or sold.
type Lead struct {
	ID               string     `json:"lead_id"`
	Source           LeadSource `json:"source"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	City             string     `json:"city"`
	BudgetMin        float64    `json:"budget_min"`
	BudgetMax        float64    `json:"budget_max"`
	PlotSizePref     *float64   `json:"plot_size_pref"`
	FacingPref       Facing     `json:"facing_pref"`
	Status           LeadStatus `json:"status"`
	ReasonLost       string     `json:"reason_lost"`
	LeadScore        int        `json:"lead_score"`
	AssignedToUserID string     `json:"assigned_to_user_id"`
	LastContactAt    *time.Time `json:"last_contact_at"`
	NextFollowupAt   *time.Time `json:"next_followup_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
