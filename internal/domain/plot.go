package domain

import "time"

// PlotStatus is the lifecycle state of a plot. Transitions are owned by
// the lifecycle engine and the expiry sweeper; nothing else mutates it.
type PlotStatus string

const (
	PlotStatusAvailable PlotStatus = "available"
	PlotStatusHold      PlotStatus = "hold"
	PlotStatusBooked    PlotStatus = "booked"
	PlotStatusSold      PlotStatus = "sold"
	PlotStatusBlocked   PlotStatus = "blocked"
)

// Facing is the compass direction a plot opens toward.
type Facing string

const (
	FacingEast  Facing = "E"
	FacingWest  Facing = "W"
	FacingNorth Facing = "N"
	FacingSouth Facing = "S"
	FacingAny   Facing = "Any"
)

// Plot is a single saleable unit of land inside a project.
//
// HoldExpiryAt is set iff Status is hold. BuyerID points at the lead the
// plot is held, booked or sold for. Rate fields are carried here but are
// only mutated through the rate endpoints; the lifecycle engine reads
// CurrentRate once, when freezing the agreement value at hold time.
type Plot struct {
	ID                 string     `json:"plot_id"`
	ProjectID          string     `json:"project_id"`
	Block              string     `json:"block"`
	Phase              string     `json:"phase"`
	PlotNo             string     `json:"plot_no"`
	Size               float64    `json:"size"`
	SizeUnit           SizeUnit   `json:"size_unit"`
	Facing             Facing     `json:"facing"`
	Corner             bool       `json:"corner"`
	Status             PlotStatus `json:"status"`
	BaseRate           float64    `json:"base_rate"`
	CurrentRate        float64    `json:"current_rate"`
	MinRate            float64    `json:"min_rate"`
	MaxRate            float64    `json:"max_rate"`
	HoldExpiryAt       *time.Time `json:"hold_expiry_at"`
	BookedAt           *time.Time `json:"booked_at"`
	LastStatusChangeAt time.Time  `json:"last_status_change_at"`
	BuyerID            *string    `json:"buyer_id"`
	SalesOwnerID       *string    `json:"sales_owner_id"`
	Notes              string     `json:"notes"`
}
