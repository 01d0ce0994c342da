package domain

import "time"

// ProjectStatus marks whether a project is selling.
type ProjectStatus string

const (
	ProjectStatusActive ProjectStatus = "active"
	ProjectStatusOnHold ProjectStatus = "on-hold"
	ProjectStatusClosed ProjectStatus = "closed"
)

// SizeUnit is the unit plot sizes are quoted in.
type SizeUnit string

const (
	SizeUnitSqFt SizeUnit = "sqft"
	SizeUnitSqYd SizeUnit = "sqyd"
	SizeUnitCent SizeUnit = "cent"
)

// Project groups the plots of a single development.
type Project struct {
	ID                  string        `json:"project_id"`
	Name                string        `json:"name"`
	Code                string        `json:"code"`
	LocationCity        string        `json:"location_city"`
	LocationArea        string        `json:"location_area"`
	DeveloperName       string        `json:"developer_name"`
	LaunchDate          *time.Time    `json:"launch_date"`
	Status              ProjectStatus `json:"status"`
	DefaultPlotSizeUnit SizeUnit      `json:"default_plot_size_unit"`
	BaseRate            float64       `json:"base_rate"`
	InventoryCount      int           `json:"inventory_count"`
	CreatedBy           string        `json:"created_by"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}
