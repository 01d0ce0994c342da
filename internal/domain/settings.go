package domain

// Settings is the process-wide policy singleton. It is loaded once at
// startup (seeded with defaults when absent) and read by the lifecycle
// engines and the expiry sweeper.
type Settings struct {
	ID                        string  `json:"settings_id"`
	DefaultHoldHours          int     `json:"default_hold_hours"`
	AutoExpireHold            bool    `json:"auto_expire_hold"`
	AutoReassignDeadLeadsDays int     `json:"auto_reassign_dead_leads_days"`
	DiscountApprovalThreshold float64 `json:"discount_approval_threshold"`
}

// DefaultSettings are the values seeded on first run.
func DefaultSettings() Settings {
	return Settings{
		ID:                        "settings_1",
		DefaultHoldHours:          48,
		AutoExpireHold:            true,
		AutoReassignDeadLeadsDays: 14,
		DiscountApprovalThreshold: 5,
	}
}
