package domain

import "time"

// ActivityType classifies a touchpoint with a lead.
type ActivityType string

const (
	ActivityCall      ActivityType = "call"
	ActivityVisit     ActivityType = "visit"
	ActivitySiteVisit ActivityType = "site-visit"
	ActivityMeeting   ActivityType = "meeting"
	ActivityWhatsapp  ActivityType = "whatsapp"
	ActivityEmail     ActivityType = "email"
)

// ActivityOutcome is the result recorded for an activity.
type ActivityOutcome string

const (
	OutcomeConnected     ActivityOutcome = "connected"
	OutcomeNoAnswer      ActivityOutcome = "no-answer"
	OutcomeInterested    ActivityOutcome = "interested"
	OutcomeNotInterested ActivityOutcome = "not-interested"
	OutcomeFollowUp      ActivityOutcome = "follow-up"
)

// Activity is one logged interaction between a user and a lead.
type Activity struct {
	ID           string          `json:"activity_id"`
	LeadID       string          `json:"lead_id"`
	UserID       string          `json:"user_id"`
	Type         ActivityType    `json:"type"`
	Summary      string          `json:"summary"`
	Outcome      ActivityOutcome `json:"outcome"`
	NextActionAt *time.Time      `json:"next_action_at"`
	CreatedAt    time.Time       `json:"created_at"`
}
