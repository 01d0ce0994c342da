package domain

import "time"

// BookingStatus is the lifecycle state of a booking. A booking starts in
// hold and ends in exactly one of booking_confirmed, cancelled or expired.
type BookingStatus string

const (
	BookingStatusHold      BookingStatus = "hold"
	BookingStatusConfirmed BookingStatus = "booking_confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusExpired   BookingStatus = "expired"
)

// PaymentPlan selects how the agreement value is collected.
type PaymentPlan string

const (
	PaymentPlanLumpSum PaymentPlan = "lumpsum"
	PaymentPlanLinked  PaymentPlan = "linked"
)

// PaymentStatus tracks collection progress against the agreement value.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusComplete PaymentStatus = "complete"
)

// Booking links a plot to a lead for a sale in progress. Exactly one open
// booking (hold or booking_confirmed) may reference a plot at a time; a
// plot accumulates historical expired/cancelled bookings over its life.
//
// AgreementValue is plot size times the plot's current rate at hold time
// and never changes afterwards. TokenDueAt mirrors the plot's hold expiry
// deadline; a hold whose token is not received by then is reverted by the
// expiry sweeper.
type Booking struct {
	ID                 string        `json:"booking_id"`
	PlotID             string        `json:"plot_id"`
	LeadID             string        `json:"lead_id"`
	SalesUserID        string        `json:"sales_user_id"`
	Status             BookingStatus `json:"status"`
	TokenAmount        float64       `json:"token_amount"`
	TokenDueAt         time.Time     `json:"token_due_at"`
	TokenReceivedAt    *time.Time    `json:"token_received_at"`
	AgreementValue     float64       `json:"agreement_value"`
	DiscountPct        float64       `json:"discount_pct"`
	ApprovedBy         *string       `json:"approved_by"`
	ApprovalNote       string        `json:"approval_note"`
	PaymentPlan        PaymentPlan   `json:"payment_plan"`
	PaymentStatus      PaymentStatus `json:"payment_status"`
	CancellationReason string        `json:"cancellation_reason"`
	CancellationFee    float64       `json:"cancellation_fee"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// Open reports whether the booking still blocks its plot.
func (b Booking) Open() bool {
	return b.Status == BookingStatusHold || b.Status == BookingStatusConfirmed
}
