package domain

import "time"

// PaymentMethod is how money arrived.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodNEFT PaymentMethod = "neft"
)

// Payment is a single amount received against a booking.
type Payment struct {
	ID         string        `json:"payment_id"`
	BookingID  string        `json:"booking_id"`
	Amount     float64       `json:"amount"`
	Method     PaymentMethod `json:"method"`
	TxnRef     string        `json:"txn_ref"`
	ReceivedAt time.Time     `json:"received_at"`
	PostedBy   string        `json:"posted_by"`
}
