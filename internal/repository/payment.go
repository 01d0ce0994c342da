package repository

import (
	"context"

	"github.com/landsuite/plot-erp/internal/domain"
)

const paymentColumns = `id, booking_id, amount, method, txn_ref, received_at, posted_by`

func (s *Store) CreatePayment(ctx context.Context, p domain.Payment) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.BookingID, p.Amount, string(p.Method), p.TxnRef,
		p.ReceivedAt.UTC(), p.PostedBy,
	)
	return err
}

func (s *Store) ListPaymentsByBooking(ctx context.Context, bookingID string) ([]domain.Payment, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE booking_id = ? ORDER BY received_at`,
		bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.TxnRef,
			&p.ReceivedAt, &p.PostedBy); err != nil {
			return nil, err
		}
		p.ReceivedAt = p.ReceivedAt.UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}
