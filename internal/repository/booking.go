package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/landsuite/plot-erp/internal/domain"
)

const bookingColumns = `id, plot_id, lead_id, sales_user_id, status,
       token_amount, token_due_at, token_received_at, agreement_value,
       discount_pct, approved_by, approval_note, payment_plan, payment_status,
       cancellation_reason, cancellation_fee, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (domain.Booking, error) {
	var (
		b             domain.Booking
		tokenReceived sql.NullTime
		approvedBy    sql.NullString
	)
	err := row.Scan(
		&b.ID, &b.PlotID, &b.LeadID, &b.SalesUserID, &b.Status,
		&b.TokenAmount, &b.TokenDueAt, &tokenReceived, &b.AgreementValue,
		&b.DiscountPct, &approvedBy, &b.ApprovalNote, &b.PaymentPlan, &b.PaymentStatus,
		&b.CancellationReason, &b.CancellationFee, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return domain.Booking{}, err
	}
	b.TokenReceivedAt = timePtr(tokenReceived)
	b.TokenDueAt = b.TokenDueAt.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, nil
}

func (s *Store) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	row := s.q(ctx).QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, err
}

// CreateBooking inserts a new booking after verifying the plot carries
// no other open booking. Run it inside WithTx together with the plot
// update so the invariant holds under concurrency.
func (s *Store) CreateBooking(ctx context.Context, b domain.Booking) error {
	var open int
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE plot_id = ? AND status IN (?, ?) FOR UPDATE`,
		b.PlotID, string(domain.BookingStatusHold), string(domain.BookingStatusConfirmed),
	).Scan(&open)
	if err != nil {
		return err
	}
	if open > 0 {
		return domain.ErrBookingConflict
	}

	_, err = s.q(ctx).ExecContext(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.PlotID, b.LeadID, b.SalesUserID, string(b.Status),
		b.TokenAmount, b.TokenDueAt.UTC(), nullTime(b.TokenReceivedAt), b.AgreementValue,
		b.DiscountPct, nullStr(b.ApprovedBy), b.ApprovalNote, string(b.PaymentPlan), string(b.PaymentStatus),
		b.CancellationReason, b.CancellationFee, b.CreatedAt.UTC(), b.UpdatedAt.UTC(),
	)
	return err
}

func (s *Store) PutBooking(ctx context.Context, b domain.Booking) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE bookings SET
		  status = ?, token_amount = ?, token_received_at = ?,
		  discount_pct = ?, approved_by = ?, approval_note = ?,
		  payment_plan = ?, payment_status = ?,
		  cancellation_reason = ?, cancellation_fee = ?, updated_at = ?
		WHERE id = ?`,
		string(b.Status), b.TokenAmount, nullTime(b.TokenReceivedAt),
		b.DiscountPct, nullStr(b.ApprovedBy), b.ApprovalNote,
		string(b.PaymentPlan), string(b.PaymentStatus),
		b.CancellationReason, b.CancellationFee, b.UpdatedAt.UTC(),
		b.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := s.GetBooking(ctx, b.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListBookingsByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE status = ? ORDER BY created_at`,
		string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListBookings returns all bookings, newest first, optionally filtered
// by status.
func (s *Store) ListBookings(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
