package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/landsuite/plot-erp/internal/clock"
	"github.com/landsuite/plot-erp/internal/domain"
	"github.com/landsuite/plot-erp/internal/notify"
	"github.com/landsuite/plot-erp/internal/permission"
)

// BookingService owns the booking transitions past the initial hold:
// confirmation on token receipt, manual cancellation, and payment
// posting. Each transition updates the booking and its plot in one
// atomic step.
type BookingService struct {
	store    Store
	clock    clock.Clock
	notifier notify.Notifier
}

func NewBookingService(store Store, clk clock.Clock, n notify.Notifier) *BookingService {
	return &BookingService{store: store, clock: clk, notifier: n}
}

type ConfirmBookingInput struct {
	BookingID    string
	TokenAmount  float64
	DiscountPct  float64
	ApprovedBy   string
	ApprovalNote string
	PaymentPlan  domain.PaymentPlan
}

// Confirm records token receipt and moves a hold booking to
// booking_confirmed, booking the plot. Discounts above
// settings.discount_approval_threshold need an approver whose role
// carries the edit-rates capability.
func (s *BookingService) Confirm(ctx context.Context, user domain.User, in ConfirmBookingInput) (domain.Booking, error) {
	if !permission.Can(user.Role, permission.BookPlot) {
		return domain.Booking{}, domain.ErrPermissionDenied
	}

	now := s.clock.Now()
	var (
		booking domain.Booking
		plot    domain.Plot
	)

	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.store.GetBooking(txCtx, in.BookingID)
		if err != nil {
			return err
		}
		if booking.Status != domain.BookingStatusHold {
			return domain.ErrInvalidStateTransition
		}

		plot, err = s.store.GetPlot(txCtx, booking.PlotID)
		if err != nil {
			return err
		}
		if plot.Status != domain.PlotStatusHold {
			return domain.ErrInvalidStateTransition
		}

		settings, err := s.store.GetSettings(txCtx)
		if err != nil {
			return err
		}
		if in.DiscountPct > settings.DiscountApprovalThreshold {
			if in.ApprovedBy == "" {
				return domain.ErrApprovalRequired
			}
			approver, err := s.store.GetUser(txCtx, in.ApprovedBy)
			if err != nil {
				return err
			}
			if !permission.Can(approver.Role, permission.EditRates) {
				return domain.ErrPermissionDenied
			}
			booking.ApprovedBy = &approver.ID
			booking.ApprovalNote = in.ApprovalNote
		}

		booking.Status = domain.BookingStatusConfirmed
		booking.TokenReceivedAt = &now
		if in.TokenAmount > 0 {
			booking.TokenAmount = in.TokenAmount
		}
		booking.DiscountPct = in.DiscountPct
		if in.PaymentPlan != "" {
			booking.PaymentPlan = in.PaymentPlan
		}
		booking.PaymentStatus = domain.PaymentStatusPartial
		booking.UpdatedAt = now

		plot.Status = domain.PlotStatusBooked
		plot.BookedAt = &now
		plot.HoldExpiryAt = nil
		plot.LastStatusChangeAt = now

		if err := s.store.PutBooking(txCtx, booking); err != nil {
			return err
		}
		return s.store.PutPlot(txCtx, plot)
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.notifySalesOwner(ctx, booking, fmt.Sprintf("Booking %s confirmed for plot %s.", booking.ID, plot.PlotNo))
	return booking, nil
}

type CancelBookingInput struct {
	BookingID string
	Reason    string
	Fee       float64
}

// Cancel terminates an open booking and re-releases its plot to
// available. The plot keeps no trace of the buyer; the booking keeps the
// cancellation reason and fee for the record.
func (s *BookingService) Cancel(ctx context.Context, user domain.User, in CancelBookingInput) (domain.Booking, error) {
	if !permission.Can(user.Role, permission.ReReleasePlot) {
		return domain.Booking{}, domain.ErrPermissionDenied
	}

	now := s.clock.Now()
	var booking domain.Booking

	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.store.GetBooking(txCtx, in.BookingID)
		if err != nil {
			return err
		}
		if !booking.Open() {
			return domain.ErrInvalidStateTransition
		}

		plot, err := s.store.GetPlot(txCtx, booking.PlotID)
		if err != nil {
			return err
		}

		booking.Status = domain.BookingStatusCancelled
		booking.CancellationReason = in.Reason
		booking.CancellationFee = in.Fee
		booking.UpdatedAt = now

		plot.Status = domain.PlotStatusAvailable
		plot.HoldExpiryAt = nil
		plot.BookedAt = nil
		plot.BuyerID = nil
		plot.LastStatusChangeAt = now

		if err := s.store.PutBooking(txCtx, booking); err != nil {
			return err
		}
		return s.store.PutPlot(txCtx, plot)
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.notifySalesOwner(ctx, booking, fmt.Sprintf("Booking %s cancelled: %s", booking.ID, in.Reason))
	return booking, nil
}

type RecordPaymentInput struct {
	BookingID string
	Amount    float64
	Method    domain.PaymentMethod
	TxnRef    string
}

// RecordPayment posts a payment against a confirmed booking and rolls
// the booking's payment status forward: partial while the sum of
// payments is below the agreement value, complete once it reaches it.
func (s *BookingService) RecordPayment(ctx context.Context, user domain.User, in RecordPaymentInput) (domain.Payment, error) {
	if !permission.Can(user.Role, permission.BookPlot) {
		return domain.Payment{}, domain.ErrPermissionDenied
	}
	if in.Amount <= 0 {
		return domain.Payment{}, domain.ErrInvalidStateTransition
	}

	now := s.clock.Now()
	var payment domain.Payment

	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.store.GetBooking(txCtx, in.BookingID)
		if err != nil {
			return err
		}
		if booking.Status != domain.BookingStatusConfirmed {
			return domain.ErrInvalidStateTransition
		}

		payment = domain.Payment{
			ID:         newID("pay"),
			BookingID:  booking.ID,
			Amount:     in.Amount,
			Method:     in.Method,
			TxnRef:     in.TxnRef,
			ReceivedAt: now,
			PostedBy:   user.ID,
		}
		if err := s.store.CreatePayment(txCtx, payment); err != nil {
			return err
		}

		payments, err := s.store.ListPaymentsByBooking(txCtx, booking.ID)
		if err != nil {
			return err
		}
		total := booking.TokenAmount
		for _, p := range payments {
			total += p.Amount
		}
		if total >= booking.AgreementValue {
			booking.PaymentStatus = domain.PaymentStatusComplete
		} else {
			booking.PaymentStatus = domain.PaymentStatusPartial
		}
		booking.UpdatedAt = now
		return s.store.PutBooking(txCtx, booking)
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return payment, nil
}

func (s *BookingService) notifySalesOwner(ctx context.Context, booking domain.Booking, msg string) {
	salesUser, err := s.store.GetUser(ctx, booking.SalesUserID)
	if err != nil {
		log.Printf("booking: lookup sales user %s failed: %v", booking.SalesUserID, err)
		return
	}
	if err := s.notifier.Notify(ctx, salesUser.Phone, msg); err != nil {
		log.Printf("booking: notify %s failed: %v", salesUser.ID, err)
	}
}
