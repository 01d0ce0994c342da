package engine

import (
	"context"
	"testing"
	"time"

	"github.com/landsuite/plot-erp/internal/clock"
	"github.com/landsuite/plot-erp/internal/domain"
	"github.com/landsuite/plot-erp/internal/notify"
)

func TestBookingService_Confirm(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 3, 2, 11, 0, 0, 0, time.UTC)
	salesUser := domain.User{ID: "user-sales", Role: domain.RoleSales}

	t.Run("confirms hold and books the plot", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		hold := seedHold(t, s, t0)
		svc := NewBookingService(s, clock.NewFixed(t0.Add(time.Hour)), notify.LogNotifier{})

		booking, err := svc.Confirm(context.Background(), salesUser, ConfirmBookingInput{BookingID: hold.ID})
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if booking.Status != domain.BookingStatusConfirmed {
			t.Fatalf("expected status %s, got %s", domain.BookingStatusConfirmed, booking.Status)
		}
		if booking.TokenReceivedAt == nil {
			t.Fatalf("expected token_received_at set")
		}
		if booking.PaymentStatus != domain.PaymentStatusPartial {
			t.Fatalf("expected payment status partial, got %s", booking.PaymentStatus)
		}

		plot, _ := s.GetPlot(context.Background(), "plot-1")
		if plot.Status != domain.PlotStatusBooked {
			t.Fatalf("expected plot booked, got %s", plot.Status)
		}
		if plot.HoldExpiryAt != nil {
			t.Fatalf("expected hold_expiry_at cleared, got %v", plot.HoldExpiryAt)
		}
		if plot.BookedAt == nil {
			t.Fatalf("expected booked_at set")
		}
	})

	t.Run("discount above threshold requires approver", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		hold := seedHold(t, s, t0)
		svc := NewBookingService(s, clock.NewFixed(t0), notify.LogNotifier{})

		_, err := svc.Confirm(context.Background(), salesUser, ConfirmBookingInput{
			BookingID:   hold.ID,
			DiscountPct: 10,
		})
		if err != domain.ErrApprovalRequired {
			t.Fatalf("expected ErrApprovalRequired, got %v", err)
		}
	})

	t.Run("approver without rate authority is rejected", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		hold := seedHold(t, s, t0)
		svc := NewBookingService(s, clock.NewFixed(t0), notify.LogNotifier{})

		_, err := svc.Confirm(context.Background(), salesUser, ConfirmBookingInput{
			BookingID:   hold.ID,
			DiscountPct: 10,
			ApprovedBy:  "user-pm",
		})
		if err != domain.ErrPermissionDenied {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})

	t.Run("admin approval above threshold is recorded", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		if err := s.PutUser(context.Background(), domain.User{ID: "user-admin", Role: domain.RoleAdmin}); err != nil {
			t.Fatalf("seed admin: %v", err)
		}
		hold := seedHold(t, s, t0)
		svc := NewBookingService(s, clock.NewFixed(t0), notify.LogNotifier{})

		booking, err := svc.Confirm(context.Background(), salesUser, ConfirmBookingInput{
			BookingID:    hold.ID,
			DiscountPct:  10,
			ApprovedBy:   "user-admin",
			ApprovalNote: "festival offer",
		})
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if booking.ApprovedBy == nil || *booking.ApprovedBy != "user-admin" {
			t.Fatalf("expected approved_by user-admin, got %v", booking.ApprovedBy)
		}
	})

	t.Run("cannot confirm a non-hold booking", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		hold := seedHold(t, s, t0)
		svc := NewBookingService(s, clock.NewFixed(t0), notify.LogNotifier{})

		if _, err := svc.Confirm(context.Background(), salesUser, ConfirmBookingInput{BookingID: hold.ID}); err != nil {
			t.Fatalf("first confirm: %v", err)
		}
		_, err := svc.Confirm(context.Background(), salesUser, ConfirmBookingInput{BookingID: hold.ID})
		if err != domain.ErrInvalidStateTransition {
			t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
		}
	})

	t.Run("role without book capability is rejected", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		hold := seedHold(t, s, t0)
		svc := NewBookingService(s, clock.NewFixed(t0), notify.LogNotifier{})

		finance := domain.User{ID: "user-fin", Role: domain.RoleFinance}
		_, err := svc.Confirm(context.Background(), finance, ConfirmBookingInput{BookingID: hold.ID})
		if err != domain.ErrPermissionDenied {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})
}

func TestBookingService_Cancel(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 3, 2, 11, 0, 0, 0, time.UTC)
	pm := domain.User{ID: "user-pm", Role: domain.RolePM}

	t.Run("cancels hold and re-releases the plot", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		hold := seedHold(t, s, t0)
		svc := NewBookingService(s, clock.NewFixed(t0), notify.LogNotifier{})

		booking, err := svc.Cancel(context.Background(), pm, CancelBookingInput{
			BookingID: hold.ID,
			Reason:    "buyer backed out",
			Fee:       5000,
		})
		if err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if booking.Status != domain.BookingStatusCancelled {
			t.Fatalf("expected cancelled, got %s", booking.Status)
		}
		if booking.CancellationFee != 5000 {
			t.Fatalf("expected fee 5000, got %v", booking.CancellationFee)
		}

		plot, _ := s.GetPlot(context.Background(), "plot-1")
		if plot.Status != domain.PlotStatusAvailable {
			t.Fatalf("expected plot available, got %s", plot.Status)
		}
		if plot.BuyerID != nil || plot.HoldExpiryAt != nil {
			t.Fatalf("expected buyer and expiry cleared, got %v %v", plot.BuyerID, plot.HoldExpiryAt)
		}
	})

	t.Run("sales role cannot cancel", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		hold := seedHold(t, s, t0)
		svc := NewBookingService(s, clock.NewFixed(t0), notify.LogNotifier{})

		sales := domain.User{ID: "user-sales", Role: domain.RoleSales}
		_, err := svc.Cancel(context.Background(), sales, CancelBookingInput{BookingID: hold.ID, Reason: "x"})
		if err != domain.ErrPermissionDenied {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})

	t.Run("cannot cancel a closed booking", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		hold := seedHold(t, s, t0)
		svc := NewBookingService(s, clock.NewFixed(t0), notify.LogNotifier{})

		if _, err := svc.Cancel(context.Background(), pm, CancelBookingInput{BookingID: hold.ID, Reason: "first"}); err != nil {
			t.Fatalf("first cancel: %v", err)
		}
		_, err := svc.Cancel(context.Background(), pm, CancelBookingInput{BookingID: hold.ID, Reason: "second"})
		if err != domain.ErrInvalidStateTransition {
			t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
		}
	})
}

func TestBookingService_RecordPayment(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 3, 2, 11, 0, 0, 0, time.UTC)
	salesUser := domain.User{ID: "user-sales", Role: domain.RoleSales}

	confirmedBooking := func(t *testing.T) (*BookingService, domain.Booking) {
		t.Helper()
		s := seedStore(t, domain.PlotStatusAvailable)
		hold := seedHold(t, s, t0)
		svc := NewBookingService(s, clock.NewFixed(t0), notify.LogNotifier{})
		booking, err := svc.Confirm(context.Background(), salesUser, ConfirmBookingInput{BookingID: hold.ID})
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		return svc, booking
	}

	t.Run("partial payment keeps status partial", func(t *testing.T) {
		svc, booking := confirmedBooking(t)

		payment, err := svc.RecordPayment(context.Background(), salesUser, RecordPaymentInput{
			BookingID: booking.ID,
			Amount:    100000,
			Method:    domain.PaymentMethodNEFT,
			TxnRef:    "TXN-1",
		})
		if err != nil {
			t.Fatalf("record payment: %v", err)
		}
		if payment.Amount != 100000 {
			t.Fatalf("expected amount 100000, got %v", payment.Amount)
		}

		b, _ := svc.store.GetBooking(context.Background(), booking.ID)
		if b.PaymentStatus != domain.PaymentStatusPartial {
			t.Fatalf("expected partial, got %s", b.PaymentStatus)
		}
	})

	t.Run("payment reaching agreement value completes the booking", func(t *testing.T) {
		svc, booking := confirmedBooking(t)

		// Agreement value is 2,640,000; token of 50,000 already counts.
		_, err := svc.RecordPayment(context.Background(), salesUser, RecordPaymentInput{
			BookingID: booking.ID,
			Amount:    2590000,
			Method:    domain.PaymentMethodNEFT,
			TxnRef:    "TXN-2",
		})
		if err != nil {
			t.Fatalf("record payment: %v", err)
		}

		b, _ := svc.store.GetBooking(context.Background(), booking.ID)
		if b.PaymentStatus != domain.PaymentStatusComplete {
			t.Fatalf("expected complete, got %s", b.PaymentStatus)
		}
	})

	t.Run("rejects payment on a hold booking", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		hold := seedHold(t, s, t0)
		svc := NewBookingService(s, clock.NewFixed(t0), notify.LogNotifier{})

		_, err := svc.RecordPayment(context.Background(), salesUser, RecordPaymentInput{
			BookingID: hold.ID,
			Amount:    1000,
		})
		if err != domain.ErrInvalidStateTransition {
			t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		svc, booking := confirmedBooking(t)
		_, err := svc.RecordPayment(context.Background(), salesUser, RecordPaymentInput{
			BookingID: booking.ID,
			Amount:    0,
		})
		if err != domain.ErrInvalidStateTransition {
			t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
		}
	})
}
