package engine

import (
	"context"
	"testing"
	"time"

	"github.com/landsuite/plot-erp/internal/clock"
	"github.com/landsuite/plot-erp/internal/domain"
	"github.com/landsuite/plot-erp/internal/notify"
	"github.com/landsuite/plot-erp/internal/store/memory"
)

// recordingNotifier captures the contacts notified during a sweep.
type recordingNotifier struct {
	contacts []string
}

func (r *recordingNotifier) Notify(_ context.Context, contact, _ string) error {
	r.contacts = append(r.contacts, contact)
	return nil
}

// seedHold places a real hold through the service so the plot/booking
// pair starts in a consistent state, then returns the booking.
func seedHold(t *testing.T, s *memory.Store, heldAt time.Time) domain.Booking {
	t.Helper()
	svc := NewHoldService(s, clock.NewFixed(heldAt), notify.LogNotifier{})
	booking, err := svc.PlaceHold(context.Background(),
		domain.User{ID: "user-sales", Role: domain.RoleSales},
		PlaceHoldInput{PlotID: "plot-1", LeadID: "lead-1"})
	if err != nil {
		t.Fatalf("seed hold: %v", err)
	}
	return booking
}

func TestSweeper_Run(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	t.Run("reverts overdue unpaid hold", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		booking := seedHold(t, s, t0.Add(-49*time.Hour)) // due at t0-1h

		sw := NewSweeper(s, clock.NewFixed(t0), notify.LogNotifier{})
		reverted, err := sw.Run(context.Background())
		if err != nil {
			t.Fatalf("sweep: %v", err)
		}
		if len(reverted) != 1 {
			t.Fatalf("expected 1 reverted plot, got %d", len(reverted))
		}

		b, err := s.GetBooking(context.Background(), booking.ID)
		if err != nil {
			t.Fatalf("reload booking: %v", err)
		}
		if b.Status != domain.BookingStatusExpired {
			t.Fatalf("expected booking expired, got %s", b.Status)
		}

		plot, err := s.GetPlot(context.Background(), "plot-1")
		if err != nil {
			t.Fatalf("reload plot: %v", err)
		}
		if plot.Status != domain.PlotStatusAvailable {
			t.Fatalf("expected plot available, got %s", plot.Status)
		}
		if plot.HoldExpiryAt != nil {
			t.Fatalf("expected hold_expiry_at cleared, got %v", plot.HoldExpiryAt)
		}
		if plot.BuyerID != nil {
			t.Fatalf("expected buyer_id cleared, got %v", plot.BuyerID)
		}
	})

	t.Run("leaves future-due hold untouched", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		booking := seedHold(t, s, t0.Add(-47*time.Hour)) // due at t0+1h

		sw := NewSweeper(s, clock.NewFixed(t0), notify.LogNotifier{})
		reverted, err := sw.Run(context.Background())
		if err != nil {
			t.Fatalf("sweep: %v", err)
		}
		if len(reverted) != 0 {
			t.Fatalf("expected nothing reverted, got %d", len(reverted))
		}

		b, _ := s.GetBooking(context.Background(), booking.ID)
		if b.Status != domain.BookingStatusHold {
			t.Fatalf("expected booking still hold, got %s", b.Status)
		}
		plot, _ := s.GetPlot(context.Background(), "plot-1")
		if plot.Status != domain.PlotStatusHold {
			t.Fatalf("expected plot still hold, got %s", plot.Status)
		}
	})

	t.Run("skips hold whose token was received", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		booking := seedHold(t, s, t0.Add(-49*time.Hour))

		received := t0.Add(-2 * time.Hour)
		booking.TokenReceivedAt = &received
		if err := s.PutBooking(context.Background(), booking); err != nil {
			t.Fatalf("update booking: %v", err)
		}

		sw := NewSweeper(s, clock.NewFixed(t0), notify.LogNotifier{})
		reverted, err := sw.Run(context.Background())
		if err != nil {
			t.Fatalf("sweep: %v", err)
		}
		if len(reverted) != 0 {
			t.Fatalf("expected nothing reverted, got %d", len(reverted))
		}
	})

	t.Run("second sweep is a no-op", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		seedHold(t, s, t0.Add(-49*time.Hour))

		sw := NewSweeper(s, clock.NewFixed(t0), notify.LogNotifier{})
		if _, err := sw.Run(context.Background()); err != nil {
			t.Fatalf("first sweep: %v", err)
		}
		reverted, err := sw.Run(context.Background())
		if err != nil {
			t.Fatalf("second sweep: %v", err)
		}
		if len(reverted) != 0 {
			t.Fatalf("expected idempotent second sweep, got %d reverted", len(reverted))
		}
	})

	t.Run("one bad record does not abort the tick", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		good := seedHold(t, s, t0.Add(-49*time.Hour))

		// Two overdue holds whose plots no longer exist.
		ctx := context.Background()
		for _, id := range []string{"book-0-ghost", "book-z-ghost"} {
			b := domain.Booking{
				ID:          id,
				PlotID:      "plot-" + id,
				LeadID:      "lead-1",
				SalesUserID: "user-sales",
				Status:      domain.BookingStatusHold,
				TokenDueAt:  t0.Add(-time.Hour),
			}
			if err := s.CreateBooking(ctx, b); err != nil {
				t.Fatalf("seed ghost booking: %v", err)
			}
		}

		sw := NewSweeper(s, clock.NewFixed(t0), notify.LogNotifier{})
		reverted, err := sw.Run(ctx)
		if err != nil {
			t.Fatalf("sweep: %v", err)
		}
		if len(reverted) != 1 || reverted[0].ID != "plot-1" {
			t.Fatalf("expected only plot-1 reverted, got %v", reverted)
		}

		b, _ := s.GetBooking(ctx, good.ID)
		if b.Status != domain.BookingStatusExpired {
			t.Fatalf("expected good booking expired, got %s", b.Status)
		}
		for _, id := range []string{"book-0-ghost", "book-z-ghost"} {
			gb, _ := s.GetBooking(ctx, id)
			if gb.Status != domain.BookingStatusHold {
				t.Fatalf("expected ghost booking %s untouched, got %s", id, gb.Status)
			}
		}
	})

	t.Run("notifies sales owner and project managers", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		seedHold(t, s, t0.Add(-49*time.Hour))

		rec := &recordingNotifier{}
		sw := NewSweeper(s, clock.NewFixed(t0), rec)
		if _, err := sw.Run(context.Background()); err != nil {
			t.Fatalf("sweep: %v", err)
		}

		want := map[string]bool{"+911111": false, "+912222": false}
		for _, contact := range rec.contacts {
			if _, ok := want[contact]; ok {
				want[contact] = true
			}
		}
		for contact, seen := range want {
			if !seen {
				t.Fatalf("expected %s notified, got %v", contact, rec.contacts)
			}
		}
	})

	t.Run("disabled auto-expire leaves overdue holds alone", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		booking := seedHold(t, s, t0.Add(-49*time.Hour))

		settings := domain.DefaultSettings()
		settings.AutoExpireHold = false
		if err := s.PutSettings(context.Background(), settings); err != nil {
			t.Fatalf("update settings: %v", err)
		}

		sw := NewSweeper(s, clock.NewFixed(t0), notify.LogNotifier{})
		reverted, err := sw.Run(context.Background())
		if err != nil {
			t.Fatalf("sweep: %v", err)
		}
		if len(reverted) != 0 {
			t.Fatalf("expected nothing reverted, got %d", len(reverted))
		}
		b, _ := s.GetBooking(context.Background(), booking.ID)
		if b.Status != domain.BookingStatusHold {
			t.Fatalf("expected booking still hold, got %s", b.Status)
		}
	})
}
