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

func seedStore(t *testing.T, plotStatus domain.PlotStatus) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	if err := s.PutSettings(ctx, domain.DefaultSettings()); err != nil {
		t.Fatalf("seed settings: %v", err)
	}
	if err := s.PutUser(ctx, domain.User{ID: "user-sales", Role: domain.RoleSales, Phone: "+911111", Active: true}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := s.PutUser(ctx, domain.User{ID: "user-pm", Role: domain.RolePM, Phone: "+912222", Active: true}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := s.PutLead(ctx, domain.Lead{ID: "lead-1", FirstName: "Asha", Phone: "+913333", AssignedToUserID: "user-sales"}); err != nil {
		t.Fatalf("seed lead: %v", err)
	}
	if err := s.PutPlot(ctx, domain.Plot{
		ID:          "plot-1",
		ProjectID:   "proj-1",
		PlotNo:      "A-101",
		Size:        2400,
		Status:      plotStatus,
		BaseRate:    1000,
		CurrentRate: 1100,
	}); err != nil {
		t.Fatalf("seed plot: %v", err)
	}
	return s
}

func TestHoldService_PlaceHold(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	salesUser := domain.User{ID: "user-sales", Role: domain.RoleSales}

	t.Run("places hold and creates booking atomically", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		svc := NewHoldService(s, clock.NewFixed(now), notify.LogNotifier{})

		booking, err := svc.PlaceHold(context.Background(), salesUser, PlaceHoldInput{PlotID: "plot-1", LeadID: "lead-1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		wantExpiry := now.Add(48 * time.Hour)
		if booking.Status != domain.BookingStatusHold {
			t.Fatalf("expected booking status %s, got %s", domain.BookingStatusHold, booking.Status)
		}
		if booking.AgreementValue != 2640000 {
			t.Fatalf("expected agreement value 2640000, got %v", booking.AgreementValue)
		}
		if !booking.TokenDueAt.Equal(wantExpiry) {
			t.Fatalf("expected token_due_at %v, got %v", wantExpiry, booking.TokenDueAt)
		}
		if booking.TokenAmount != defaultTokenAmount {
			t.Fatalf("expected token amount %v, got %v", defaultTokenAmount, booking.TokenAmount)
		}

		plot, err := s.GetPlot(context.Background(), "plot-1")
		if err != nil {
			t.Fatalf("reload plot: %v", err)
		}
		if plot.Status != domain.PlotStatusHold {
			t.Fatalf("expected plot status %s, got %s", domain.PlotStatusHold, plot.Status)
		}
		if plot.HoldExpiryAt == nil || !plot.HoldExpiryAt.Equal(wantExpiry) {
			t.Fatalf("expected hold_expiry_at %v, got %v", wantExpiry, plot.HoldExpiryAt)
		}
		if plot.BuyerID == nil || *plot.BuyerID != "lead-1" {
			t.Fatalf("expected buyer_id lead-1, got %v", plot.BuyerID)
		}
		if plot.SalesOwnerID == nil || *plot.SalesOwnerID != "user-sales" {
			t.Fatalf("expected sales_owner_id user-sales, got %v", plot.SalesOwnerID)
		}
	})

	t.Run("sales owner falls back to assigned user for non-sales roles", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		svc := NewHoldService(s, clock.NewFixed(now), notify.LogNotifier{})

		pm := domain.User{ID: "user-pm", Role: domain.RolePM}
		booking, err := svc.PlaceHold(context.Background(), pm, PlaceHoldInput{PlotID: "plot-1", LeadID: "lead-1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if booking.SalesUserID != "user-sales" {
			t.Fatalf("expected sales owner user-sales, got %s", booking.SalesUserID)
		}
	})

	t.Run("rejects plot not in available status", func(t *testing.T) {
		for _, status := range []domain.PlotStatus{
			domain.PlotStatusHold, domain.PlotStatusBooked,
			domain.PlotStatusSold, domain.PlotStatusBlocked,
		} {
			s := seedStore(t, status)
			svc := NewHoldService(s, clock.NewFixed(now), notify.LogNotifier{})

			_, err := svc.PlaceHold(context.Background(), salesUser, PlaceHoldInput{PlotID: "plot-1", LeadID: "lead-1"})
			if err != domain.ErrInvalidStateTransition {
				t.Fatalf("status %s: expected ErrInvalidStateTransition, got %v", status, err)
			}
		}
	})

	t.Run("permission denied leaves store untouched", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		svc := NewHoldService(s, clock.NewFixed(now), notify.LogNotifier{})

		auditor := domain.User{ID: "user-aud", Role: domain.RoleAuditor}
		_, err := svc.PlaceHold(context.Background(), auditor, PlaceHoldInput{PlotID: "plot-1", LeadID: "lead-1"})
		if err != domain.ErrPermissionDenied {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}

		plot, err := s.GetPlot(context.Background(), "plot-1")
		if err != nil {
			t.Fatalf("reload plot: %v", err)
		}
		if plot.Status != domain.PlotStatusAvailable {
			t.Fatalf("expected plot untouched, got status %s", plot.Status)
		}
		if holds, _ := s.ListBookingsByStatus(context.Background(), domain.BookingStatusHold); len(holds) != 0 {
			t.Fatalf("expected no bookings, got %d", len(holds))
		}
	})

	t.Run("unknown lead rolls back the plot mutation", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		svc := NewHoldService(s, clock.NewFixed(now), notify.LogNotifier{})

		_, err := svc.PlaceHold(context.Background(), salesUser, PlaceHoldInput{PlotID: "plot-1", LeadID: "lead-missing"})
		if err != domain.ErrLeadNotFound {
			t.Fatalf("expected ErrLeadNotFound, got %v", err)
		}

		plot, err := s.GetPlot(context.Background(), "plot-1")
		if err != nil {
			t.Fatalf("reload plot: %v", err)
		}
		if plot.Status != domain.PlotStatusAvailable {
			t.Fatalf("expected plot still available, got %s", plot.Status)
		}
	})

	t.Run("second hold on the same plot conflicts", func(t *testing.T) {
		s := seedStore(t, domain.PlotStatusAvailable)
		svc := NewHoldService(s, clock.NewFixed(now), notify.LogNotifier{})

		if _, err := svc.PlaceHold(context.Background(), salesUser, PlaceHoldInput{PlotID: "plot-1", LeadID: "lead-1"}); err != nil {
			t.Fatalf("first hold: %v", err)
		}
		_, err := svc.PlaceHold(context.Background(), salesUser, PlaceHoldInput{PlotID: "plot-1", LeadID: "lead-1"})
		if err != domain.ErrInvalidStateTransition {
			t.Fatalf("expected ErrInvalidStateTransition on held plot, got %v", err)
		}
	})
}
