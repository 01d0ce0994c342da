package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/landsuite/plot-erp/internal/domain"
)

func TestStore_WithTxRollback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	if err := s.PutPlot(ctx, domain.Plot{ID: "plot-1", Status: domain.PlotStatusAvailable}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(txCtx context.Context) error {
		p, err := s.GetPlot(txCtx, "plot-1")
		if err != nil {
			return err
		}
		p.Status = domain.PlotStatusHold
		if err := s.PutPlot(txCtx, p); err != nil {
			return err
		}
		if err := s.CreateBooking(txCtx, domain.Booking{ID: "book-1", PlotID: "plot-1", Status: domain.BookingStatusHold}); err != nil {
			return err
		}
		return boom
	})
	if err != boom {
		t.Fatalf("expected boom, got %v", err)
	}

	plot, err := s.GetPlot(ctx, "plot-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if plot.Status != domain.PlotStatusAvailable {
		t.Fatalf("expected rollback to available, got %s", plot.Status)
	}
	if _, err := s.GetBooking(ctx, "book-1"); err != domain.ErrBookingNotFound {
		t.Fatalf("expected booking rolled back, got %v", err)
	}
}

func TestStore_WithTxCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	if err := s.PutPlot(ctx, domain.Plot{ID: "plot-1", Status: domain.PlotStatusAvailable}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := s.WithTx(ctx, func(txCtx context.Context) error {
		p, err := s.GetPlot(txCtx, "plot-1")
		if err != nil {
			return err
		}
		p.Status = domain.PlotStatusHold
		return s.PutPlot(txCtx, p)
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	plot, _ := s.GetPlot(ctx, "plot-1")
	if plot.Status != domain.PlotStatusHold {
		t.Fatalf("expected committed hold, got %s", plot.Status)
	}
}

func TestStore_CreateBookingConflict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()

	if err := s.CreateBooking(ctx, domain.Booking{ID: "book-1", PlotID: "plot-1", Status: domain.BookingStatusHold}); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	err := s.CreateBooking(ctx, domain.Booking{ID: "book-2", PlotID: "plot-1", Status: domain.BookingStatusHold})
	if err != domain.ErrBookingConflict {
		t.Fatalf("expected ErrBookingConflict, got %v", err)
	}

	// A closed booking on the same plot does not block a new one.
	if err := s.PutBooking(ctx, domain.Booking{ID: "book-1", PlotID: "plot-1", Status: domain.BookingStatusExpired}); err != nil {
		t.Fatalf("close booking: %v", err)
	}
	if err := s.CreateBooking(ctx, domain.Booking{ID: "book-3", PlotID: "plot-1", Status: domain.BookingStatusHold}); err != nil {
		t.Fatalf("expected new booking allowed, got %v", err)
	}
}

func TestStore_NotFoundErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()

	if _, err := s.GetPlot(ctx, "missing"); err != domain.ErrPlotNotFound {
		t.Fatalf("expected ErrPlotNotFound, got %v", err)
	}
	if _, err := s.GetLead(ctx, "missing"); err != domain.ErrLeadNotFound {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
	if _, err := s.GetSettings(ctx); err != domain.ErrSettingsNotFound {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}
}
