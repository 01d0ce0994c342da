package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/landsuite/plot-erp/internal/clock"
	"github.com/landsuite/plot-erp/internal/domain"
	"github.com/landsuite/plot-erp/internal/notify"
)

// Sweeper reverts holds whose token payment deadline has passed. It is a
// periodic poll rather than a per-hold timer: no in-memory timer state to
// lose on restart, and each tick re-derives the eligible set from the
// store.
type Sweeper struct {
	store    Store
	clock    clock.Clock
	notifier notify.Notifier
}

func NewSweeper(store Store, clk clock.Clock, n notify.Notifier) *Sweeper {
	return &Sweeper{store: store, clock: clk, notifier: n}
}

// Run performs one sweep. It lists hold bookings, keeps those whose token
// is overdue and unpaid, and for each one atomically moves the plot back
// to available and the booking to expired. Per-item failures are logged
// and skipped so one bad record cannot abort the tick. The returned slice
// holds the reverted plots; it is empty when nothing was eligible.
func (s *Sweeper) Run(ctx context.Context) ([]domain.Plot, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.AutoExpireHold {
		return nil, nil
	}

	now := s.clock.Now()
	holds, err := s.store.ListBookingsByStatus(ctx, domain.BookingStatusHold)
	if err != nil {
		return nil, err
	}

	var reverted []domain.Plot
	for _, b := range holds {
		if b.TokenReceivedAt != nil || !b.TokenDueAt.Before(now) {
			continue
		}
		plot, err := s.expireOne(ctx, b.ID, now)
		if err != nil {
			log.Printf("sweeper: expire booking %s: %v", b.ID, err)
			continue
		}
		if plot == nil {
			// Lost the race with a confirm or a concurrent sweep.
			continue
		}
		reverted = append(reverted, *plot)
		s.notifyExpired(ctx, b, *plot)
	}
	return reverted, nil
}

// expireOne re-reads the booking inside the transaction so a concurrent
// confirmation or sweep turns this into a no-op instead of a double
// transition.
func (s *Sweeper) expireOne(ctx context.Context, bookingID string, now time.Time) (*domain.Plot, error) {
	var reverted *domain.Plot
	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		b, err := s.store.GetBooking(txCtx, bookingID)
		if err != nil {
			return err
		}
		if b.Status != domain.BookingStatusHold || b.TokenReceivedAt != nil {
			return nil
		}

		plot, err := s.store.GetPlot(txCtx, b.PlotID)
		if err != nil {
			return err
		}

		plot.Status = domain.PlotStatusAvailable
		plot.HoldExpiryAt = nil
		plot.BuyerID = nil
		plot.LastStatusChangeAt = now

		b.Status = domain.BookingStatusExpired
		b.UpdatedAt = now

		if err := s.store.PutPlot(txCtx, plot); err != nil {
			return err
		}
		if err := s.store.PutBooking(txCtx, b); err != nil {
			return err
		}
		reverted = &plot
		return nil
	})
	return reverted, err
}

// notifyExpired tells the sales owner and every project manager that the
// plot is back on the market.
func (s *Sweeper) notifyExpired(ctx context.Context, booking domain.Booking, plot domain.Plot) {
	msg := fmt.Sprintf("Hold expired for plot %s; it is available again.", plot.PlotNo)

	salesUser, err := s.store.GetUser(ctx, booking.SalesUserID)
	if err != nil {
		log.Printf("sweeper: lookup sales user %s failed: %v", booking.SalesUserID, err)
	} else if err := s.notifier.Notify(ctx, salesUser.Phone, msg); err != nil {
		log.Printf("sweeper: notify %s failed: %v", salesUser.ID, err)
	}

	pms, err := s.store.ListUsersByRole(ctx, domain.RolePM)
	if err != nil {
		log.Printf("sweeper: list project managers failed: %v", err)
		return
	}
	for _, pm := range pms {
		if pm.ID == booking.SalesUserID {
			continue
		}
		if err := s.notifier.Notify(ctx, pm.Phone, msg); err != nil {
			log.Printf("sweeper: notify %s failed: %v", pm.ID, err)
		}
	}
}

// Start runs sweeps on a ticker until ctx is cancelled. A failed tick is
// only logged; the next tick re-evaluates from scratch.
func (s *Sweeper) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			expired, err := s.Run(ctx)
			if err != nil {
				log.Printf("sweeper: sweep failed: %v", err)
				continue
			}
			if len(expired) > 0 {
				log.Printf("sweeper: reverted %d expired holds", len(expired))
			}
		}
	}
}
