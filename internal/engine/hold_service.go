package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/landsuite/plot-erp/internal/clock"
	"github.com/landsuite/plot-erp/internal/domain"
	"github.com/landsuite/plot-erp/internal/notify"
	"github.com/landsuite/plot-erp/internal/permission"
)

// defaultTokenAmount is the earnest money requested with every new hold.
const defaultTokenAmount = 50000

// HoldService places time-boxed holds on available plots. Placing a hold
// creates the plot's booking in the same atomic step: a hold booking
// never exists for a plot that is not in hold status, and vice versa.
type HoldService struct {
	store    Store
	clock    clock.Clock
	notifier notify.Notifier
}

func NewHoldService(store Store, clk clock.Clock, n notify.Notifier) *HoldService {
	return &HoldService{store: store, clock: clk, notifier: n}
}

type PlaceHoldInput struct {
	PlotID string
	LeadID string
}

// PlaceHold moves an available plot to hold for the given lead and
// creates the matching hold booking. The hold deadline is now plus
// settings.default_hold_hours; the booking freezes the agreement value
// at plot size times the plot's current rate. The sales owner is the
// acting user for sales/CRM roles and the lead's assigned user
// otherwise.
func (s *HoldService) PlaceHold(ctx context.Context, user domain.User, in PlaceHoldInput) (domain.Booking, error) {
	if !permission.Can(user.Role, permission.HoldPlot) {
		return domain.Booking{}, domain.ErrPermissionDenied
	}

	now := s.clock.Now()
	var (
		booking domain.Booking
		plot    domain.Plot
		lead    domain.Lead
	)

	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		plot, err = s.store.GetPlot(txCtx, in.PlotID)
		if err != nil {
			return err
		}
		if plot.Status != domain.PlotStatusAvailable {
			return domain.ErrInvalidStateTransition
		}

		lead, err = s.store.GetLead(txCtx, in.LeadID)
		if err != nil {
			return err
		}

		settings, err := s.store.GetSettings(txCtx)
		if err != nil {
			return err
		}
		expiry := now.Add(time.Duration(settings.DefaultHoldHours) * time.Hour)

		salesOwner := user.ID
		if user.Role != domain.RoleSales && user.Role != domain.RoleCRM {
			salesOwner = lead.AssignedToUserID
		}

		plot.Status = domain.PlotStatusHold
		plot.HoldExpiryAt = &expiry
		plot.BuyerID = &lead.ID
		plot.SalesOwnerID = &salesOwner
		plot.LastStatusChangeAt = now

		booking = domain.Booking{
			ID:             newID("book"),
			PlotID:         plot.ID,
			LeadID:         lead.ID,
			SalesUserID:    salesOwner,
			Status:         domain.BookingStatusHold,
			TokenAmount:    defaultTokenAmount,
			TokenDueAt:     expiry,
			AgreementValue: plot.CurrentRate * plot.Size,
			PaymentPlan:    domain.PaymentPlanLinked,
			PaymentStatus:  domain.PaymentStatusPending,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := s.store.PutPlot(txCtx, plot); err != nil {
			return err
		}
		return s.store.CreateBooking(txCtx, booking)
	})
	if err != nil {
		return domain.Booking{}, err
	}

	// Fire-and-forget: a dead notification channel must not undo a hold.
	msg := fmt.Sprintf("Plot %s is on hold for you. Token payment of %.0f is due by %s.",
		plot.PlotNo, booking.TokenAmount, booking.TokenDueAt.Format(time.RFC3339))
	if err := s.notifier.Notify(ctx, lead.Phone, msg); err != nil {
		log.Printf("hold: notify lead %s failed: %v", lead.ID, err)
	}

	return booking, nil
}
