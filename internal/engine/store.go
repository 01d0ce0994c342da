// Package engine implements the plot and booking lifecycle state
// machines and the hold-expiry sweeper. All mutations of the plot and
// booking pair happen inside Store.WithTx so the pair is never observed
// half-applied.
package engine

import (
	"context"

	"github.com/landsuite/plot-erp/internal/domain"
)

// Store is the persistence boundary the engine depends on. WithTx runs fn
// atomically: every store call made with the ctx it passes to fn joins
// the same transaction, and an error from fn rolls the whole unit back.
//
// Implementations: internal/repository (MySQL) and internal/store/memory.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	GetPlot(ctx context.Context, id string) (domain.Plot, error)
	PutPlot(ctx context.Context, plot domain.Plot) error

	GetLead(ctx context.Context, id string) (domain.Lead, error)
	GetUser(ctx context.Context, id string) (domain.User, error)
	ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	GetSettings(ctx context.Context) (domain.Settings, error)

	GetBooking(ctx context.Context, id string) (domain.Booking, error)
	// CreateBooking fails with domain.ErrBookingConflict when the plot
	// already carries an open booking.
	CreateBooking(ctx context.Context, b domain.Booking) error
	PutBooking(ctx context.Context, b domain.Booking) error
	ListBookingsByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)

	CreatePayment(ctx context.Context, p domain.Payment) error
	ListPaymentsByBooking(ctx context.Context, bookingID string) ([]domain.Payment, error)
}
