// Package memory provides a mutex-guarded in-memory implementation of
// engine.Store. It backs the engine tests and lets the server run
// without a database for local experiments. Transactions are modeled by
// holding the store lock for the whole closure and restoring a snapshot
// on error, so the plot/booking pair is never observed half-applied.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/landsuite/plot-erp/internal/domain"
)

type txKey struct{}

// Store keeps every entity in a map keyed by ID.
type Store struct {
	mu       sync.Mutex
	plots    map[string]domain.Plot
	leads    map[string]domain.Lead
	users    map[string]domain.User
	bookings map[string]domain.Booking
	payments map[string]domain.Payment
	settings *domain.Settings
}

func NewStore() *Store {
	return &Store{
		plots:    make(map[string]domain.Plot),
		leads:    make(map[string]domain.Lead),
		users:    make(map[string]domain.User),
		bookings: make(map[string]domain.Booking),
		payments: make(map[string]domain.Payment),
	}
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// lock takes the store lock unless the context is already inside WithTx,
// which holds it for the whole transaction.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithTx serializes the closure against all other store access and rolls
// back every map to its pre-transaction snapshot when fn errors.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	plots    map[string]domain.Plot
	leads    map[string]domain.Lead
	users    map[string]domain.User
	bookings map[string]domain.Booking
	payments map[string]domain.Payment
	settings *domain.Settings
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		plots:    copyMap(s.plots),
		leads:    copyMap(s.leads),
		users:    copyMap(s.users),
		bookings: copyMap(s.bookings),
		payments: copyMap(s.payments),
		settings: s.settings,
	}
}

func (s *Store) restore(snap snapshot) {
	s.plots = snap.plots
	s.leads = snap.leads
	s.users = snap.users
	s.bookings = snap.bookings
	s.payments = snap.payments
	s.settings = snap.settings
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) GetPlot(ctx context.Context, id string) (domain.Plot, error) {
	defer s.lock(ctx)()
	p, ok := s.plots[id]
	if !ok {
		return domain.Plot{}, domain.ErrPlotNotFound
	}
	return p, nil
}

func (s *Store) PutPlot(ctx context.Context, plot domain.Plot) error {
	defer s.lock(ctx)()
	s.plots[plot.ID] = plot
	return nil
}

func (s *Store) GetLead(ctx context.Context, id string) (domain.Lead, error) {
	defer s.lock(ctx)()
	l, ok := s.leads[id]
	if !ok {
		return domain.Lead{}, domain.ErrLeadNotFound
	}
	return l, nil
}

func (s *Store) PutLead(ctx context.Context, lead domain.Lead) error {
	defer s.lock(ctx)()
	s.leads[lead.ID] = lead
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (domain.User, error) {
	defer s.lock(ctx)()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *Store) PutUser(ctx context.Context, user domain.User) error {
	defer s.lock(ctx)()
	s.users[user.ID] = user
	return nil
}

func (s *Store) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	defer s.lock(ctx)()
	var out []domain.User
	for _, u := range s.users {
		if u.Role == role && u.Active {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetSettings(ctx context.Context) (domain.Settings, error) {
	defer s.lock(ctx)()
	if s.settings == nil {
		return domain.Settings{}, domain.ErrSettingsNotFound
	}
	return *s.settings, nil
}

func (s *Store) PutSettings(ctx context.Context, settings domain.Settings) error {
	defer s.lock(ctx)()
	s.settings = &settings
	return nil
}

func (s *Store) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	defer s.lock(ctx)()
	b, ok := s.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, nil
}

func (s *Store) CreateBooking(ctx context.Context, b domain.Booking) error {
	defer s.lock(ctx)()
	for _, existing := range s.bookings {
		if existing.PlotID == b.PlotID && existing.Open() {
			return domain.ErrBookingConflict
		}
	}
	s.bookings[b.ID] = b
	return nil
}

func (s *Store) PutBooking(ctx context.Context, b domain.Booking) error {
	defer s.lock(ctx)()
	if _, ok := s.bookings[b.ID]; !ok {
		return domain.ErrBookingNotFound
	}
	s.bookings[b.ID] = b
	return nil
}

func (s *Store) ListBookingsByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	defer s.lock(ctx)()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreatePayment(ctx context.Context, p domain.Payment) error {
	defer s.lock(ctx)()
	s.payments[p.ID] = p
	return nil
}

func (s *Store) ListPaymentsByBooking(ctx context.Context, bookingID string) ([]domain.Payment, error) {
	defer s.lock(ctx)()
	var out []domain.Payment
	for _, p := range s.payments {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
