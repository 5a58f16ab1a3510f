package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "solace/database/repository/booking"
	"solace/models"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for every repository the engine talks
// to. Transactional methods mirror the real guard and conditional-update
// semantics so the tests exercise the same decision paths.
type fakeStore struct {
	bookings   map[string]*models.Booking
	dates      []models.BookingDate
	addonLines []models.BookingAddon
	events     []models.StockEvent

	addons    map[string]*models.Addon
	packages  map[string]*models.ServicePackage
	providers map[string]*models.Provider
	blackouts []models.ProviderBlackout

	// createRace makes the next CreateBookingGraph abort as if a sibling
	// transaction wrote the same lock documents first.
	createRace bool
	// beforeConfirm and beforeCancel run at the top of the transactional
	// methods, letting a test change state between the service's pre-check
	// and the transaction, the way a concurrent request would.
	beforeConfirm func()
	beforeCancel  func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings:  make(map[string]*models.Booking),
		addons:    make(map[string]*models.Addon),
		packages:  make(map[string]*models.ServicePackage),
		providers: make(map[string]*models.Provider),
	}
}

func intPtr(v int) *int { return &v }

// seedBooking inserts a booking with one date row and optional addon lines.
func (s *fakeStore) seedBooking(b models.Booking, dates []models.BookingDate, lines []models.BookingAddon) {
	record := b
	s.bookings[b.ID] = &record
	s.dates = append(s.dates, dates...)
	s.addonLines = append(s.addonLines, lines...)
}

// --- BookingRepository ---

func (s *fakeStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (s *fakeStore) DatesForBooking(_ context.Context, bookingID string) ([]models.BookingDate, error) {
	var out []models.BookingDate
	for _, d := range s.dates {
		if d.BookingID == bookingID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *fakeStore) AddonsForBooking(_ context.Context, bookingID string) ([]models.BookingAddon, error) {
	var out []models.BookingAddon
	for _, line := range s.addonLines {
		if line.BookingID == bookingID {
			out = append(out, line)
		}
	}
	return out, nil
}

func (s *fakeStore) ListByProvider(_ context.Context, providerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range s.bookings {
		if b.ProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeStore) ActiveDatesByProvider(_ context.Context, providerID string) ([]models.BookingDate, error) {
	var out []models.BookingDate
	for _, d := range s.dates {
		b, ok := s.bookings[d.BookingID]
		if !ok || b.ProviderID != providerID || !b.Status.IsActive() {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *fakeStore) ReservedQuantity(_ context.Context, addonID, excludeBookingID string, pendingCutoff time.Time) (int, error) {
	total := 0
	for _, line := range s.addonLines {
		if line.AddonID != addonID || line.BookingID == excludeBookingID {
			continue
		}
		b, ok := s.bookings[line.BookingID]
		if !ok || b.Status != models.StatusPending {
			continue
		}
		if b.CreatedAt.After(pendingCutoff) {
			total += line.Quantity
		}
	}
	return total, nil
}

func (s *fakeStore) StalePending(_ context.Context, cutoff time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range s.bookings {
		if b.Status == models.StatusPending && b.CreatedAt.Before(cutoff) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateBookingGraph(ctx context.Context, booking *models.Booking, dates []models.BookingDate, addons []models.BookingAddon, events []models.StockEvent, guard func(ctx context.Context) error) error {
	if guard != nil {
		if err := guard(ctx); err != nil {
			return err
		}
	}
	if s.createRace {
		return &bookingRepo.WriteConflictError{BookingID: booking.ID}
	}
	record := *booking
	s.bookings[booking.ID] = &record
	s.dates = append(s.dates, dates...)
	s.addonLines = append(s.addonLines, addons...)
	s.events = append(s.events, events...)
	return nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, bookingID string, status models.BookingStatus, note string) error {
	b, ok := s.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	b.Status = status
	b.ProviderNotes = append(b.ProviderNotes, note)
	return nil
}

func (s *fakeStore) ConfirmTransactionally(_ context.Context, bookingID, note string, lines []bookingRepo.StockLine) error {
	if s.beforeConfirm != nil {
		s.beforeConfirm()
	}
	b, ok := s.bookings[bookingID]
	if !ok || b.Status != models.StatusPending {
		return &bookingRepo.StatusConflictError{BookingID: bookingID}
	}
	for _, line := range lines {
		addon := s.addons[line.AddonID]
		if addon == nil || addon.StockQuantity == nil || *addon.StockQuantity < line.Quantity {
			return &bookingRepo.InsufficientStockError{AddonID: line.AddonID, AddonName: line.AddonName}
		}
	}
	for _, line := range lines {
		addon := s.addons[line.AddonID]
		*addon.StockQuantity -= line.Quantity
		resulting := *addon.StockQuantity
		s.events = append(s.events, models.StockEvent{
			ID:             uuid.New().String(),
			AddonID:        line.AddonID,
			BookingID:      bookingID,
			Type:           models.StockEventConfirm,
			Quantity:       line.Quantity,
			StockDelta:     -line.Quantity,
			ResultingStock: intPtr(resulting),
			CreatedAt:      time.Now().UTC(),
		})
	}
	b.Status = models.StatusConfirmed
	b.ProviderNotes = append(b.ProviderNotes, note)
	return nil
}

func (s *fakeStore) CancelTransactionally(_ context.Context, bookingID, reason, note string, refundAmount float64, lines []bookingRepo.StockLine, restock bool) error {
	if s.beforeCancel != nil {
		s.beforeCancel()
	}
	b, ok := s.bookings[bookingID]
	if !ok || (b.Status != models.StatusPending && b.Status != models.StatusConfirmed) {
		return &bookingRepo.StatusConflictError{BookingID: bookingID}
	}
	b.Status = models.StatusCancelled
	b.CancellationReason = reason
	b.RefundAmount = refundAmount
	b.ProviderNotes = append(b.ProviderNotes, note)

	for _, line := range lines {
		event := models.StockEvent{
			ID:        uuid.New().String(),
			AddonID:   line.AddonID,
			BookingID: bookingID,
			Type:      models.StockEventRelease,
			Quantity:  line.Quantity,
			Reason:    reason,
			CreatedAt: time.Now().UTC(),
		}
		if restock {
			addon := s.addons[line.AddonID]
			*addon.StockQuantity += line.Quantity
			event.StockDelta = line.Quantity
			event.ResultingStock = intPtr(*addon.StockQuantity)
		}
		s.events = append(s.events, event)
	}
	return nil
}

// --- InventoryRepository ---

func (s *fakeStore) GetAddon(_ context.Context, id string) (*models.Addon, error) {
	addon, ok := s.addons[id]
	if !ok {
		return nil, nil
	}
	copied := *addon
	if addon.StockQuantity != nil {
		copied.StockQuantity = intPtr(*addon.StockQuantity)
	}
	return &copied, nil
}

func (s *fakeStore) AdjustStock(_ context.Context, addonID string, delta int, reason string) (*models.Addon, error) {
	addon, ok := s.addons[addonID]
	if !ok || addon.StockQuantity == nil {
		return nil, fmt.Errorf("addon %s not found or not physical stock", addonID)
	}
	if delta < 0 && *addon.StockQuantity < -delta {
		return nil, fmt.Errorf("adjustment would go negative")
	}
	*addon.StockQuantity += delta
	s.events = append(s.events, models.StockEvent{
		ID:             uuid.New().String(),
		AddonID:        addonID,
		Type:           models.StockEventAdjust,
		Quantity:       delta,
		StockDelta:     delta,
		ResultingStock: intPtr(*addon.StockQuantity),
		Reason:         reason,
		CreatedAt:      time.Now().UTC(),
	})
	copied := *addon
	copied.StockQuantity = intPtr(*addon.StockQuantity)
	return &copied, nil
}

func (s *fakeStore) EventsForAddon(_ context.Context, addonID string) ([]models.StockEvent, error) {
	var out []models.StockEvent
	for _, e := range s.events {
		if e.AddonID == addonID {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- AvailabilityRepository ---

// fakeBlackoutRepo shares the store but lives on its own type because the
// booking repository already claims the ListByProvider method name.
type fakeBlackoutRepo struct {
	store *fakeStore
}

func (r *fakeBlackoutRepo) BlackoutsInRange(_ context.Context, providerID, startDate, endDate string) ([]models.ProviderBlackout, error) {
	var out []models.ProviderBlackout
	for _, b := range r.store.blackouts {
		if b.ProviderID == providerID && b.Date >= startDate && b.Date <= endDate {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBlackoutRepo) ListByProvider(_ context.Context, providerID string) ([]models.ProviderBlackout, error) {
	var out []models.ProviderBlackout
	for _, b := range r.store.blackouts {
		if b.ProviderID == providerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBlackoutRepo) AddMany(_ context.Context, blackouts []models.ProviderBlackout) (int, error) {
	created := 0
	for _, b := range blackouts {
		exists := false
		for _, existing := range r.store.blackouts {
			if existing.ProviderID == b.ProviderID && existing.Date == b.Date {
				exists = true
				break
			}
		}
		if !exists {
			r.store.blackouts = append(r.store.blackouts, b)
			created++
		}
	}
	return created, nil
}

func (r *fakeBlackoutRepo) RemoveMany(_ context.Context, providerID string, dates []string) (int, error) {
	removed := 0
	var kept []models.ProviderBlackout
	for _, b := range r.store.blackouts {
		match := false
		if b.ProviderID == providerID {
			for _, d := range dates {
				if b.Date == d {
					match = true
					break
				}
			}
		}
		if match {
			removed++
		} else {
			kept = append(kept, b)
		}
	}
	r.store.blackouts = kept
	return removed, nil
}

// --- CatalogRepository ---

func (s *fakeStore) GetPackage(_ context.Context, id string) (*models.ServicePackage, error) {
	pkg, ok := s.packages[id]
	if !ok {
		return nil, nil
	}
	copied := *pkg
	return &copied, nil
}

func (s *fakeStore) GetProvider(_ context.Context, id string) (*models.Provider, error) {
	provider, ok := s.providers[id]
	if !ok {
		return nil, nil
	}
	copied := *provider
	return &copied, nil
}

// newTestEngine wires the engine to a fresh fake store with a fixed clock.
func newTestEngine() (*DefaultBookingEngine, *fakeStore, time.Time) {
	store := newFakeStore()
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	engine := &DefaultBookingEngine{
		Repo:      store,
		Inventory: store,
		Blackouts: &fakeBlackoutRepo{store: store},
		Catalog:   store,
		HoldTTL:   15 * time.Minute,
		Now:       func() time.Time { return now },
	}

	store.providers["prov-1"] = &models.Provider{ID: "prov-1", Name: "Evergreen Memorial", Email: "contact@evergreen.example", Phone: "+1-555-0101"}
	store.packages["pkg-1"] = &models.ServicePackage{ID: "pkg-1", ProviderID: "prov-1", Name: "Graveside Service", Price: 1200}
	return engine, store, now
}
