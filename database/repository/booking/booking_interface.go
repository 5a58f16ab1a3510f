package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"solace/models"
)

// StockLine names one physical-item quantity a transition touches.
type StockLine struct {
	AddonID   string
	AddonName string
	Quantity  int
}

// InsufficientStockError is returned when a conditional decrement matched no
// document, meaning the addon no longer has the quantity the hold promised.
type InsufficientStockError struct {
	AddonID   string
	AddonName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for addon %s (%s)", e.AddonName, e.AddonID)
}

// WriteConflictError is returned when a create transaction aborted because a
// concurrent transaction wrote the same lock document. Exactly one of two
// racing creates for the same provider date or addon gets this error.
type WriteConflictError struct {
	BookingID string
}

func (e *WriteConflictError) Error() string {
	return fmt.Sprintf("booking %s lost a write race with a concurrent request", e.BookingID)
}

// StatusConflictError is returned when a transition's status filter matched no
// document, meaning a concurrent transition already moved the booking out of
// the expected state.
type StatusConflictError struct {
	BookingID string
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("booking %s was transitioned concurrently", e.BookingID)
}

// BookingRepository is the data-access contract for the booking graph and the
// stock-affecting transitions that must commit atomically with it.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	DatesForBooking(ctx context.Context, bookingID string) ([]models.BookingDate, error)
	AddonsForBooking(ctx context.Context, bookingID string) ([]models.BookingAddon, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error)

	// ActiveDatesByProvider returns every date row owned by a booking in a
	// non-terminal status for the given provider.
	ActiveDatesByProvider(ctx context.Context, providerID string) ([]models.BookingDate, error)

	// ReservedQuantity sums quantities of the given addon held by pending
	// bookings created after pendingCutoff, excluding excludeBookingID.
	ReservedQuantity(ctx context.Context, addonID, excludeBookingID string, pendingCutoff time.Time) (int, error)

	// StalePending lists pending bookings created before cutoff.
	StalePending(ctx context.Context, cutoff time.Time) ([]models.Booking, error)

	// CreateBookingGraph persists the booking, its dates, its addon lines and
	// the reserve events as one transaction. The guard runs inside the
	// transaction before any insert; returning an error aborts the whole
	// create with nothing visible.
	CreateBookingGraph(ctx context.Context, booking *models.Booking, dates []models.BookingDate, addons []models.BookingAddon, events []models.StockEvent, guard func(ctx context.Context) error) error

	// UpdateStatus applies a transition with no inventory effect and appends
	// a provider-notes line.
	UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus, note string) error

	// ConfirmTransactionally decrements every listed stock line with a
	// conditional update, appends confirm events, and flips the booking to
	// confirmed. Any shortfall aborts the transaction and surfaces as
	// *InsufficientStockError.
	ConfirmTransactionally(ctx context.Context, bookingID, note string, lines []StockLine) error

	// CancelTransactionally flips the booking to cancelled, records the
	// refund, appends release events, and when restock is true returns the
	// listed quantities to stock.
	CancelTransactionally(ctx context.Context, bookingID, reason, note string, refundAmount float64, lines []StockLine, restock bool) error
}
