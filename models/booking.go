package models

import "time"

// BookingStatus is the closed set of lifecycle states a booking moves through.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether the booking still occupies its dates and holds.
// Cancelled and completed bookings never conflict with new requests.
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusInProgress
}

// Booking represents one customer request for a service package.
// Bookings are never physically deleted; they are retained for
// audit and refund history.
type Booking struct {
	ID                 string        `bson:"id" json:"id"`
	Reference          string        `bson:"reference" json:"reference"` // Human-readable reference, derived from ID
	PackageID          string        `bson:"package_id" json:"package_id"`
	ProviderID         string        `bson:"provider_id" json:"provider_id"`
	UserID             string        `bson:"user_id,omitempty" json:"user_id,omitempty"`
	CustomerName       string        `bson:"customer_name" json:"customer_name"`
	CustomerEmail      string        `bson:"customer_email" json:"customer_email"`
	CustomerPhone      string        `bson:"customer_phone,omitempty" json:"customer_phone,omitempty"`
	PaymentMethod      string        `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	AttachmentIDs      []string      `bson:"attachment_ids,omitempty" json:"attachment_ids,omitempty"`
	TotalAmount        float64       `bson:"total_amount" json:"total_amount"`
	Status             BookingStatus `bson:"status" json:"status"`
	CancellationReason string        `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	RefundAmount       float64       `bson:"refund_amount,omitempty" json:"refund_amount,omitempty"`
	ProviderNotes      []string      `bson:"provider_notes,omitempty" json:"provider_notes,omitempty"` // Append-only audit trail
	CreatedAt          time.Time     `bson:"created_at" json:"created_at"`
}

// BookingDate is one occupied date (optionally time-boxed) belonging to a booking.
// Created with the booking and immutable afterward; a date change requires a
// new booking.
type BookingDate struct {
	BookingID string `bson:"booking_id" json:"booking_id"`
	Date      string `bson:"date" json:"date"`                                 // "YYYY-MM-DD"
	StartTime string `bson:"start_time,omitempty" json:"start_time,omitempty"` // "HH:MM", empty means full day
	EndTime   string `bson:"end_time,omitempty" json:"end_time,omitempty"`     // "HH:MM", empty means full day
	EventType string `bson:"event_type,omitempty" json:"event_type,omitempty"`
	Location  string `bson:"location,omitempty" json:"location,omitempty"`
}

// BookingAddon is one quantity-bearing line item on a booking. AddonID is
// empty for ad hoc custom add-ons that reference nothing in the catalog.
type BookingAddon struct {
	BookingID string  `bson:"booking_id" json:"booking_id"`
	AddonID   string  `bson:"addon_id,omitempty" json:"addon_id,omitempty"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}
