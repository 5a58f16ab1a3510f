package models

// BookingDateInput is one requested date entry on a create request.
type BookingDateInput struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Location  string `json:"location,omitempty"`
}

// BookingAddonInput is one requested add-on line. AddonID is empty for ad hoc
// custom lines with no catalog entry.
type BookingAddonInput struct {
	AddonID  string  `json:"addon_id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// BookingRequest is the Booking Orchestrator's input.
type BookingRequest struct {
	PackageID     string              `json:"package_id"`
	UserID        string              `json:"user_id,omitempty"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	CustomerPhone string              `json:"customer_phone,omitempty"`
	Dates         []BookingDateInput  `json:"dates"`
	Addons        []BookingAddonInput `json:"addons,omitempty"`
	TotalAmount   float64             `json:"total_amount"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	AttachmentIDs []string            `json:"attachment_ids,omitempty"`
}

// StatusUpdateRequest drives one lifecycle transition.
type StatusUpdateRequest struct {
	BookingID          string        `json:"booking_id"`
	ProviderID         string        `json:"provider_id"` // acting provider
	TargetStatus       BookingStatus `json:"target_status"`
	Notes              string        `json:"notes,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
}
