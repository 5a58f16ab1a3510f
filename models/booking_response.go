package models

// BookingResponse is returned from a successful create.
type BookingResponse struct {
	BookingID string        `json:"booking_id"`
	Reference string        `json:"reference"`
	Status    BookingStatus `json:"status"`
	Provider  Provider      `json:"provider"`
}

// BookingDetail is the full booking graph for read endpoints.
type BookingDetail struct {
	Booking Booking        `json:"booking"`
	Dates   []BookingDate  `json:"dates"`
	Addons  []BookingAddon `json:"addons"`
}

// StatusUpdateResult is returned from a lifecycle transition.
type StatusUpdateResult struct {
	BookingID     string        `json:"booking_id"`
	Status        BookingStatus `json:"status"`
	RefundAmount  float64       `json:"refund_amount,omitempty"`
	RefundPercent int           `json:"refund_percent,omitempty"`
}
