package models

// ProviderBlackout is a provider-declared unavailable date. Blackouts always
// conflict with candidate bookings regardless of time granularity.
type ProviderBlackout struct {
	ProviderID string `bson:"provider_id" json:"provider_id"`
	Date       string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Reason     string `bson:"reason,omitempty" json:"reason,omitempty"`
}

// BlackoutInput is one date or date range on a blackout management request.
// Date and StartDate/EndDate are mutually exclusive.
type BlackoutInput struct {
	Date      string `json:"date,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// DateWindow is a candidate date or date range, optionally time-boxed.
// EndDate defaults to StartDate for single-day windows; empty times mean the
// window occupies the full day.
type DateWindow struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// AvailabilityResult is the Conflict Checker's answer for one window.
type AvailabilityResult struct {
	Available bool   `json:"available"`
	Conflicts int    `json:"conflicts"` // count of conflicting reservations, for diagnostics
	Reason    string `json:"reason,omitempty"`
}

// StockResult reports an addon's admit/reject decision for a requested
// quantity, with the counters clients display.
type StockResult struct {
	Available      bool `json:"available"`
	AvailableStock int  `json:"available_stock"`
	TotalStock     int  `json:"total_stock"`
	Reserved       int  `json:"reserved_quantity"`
	Unlimited      bool `json:"unlimited,omitempty"`
}
