package models

import "time"

// StockEventType classifies a stock ledger entry.
type StockEventType string

const (
	StockEventReserve StockEventType = "reserve" // soft hold taken, counter untouched
	StockEventConfirm StockEventType = "confirm" // hold made permanent, counter decremented
	StockEventRelease StockEventType = "release" // hold released or stock returned
	StockEventAdjust  StockEventType = "adjust"  // manual correction
)

// StockEvent is an append-only ledger entry recording a change to an addon's
// stock. Entries are never updated or deleted; the ledger reconstructs
// stock_quantity for audit and drift detection.
type StockEvent struct {
	ID             string         `bson:"id" json:"id"`
	AddonID        string         `bson:"addon_id" json:"addon_id"`
	BookingID      string         `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	Type           StockEventType `bson:"type" json:"type"`
	Quantity       int            `bson:"quantity" json:"quantity"`               // units the event concerns
	StockDelta     int            `bson:"stock_delta" json:"stock_delta"`         // signed change applied to stock_quantity
	ResultingStock *int           `bson:"resulting_stock,omitempty" json:"resulting_stock,omitempty"`
	Reason         string         `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
}
