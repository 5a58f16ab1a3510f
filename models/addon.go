package models

// Addon is a bookable extra from the catalog. A physical item carries a
// non-nil StockQuantity; an unlimited service leaves it nil.
type Addon struct {
	ID            string  `bson:"id" json:"id"`
	ProviderID    string  `bson:"provider_id,omitempty" json:"provider_id,omitempty"`
	Name          string  `bson:"name" json:"name"`
	Description   string  `bson:"description,omitempty" json:"description,omitempty"`
	Price         float64 `bson:"price" json:"price"`
	StockQuantity *int    `bson:"stock_quantity,omitempty" json:"stock_quantity,omitempty"`
}

// IsPhysical reports whether the addon is finite inventory.
func (a *Addon) IsPhysical() bool {
	return a.StockQuantity != nil
}
