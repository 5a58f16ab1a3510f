package models

// ServicePackage is a provider's bookable offering.
type ServicePackage struct {
	ID          string  `bson:"id" json:"id"`
	ProviderID  string  `bson:"provider_id" json:"provider_id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64 `bson:"price" json:"price"`
}

// Provider holds the contact fields the booking response resolves.
type Provider struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}
