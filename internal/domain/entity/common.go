package entity

// DefaultCurrency is the only currency the marketplace currently supports.
const DefaultCurrency = "PHP"

// Money value object
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Address value object
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// GeoLocation value object for location-based lookups.
// RadiusKm is only meaningful on query input (proximity searches).
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radius,omitempty"`
}

// ImageMetadata describes a stored product image.
type ImageMetadata struct {
	URL       string `json:"url"`
	Alt       string `json:"alt,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

// ProductSpecification is a free-form key/value attribute of a product.
type ProductSpecification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}
