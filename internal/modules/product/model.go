package product

import (
	"time"

	"github.com/google/uuid"
)

// Product is an item in a vendor's catalog. The vendor_* fields are a
// denormalized snapshot of the owning vendor, copied at write time so public
// listings render without a join.
type Product struct {
	ID       uuid.UUID `json:"id"`
	VendorID uuid.UUID `json:"vendor_id"`

	VendorName     string `json:"vendor_name"`
	VendorLogoURL  string `json:"vendor_logo_url,omitempty"`
	VendorLocation string `json:"vendor_location,omitempty"`

	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	ImageURL    string  `json:"image_url,omitempty"`
	Category    string  `json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
