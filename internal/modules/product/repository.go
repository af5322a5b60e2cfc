package product

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for product data storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// RestampVendorProducts rewrites the denormalized vendor fields on every
	// product owned by the vendor and reports how many rows changed.
	RestampVendorProducts(ctx context.Context, vendorID uuid.UUID, name, logoURL, location string) (int, error)
}
