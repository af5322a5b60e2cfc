package quota

import (
	"context"

	"github.com/google/uuid"
)

// Counters is the authoritative per-vendor limit/usage record.
type Counters struct {
	ProductLimit       int
	EditProductLimit   int
	DeleteProductLimit int
	EditProductUsed    int
	DeleteProductUsed  int
}

// Decision is the outcome of an edit/delete quota check. Used and Limit are
// always populated, even when the action is refused, so callers can render
// "X of Y used" without a second round trip.
type Decision struct {
	Allowed bool `json:"allowed"`
	Used    int  `json:"used"`
	Limit   int  `json:"limit"`
}

// CounterStore defines the interface for authoritative quota state.
// Increments and resets are single atomic updates against the store; the
// gate itself never mutates anything.
type CounterStore interface {
	VendorCounters(ctx context.Context, vendorID uuid.UUID) (Counters, error)
	CountVendorProducts(ctx context.Context, vendorID uuid.UUID) (int, error)
	IncrementEditUsed(ctx context.Context, vendorID uuid.UUID) error
	IncrementDeleteUsed(ctx context.Context, vendorID uuid.UUID) error
	ResetEditUsed(ctx context.Context, vendorID uuid.UUID) error
	ResetDeleteUsed(ctx context.Context, vendorID uuid.UUID) error
}
