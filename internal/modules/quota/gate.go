package quota

import (
	"context"

	"github.com/google/uuid"
)

// Gate answers "can this vendor perform action X right now?". All checks are
// read-only and re-read authoritative state from the counter store at call
// time; an in-memory product list may be stale across devices and sessions.
//
// The check-then-act sequence is not transactional: two concurrent requests
// for the same vendor can both pass a check before either mutation commits.
// Counter updates themselves are atomic, so state never corrupts, but a
// transient over-admission is possible.
type Gate struct {
	store CounterStore
}

// NewGate creates a quota gate backed by the given counter store.
func NewGate(store CounterStore) *Gate {
	return &Gate{store: store}
}

// CanAdd reports whether the vendor may create another product: the live
// owned-product count must be strictly below the product limit.
func (g *Gate) CanAdd(ctx context.Context, vendorID uuid.UUID) (bool, error) {
	c, err := g.store.VendorCounters(ctx, vendorID)
	if err != nil {
		return false, err
	}
	count, err := g.store.CountVendorProducts(ctx, vendorID)
	if err != nil {
		return false, err
	}
	return count < c.ProductLimit, nil
}

// CanEdit reports whether the vendor may edit a product. An admin lowering a
// limit below historical usage leaves used > limit; that state simply reads
// as blocked.
func (g *Gate) CanEdit(ctx context.Context, vendorID uuid.UUID) (Decision, error) {
	c, err := g.store.VendorCounters(ctx, vendorID)
	if err != nil {
		return Decision{}, err
	}
	return Decision{
		Allowed: c.EditProductUsed < c.EditProductLimit,
		Used:    c.EditProductUsed,
		Limit:   c.EditProductLimit,
	}, nil
}

// CanDelete reports whether the vendor may delete a product.
func (g *Gate) CanDelete(ctx context.Context, vendorID uuid.UUID) (Decision, error) {
	c, err := g.store.VendorCounters(ctx, vendorID)
	if err != nil {
		return Decision{}, err
	}
	return Decision{
		Allowed: c.DeleteProductUsed < c.DeleteProductLimit,
		Used:    c.DeleteProductUsed,
		Limit:   c.DeleteProductLimit,
	}, nil
}
