package quota

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCounterStore struct {
	counters     Counters
	productCount int

	countersErr error
	countErr    error

	countersCalls int
	countCalls    int
}

func (m *mockCounterStore) VendorCounters(ctx context.Context, vendorID uuid.UUID) (Counters, error) {
	m.countersCalls++
	if m.countersErr != nil {
		return Counters{}, m.countersErr
	}
	return m.counters, nil
}

func (m *mockCounterStore) CountVendorProducts(ctx context.Context, vendorID uuid.UUID) (int, error) {
	m.countCalls++
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.productCount, nil
}

func (m *mockCounterStore) IncrementEditUsed(ctx context.Context, vendorID uuid.UUID) error   { return nil }
func (m *mockCounterStore) IncrementDeleteUsed(ctx context.Context, vendorID uuid.UUID) error { return nil }
func (m *mockCounterStore) ResetEditUsed(ctx context.Context, vendorID uuid.UUID) error       { return nil }
func (m *mockCounterStore) ResetDeleteUsed(ctx context.Context, vendorID uuid.UUID) error     { return nil }

func TestGateCanAdd(t *testing.T) {
	vendorID := uuid.New()

	tests := []struct {
		name    string
		limit   int
		count   int
		allowed bool
	}{
		{"below limit", 5, 4, true},
		{"at limit", 5, 5, false},
		{"over limit", 5, 7, false},
		{"zero limit", 0, 0, false},
		{"empty catalog", 5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockCounterStore{
				counters:     Counters{ProductLimit: tt.limit},
				productCount: tt.count,
			}
			gate := NewGate(store)

			ok, err := gate.CanAdd(context.Background(), vendorID)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, ok)
			assert.Equal(t, 1, store.countCalls, "CanAdd must re-read the live product count")
		})
	}
}

func TestGateCanAddRaisedLimit(t *testing.T) {
	// A vendor at its cap becomes eligible again the moment the admin raises
	// the limit; nothing else changes.
	vendorID := uuid.New()
	store := &mockCounterStore{counters: Counters{ProductLimit: 5}, productCount: 5}
	gate := NewGate(store)

	ok, err := gate.CanAdd(context.Background(), vendorID)
	require.NoError(t, err)
	assert.False(t, ok)

	store.counters.ProductLimit = 6
	ok, err = gate.CanAdd(context.Background(), vendorID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGateCanEdit(t *testing.T) {
	vendorID := uuid.New()

	tests := []struct {
		name    string
		used    int
		limit   int
		allowed bool
	}{
		{"unused", 0, 5, true},
		{"under limit", 4, 5, true},
		{"at limit", 5, 5, false},
		{"over limit after admin lowered it", 7, 5, false},
		{"zero limit", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockCounterStore{
				counters: Counters{EditProductLimit: tt.limit, EditProductUsed: tt.used},
			}
			gate := NewGate(store)

			dec, err := gate.CanEdit(context.Background(), vendorID)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, dec.Allowed)
			assert.Equal(t, tt.used, dec.Used, "used must be reported even when refused")
			assert.Equal(t, tt.limit, dec.Limit, "limit must be reported even when refused")
		})
	}
}

func TestGateCanDelete(t *testing.T) {
	vendorID := uuid.New()
	store := &mockCounterStore{
		counters: Counters{DeleteProductLimit: 3, DeleteProductUsed: 3},
	}
	gate := NewGate(store)

	dec, err := gate.CanDelete(context.Background(), vendorID)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Equal(t, 3, dec.Used)
	assert.Equal(t, 3, dec.Limit)
}

func TestGateResetReopensQuota(t *testing.T) {
	// Blocked at used == limit; after the admin reset drops used to 0 the
	// next check allows again as long as the limit is positive.
	vendorID := uuid.New()
	store := &mockCounterStore{
		counters: Counters{EditProductLimit: 5, EditProductUsed: 5, DeleteProductLimit: 5, DeleteProductUsed: 5},
	}
	gate := NewGate(store)

	dec, err := gate.CanEdit(context.Background(), vendorID)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)

	store.counters.EditProductUsed = 0
	store.counters.DeleteProductUsed = 0

	dec, err = gate.CanEdit(context.Background(), vendorID)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
	assert.Equal(t, 0, dec.Used)

	del, err := gate.CanDelete(context.Background(), vendorID)
	require.NoError(t, err)
	assert.True(t, del.Allowed)
}

func TestGateChecksAreReadOnly(t *testing.T) {
	vendorID := uuid.New()
	store := &mockCounterStore{counters: Counters{ProductLimit: 5, EditProductLimit: 5, DeleteProductLimit: 5}}
	gate := NewGate(store)

	_, err := gate.CanAdd(context.Background(), vendorID)
	require.NoError(t, err)
	_, err = gate.CanEdit(context.Background(), vendorID)
	require.NoError(t, err)
	_, err = gate.CanDelete(context.Background(), vendorID)
	require.NoError(t, err)

	// Three checks: three counter reads, one product count, zero writes.
	assert.Equal(t, 3, store.countersCalls)
	assert.Equal(t, 1, store.countCalls)
}

func TestGatePropagatesStoreErrors(t *testing.T) {
	vendorID := uuid.New()
	storeErr := errors.New("store down")

	gate := NewGate(&mockCounterStore{countersErr: storeErr})
	_, err := gate.CanAdd(context.Background(), vendorID)
	assert.ErrorIs(t, err, storeErr)

	gate = NewGate(&mockCounterStore{counters: Counters{ProductLimit: 5}, countErr: storeErr})
	_, err = gate.CanAdd(context.Background(), vendorID)
	assert.ErrorIs(t, err, storeErr)
}
