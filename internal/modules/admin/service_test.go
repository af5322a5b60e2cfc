package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sellora/marketplace-backend/internal/modules/auth"
	"github.com/sellora/marketplace-backend/internal/modules/quota"
	"github.com/sellora/marketplace-backend/internal/modules/vendor"
)

type mockVendorRepository struct {
	byID map[uuid.UUID]*vendor.Vendor
}

func newMockVendorRepository(vendors ...*vendor.Vendor) *mockVendorRepository {
	m := &mockVendorRepository{byID: map[uuid.UUID]*vendor.Vendor{}}
	for _, v := range vendors {
		m.byID[v.ID] = v
	}
	return m
}

func (m *mockVendorRepository) CreateVendor(ctx context.Context, v *vendor.Vendor) error {
	cp := *v
	m.byID[v.ID] = &cp
	return nil
}

func (m *mockVendorRepository) GetVendorByID(ctx context.Context, id uuid.UUID) (*vendor.Vendor, error) {
	v, ok := m.byID[id]
	if !ok {
		return nil, vendor.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *mockVendorRepository) GetVendorByAccountID(ctx context.Context, accountID uuid.UUID) (*vendor.Vendor, error) {
	for _, v := range m.byID {
		if v.AccountID == accountID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, vendor.ErrNotFound
}

func (m *mockVendorRepository) ListVendors(ctx context.Context) ([]*vendor.Vendor, error) {
	var out []*vendor.Vendor
	for _, v := range m.byID {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockVendorRepository) UpdateVendor(ctx context.Context, v *vendor.Vendor) error {
	if _, ok := m.byID[v.ID]; !ok {
		return vendor.ErrNotFound
	}
	cp := *v
	m.byID[v.ID] = &cp
	return nil
}

type mockCounterStore struct {
	quota.CounterStore

	editResets   []uuid.UUID
	deleteResets []uuid.UUID
	productCount int
}

func (m *mockCounterStore) VendorCounters(ctx context.Context, vendorID uuid.UUID) (quota.Counters, error) {
	return quota.Counters{}, nil
}

func (m *mockCounterStore) CountVendorProducts(ctx context.Context, vendorID uuid.UUID) (int, error) {
	return m.productCount, nil
}

func (m *mockCounterStore) ResetEditUsed(ctx context.Context, vendorID uuid.UUID) error {
	m.editResets = append(m.editResets, vendorID)
	return nil
}

func (m *mockCounterStore) ResetDeleteUsed(ctx context.Context, vendorID uuid.UUID) error {
	m.deleteResets = append(m.deleteResets, vendorID)
	return nil
}

type mockAccountRepository struct {
	auth.AccountRepository

	passwords map[uuid.UUID]string
}

func (m *mockAccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	if m.passwords == nil {
		m.passwords = map[uuid.UUID]string{}
	}
	m.passwords[id] = hash
	return nil
}

type mockSyncer struct {
	updatedPerVendor map[uuid.UUID]int
	err              error
	calls            []uuid.UUID
}

func (m *mockSyncer) RestampVendorProducts(ctx context.Context, vendorID uuid.UUID, name, logoURL, location string) (int, error) {
	m.calls = append(m.calls, vendorID)
	if m.err != nil {
		return 0, m.err
	}
	return m.updatedPerVendor[vendorID], nil
}

type mockAuditRepository struct {
	actions []*AdminAction
}

func (m *mockAuditRepository) RecordAction(ctx context.Context, a *AdminAction) error {
	m.actions = append(m.actions, a)
	return nil
}

func (m *mockAuditRepository) ListActions(ctx context.Context, limit int) ([]*AdminAction, error) {
	return m.actions, nil
}

func testVendor() *vendor.Vendor {
	return &vendor.Vendor{
		ID:                 uuid.New(),
		AccountID:          uuid.New(),
		Name:               "Noor Electronics",
		Slug:               "noor-electronics",
		ProductLimit:       5,
		EditProductLimit:   5,
		DeleteProductLimit: 5,
		EditProductUsed:    4,
		DeleteProductUsed:  2,
	}
}

func newTestService(vendors vendor.Repository, counters quota.CounterStore, accounts auth.AccountRepository, syncer vendor.ProductSyncer, audit AuditRepository) Service {
	return NewService(vendors, counters, accounts, syncer, audit, zap.NewNop())
}

func TestResetCounters(t *testing.T) {
	v := testVendor()
	counters := &mockCounterStore{}
	audit := &mockAuditRepository{}
	svc := newTestService(newMockVendorRepository(v), counters, &mockAccountRepository{}, &mockSyncer{}, audit)

	require.NoError(t, svc.ResetEditCounter(context.Background(), v.ID))
	require.NoError(t, svc.ResetDeleteCounter(context.Background(), v.ID))

	assert.Equal(t, []uuid.UUID{v.ID}, counters.editResets)
	assert.Equal(t, []uuid.UUID{v.ID}, counters.deleteResets)

	require.Len(t, audit.actions, 2)
	assert.Equal(t, "reset_edit_counter", audit.actions[0].Action)
	assert.Equal(t, "reset_delete_counter", audit.actions[1].Action)
}

func TestUpdateVendorRejectsNegativeLimit(t *testing.T) {
	v := testVendor()
	svc := newTestService(newMockVendorRepository(v), &mockCounterStore{}, &mockAccountRepository{}, &mockSyncer{}, &mockAuditRepository{})

	bad := -1
	_, err := svc.UpdateVendor(context.Background(), v.ID, UpdateVendorRequest{EditProductLimit: &bad})
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestUpdateVendorAdjustsLimitsOnly(t *testing.T) {
	v := testVendor()
	vendors := newMockVendorRepository(v)
	svc := newTestService(vendors, &mockCounterStore{}, &mockAccountRepository{}, &mockSyncer{}, &mockAuditRepository{})

	newLimit := 10
	updated, err := svc.UpdateVendor(context.Background(), v.ID, UpdateVendorRequest{ProductLimit: &newLimit})
	require.NoError(t, err)

	assert.Equal(t, 10, updated.ProductLimit)
	assert.Equal(t, 4, updated.EditProductUsed, "changing a limit never touches usage")
	assert.Equal(t, 5, updated.EditProductLimit, "untouched limits stay as they were")
}

func TestUpdateVendorRenameRederivesSlugAndRestamps(t *testing.T) {
	v := testVendor()
	vendors := newMockVendorRepository(v)
	syncer := &mockSyncer{updatedPerVendor: map[uuid.UUID]int{v.ID: 3}}
	svc := newTestService(vendors, &mockCounterStore{}, &mockAccountRepository{}, syncer, &mockAuditRepository{})

	updated, err := svc.UpdateVendor(context.Background(), v.ID, UpdateVendorRequest{Name: "Noor Home Appliances"})
	require.NoError(t, err)

	assert.Equal(t, "noor-home-appliances", updated.Slug)
	assert.Equal(t, []uuid.UUID{v.ID}, syncer.calls, "rename propagates to the vendor's products")
}

func TestResetPassword(t *testing.T) {
	v := testVendor()
	accounts := &mockAccountRepository{}
	audit := &mockAuditRepository{}
	svc := newTestService(newMockVendorRepository(v), &mockCounterStore{}, accounts, &mockSyncer{}, audit)

	t.Run("rejects short password", func(t *testing.T) {
		err := svc.ResetPassword(context.Background(), v.ID, "abc")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("sets password for the linked account and audits", func(t *testing.T) {
		err := svc.ResetPassword(context.Background(), v.ID, "newsecret")
		require.NoError(t, err)

		hash, ok := accounts.passwords[v.AccountID]
		require.True(t, ok, "password updated on the vendor's account")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret")))

		require.Len(t, audit.actions, 1)
		assert.Equal(t, "password_reset", audit.actions[0].Action)
		assert.Equal(t, v.ID, audit.actions[0].VendorID)
	})
}

func TestSyncVendorProducts(t *testing.T) {
	v := testVendor()
	vendors := newMockVendorRepository(v)

	t.Run("success", func(t *testing.T) {
		syncer := &mockSyncer{updatedPerVendor: map[uuid.UUID]int{v.ID: 4}}
		svc := newTestService(vendors, &mockCounterStore{}, &mockAccountRepository{}, syncer, &mockAuditRepository{})

		result, err := svc.SyncVendorProducts(context.Background(), v.ID)
		require.NoError(t, err)
		assert.Equal(t, "success", result.Status)
		assert.Equal(t, 4, result.ProductsUpdated)
	})

	t.Run("skipped when vendor has no products", func(t *testing.T) {
		syncer := &mockSyncer{}
		svc := newTestService(vendors, &mockCounterStore{}, &mockAccountRepository{}, syncer, &mockAuditRepository{})

		result, err := svc.SyncVendorProducts(context.Background(), v.ID)
		require.NoError(t, err)
		assert.Equal(t, "skipped", result.Status)
		assert.Equal(t, "no products", result.Reason)
	})

	t.Run("error is reported per vendor", func(t *testing.T) {
		syncer := &mockSyncer{err: errors.New("store down")}
		svc := newTestService(vendors, &mockCounterStore{}, &mockAccountRepository{}, syncer, &mockAuditRepository{})

		result, err := svc.SyncVendorProducts(context.Background(), v.ID)
		require.NoError(t, err)
		assert.Equal(t, "error", result.Status)
		assert.Contains(t, result.Reason, "store down")
	})
}

func TestSyncAllVendorProducts(t *testing.T) {
	a := testVendor()
	b := testVendor()
	vendors := newMockVendorRepository(a, b)
	syncer := &mockSyncer{updatedPerVendor: map[uuid.UUID]int{a.ID: 2}}
	svc := newTestService(vendors, &mockCounterStore{}, &mockAccountRepository{}, syncer, &mockAuditRepository{})

	report, err := svc.SyncAllVendorProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.VendorsProcessed)
	assert.Len(t, report.Results, 2)
	assert.Len(t, syncer.calls, 2)
}

func TestMigrateSlugs(t *testing.T) {
	current := testVendor() // slug already matches name
	missing := testVendor()
	missing.ID = uuid.New()
	missing.Name = "Salam Books"
	missing.Slug = ""
	stale := testVendor()
	stale.ID = uuid.New()
	stale.Name = "Fresh Market"
	stale.Slug = "old-name"

	vendors := newMockVendorRepository(current, missing, stale)
	svc := newTestService(vendors, &mockCounterStore{}, &mockAccountRepository{}, &mockSyncer{}, &mockAuditRepository{})

	report, err := svc.MigrateSlugs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Updated)
	assert.Equal(t, 1, report.Skipped)

	got, err := vendors.GetVendorByID(context.Background(), missing.ID)
	require.NoError(t, err)
	assert.Equal(t, "salam-books", got.Slug)

	got, err = vendors.GetVendorByID(context.Background(), stale.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh-market", got.Slug)
}
