package quota

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// ErrVendorNotFound is returned when counter state is requested for an
// unknown vendor.
var ErrVendorNotFound = errors.New("vendor not found")

type postgresCounterStore struct {
	db *sql.DB
}

// NewPostgresCounterStore creates a PostgreSQL-backed counter store reading
// and updating the limit/usage columns on the vendors table.
func NewPostgresCounterStore(db *sql.DB) CounterStore {
	return &postgresCounterStore{db: db}
}

func (s *postgresCounterStore) VendorCounters(ctx context.Context, vendorID uuid.UUID) (Counters, error) {
	c := Counters{}
	query := `
		SELECT product_limit, edit_product_limit, delete_product_limit,
			edit_product_used, delete_product_used
		FROM vendors
		WHERE id = $1
	`
	err := s.db.QueryRowContext(ctx, query, vendorID).Scan(
		&c.ProductLimit,
		&c.EditProductLimit,
		&c.DeleteProductLimit,
		&c.EditProductUsed,
		&c.DeleteProductUsed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Counters{}, ErrVendorNotFound
	}
	return c, err
}

func (s *postgresCounterStore) CountVendorProducts(ctx context.Context, vendorID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE vendor_id = $1`, vendorID,
	).Scan(&count)
	return count, err
}

func (s *postgresCounterStore) IncrementEditUsed(ctx context.Context, vendorID uuid.UUID) error {
	return s.bump(ctx, vendorID, `UPDATE vendors SET edit_product_used = edit_product_used + 1, updated_at = now() WHERE id = $1`)
}

func (s *postgresCounterStore) IncrementDeleteUsed(ctx context.Context, vendorID uuid.UUID) error {
	return s.bump(ctx, vendorID, `UPDATE vendors SET delete_product_used = delete_product_used + 1, updated_at = now() WHERE id = $1`)
}

func (s *postgresCounterStore) ResetEditUsed(ctx context.Context, vendorID uuid.UUID) error {
	return s.bump(ctx, vendorID, `UPDATE vendors SET edit_product_used = 0, updated_at = now() WHERE id = $1`)
}

func (s *postgresCounterStore) ResetDeleteUsed(ctx context.Context, vendorID uuid.UUID) error {
	return s.bump(ctx, vendorID, `UPDATE vendors SET delete_product_used = 0, updated_at = now() WHERE id = $1`)
}

func (s *postgresCounterStore) bump(ctx context.Context, vendorID uuid.UUID, query string) error {
	res, err := s.db.ExecContext(ctx, query, vendorID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrVendorNotFound
	}
	return nil
}
