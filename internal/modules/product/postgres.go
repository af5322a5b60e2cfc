package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const productColumns = `
	id, vendor_id, vendor_name, COALESCE(vendor_logo_url, ''), COALESCE(vendor_location, ''),
	name, COALESCE(description, ''), price, currency, COALESCE(image_url, ''), COALESCE(category, ''),
	created_at, updated_at
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	p := &Product{}
	err := row.Scan(
		&p.ID,
		&p.VendorID,
		&p.VendorName,
		&p.VendorLogoURL,
		&p.VendorLocation,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Currency,
		&p.ImageURL,
		&p.Category,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (
			id, vendor_id, vendor_name, vendor_logo_url, vendor_location,
			name, description, price, currency, image_url, category
		)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, NULLIF($7, ''), $8, $9, NULLIF($10, ''), NULLIF($11, ''))
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.VendorID, p.VendorName, p.VendorLogoURL, p.VendorLocation,
		p.Name, p.Description, p.Price, p.Currency, p.ImageURL, p.Category,
	)
	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *postgresRepository) List(ctx context.Context) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	return r.queryMany(ctx, query)
}

func (r *postgresRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE vendor_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, vendorID)
}

func (r *postgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update rewrites the mutable product fields along with the vendor snapshot.
// vendor_id itself is never part of the SET clause.
func (r *postgresRepository) Update(ctx context.Context, p *Product) error {
	query := `
		UPDATE products
		SET vendor_name = $2, vendor_logo_url = NULLIF($3, ''), vendor_location = NULLIF($4, ''),
			name = $5, description = NULLIF($6, ''), price = $7, currency = $8,
			image_url = NULLIF($9, ''), category = NULLIF($10, ''), updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		p.ID, p.VendorName, p.VendorLogoURL, p.VendorLocation,
		p.Name, p.Description, p.Price, p.Currency, p.ImageURL, p.Category,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) RestampVendorProducts(ctx context.Context, vendorID uuid.UUID, name, logoURL, location string) (int, error) {
	query := `
		UPDATE products
		SET vendor_name = $2, vendor_logo_url = NULLIF($3, ''), vendor_location = NULLIF($4, ''), updated_at = now()
		WHERE vendor_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, vendorID, name, logoURL, location)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
