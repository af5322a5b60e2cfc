package admin

import (
	"context"
	"database/sql"
)

type postgresAuditRepository struct {
	db *sql.DB
}

// NewPostgresAuditRepository creates a new PostgreSQL admin audit repository.
func NewPostgresAuditRepository(db *sql.DB) AuditRepository {
	return &postgresAuditRepository{db: db}
}

func (r *postgresAuditRepository) RecordAction(ctx context.Context, action *AdminAction) error {
	query := `INSERT INTO admin_actions (id, action, vendor_id, detail) VALUES ($1, $2, $3, NULLIF($4, ''))`
	_, err := r.db.ExecContext(ctx, query, action.ID, action.Action, action.VendorID, action.Detail)
	return err
}

func (r *postgresAuditRepository) ListActions(ctx context.Context, limit int) ([]*AdminAction, error) {
	query := `
		SELECT id, action, vendor_id, COALESCE(detail, ''), created_at
		FROM admin_actions
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*AdminAction
	for rows.Next() {
		a := &AdminAction{}
		if err := rows.Scan(&a.ID, &a.Action, &a.VendorID, &a.Detail, &a.CreatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
