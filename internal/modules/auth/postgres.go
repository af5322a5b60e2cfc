package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type postgresAccountRepository struct {
	db *sql.DB
}

// NewPostgresAccountRepository creates a new PostgreSQL account repository.
func NewPostgresAccountRepository(db *sql.DB) AccountRepository {
	return &postgresAccountRepository{db: db}
}

func (r *postgresAccountRepository) CreateAccount(ctx context.Context, account *Account) error {
	query := `INSERT INTO accounts (id, email, password_hash) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, account.ID, account.Email, account.PasswordHash)
	return err
}

func (r *postgresAccountRepository) GetAccountByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return r.getOne(ctx, `SELECT id, email, password_hash, created_at, updated_at FROM accounts WHERE id = $1`, id)
}

func (r *postgresAccountRepository) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	return r.getOne(ctx, `SELECT id, email, password_hash, created_at, updated_at FROM accounts WHERE email = $1`, email)
}

func (r *postgresAccountRepository) getOne(ctx context.Context, query string, arg any) (*Account, error) {
	account := &Account{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *postgresAccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAccountNotFound
	}
	return nil
}
