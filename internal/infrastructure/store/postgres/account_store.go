package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"interview-hub/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	accountsPrimaryKey  = "accounts_pkey"
	accountsEmailUnique = "accounts_email_key"
)

// AccountStore implements domain.AccountStore for PostgreSQL.
type AccountStore struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewAccountStore creates a new PostgreSQL account store.
func NewAccountStore(db DatabaseIface, logger *slog.Logger) *AccountStore {
	return &AccountStore{
		db:     db,
		logger: logger.With("component", "account_store"),
	}
}

// GetAccount loads the account document by id.
func (s *AccountStore) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	const query = `SELECT id, name, email FROM accounts WHERE id = $1`

	var a domain.Account
	err := s.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return &a, nil
}

// CreateAccount inserts the account. The primary key makes the insert conditional.
func (s *AccountStore) CreateAccount(ctx context.Context, account domain.Account) error {
	const query = `INSERT INTO accounts (id, name, email) VALUES ($1, $2, $3)`

	_, err := s.db.Exec(ctx, query, account.ID, account.Name, account.Email)
	if err == nil {
		s.logger.DebugContext(ctx, "account inserted", "user_id", account.ID)
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case accountsEmailUnique:
			return domain.ErrDuplicateEmail
		case accountsPrimaryKey:
			return domain.ErrAccountExists
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}
