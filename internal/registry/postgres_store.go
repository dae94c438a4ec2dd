package registry

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fundgate/fundgate/internal/account"
)

// PostgresStore persists whitelist membership in PostgreSQL. Rows carry a
// serial id so insertion order and remove-first semantics survive restarts.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a Postgres-backed membership store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts a membership row.
func (s *PostgresStore) Append(ctx context.Context, acct account.ID) error {
	_, err := s.db.Exec(ctx, `INSERT INTO whitelist_members (account, added_at)
        VALUES ($1, now())`, acct.String())
	return err
}

// RemoveFirst deletes the earliest membership row for the account.
func (s *PostgresStore) RemoveFirst(ctx context.Context, acct account.ID) error {
	cmd, err := s.db.Exec(ctx, `DELETE FROM whitelist_members
        WHERE id = (SELECT min(id) FROM whitelist_members WHERE account = $1)`, acct.String())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotInWhitelist
	}
	return nil
}

// Contains reports whether at least one membership row exists.
func (s *PostgresStore) Contains(ctx context.Context, acct account.ID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM whitelist_members
        WHERE account = $1)`, acct.String()).Scan(&exists)
	return exists, err
}

// Members returns all membership rows in insertion order.
func (s *PostgresStore) Members(ctx context.Context) ([]account.ID, error) {
	rows, err := s.db.Query(ctx, `SELECT account FROM whitelist_members ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []account.ID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		members = append(members, account.ID(raw))
	}
	return members, rows.Err()
}
