package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fundgate/fundgate/internal/account"
)

// PostgresStore persists ledger entries in PostgreSQL using row-locked
// transactions for debits and moves.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed ledger store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Balance returns the entry balance and whether the entry exists.
func (s *PostgresStore) Balance(ctx context.Context, acct account.ID) (int64, bool, error) {
	var balance int64
	err := s.db.QueryRow(ctx, `SELECT balance FROM fund_balances WHERE account = $1`, acct.String()).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}

// Credit adds amount to the entry, creating it when absent.
func (s *PostgresStore) Credit(ctx context.Context, acct account.ID, amount int64) (int64, error) {
	var balance int64
	err := s.db.QueryRow(ctx, `INSERT INTO fund_balances (account, balance, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (account) DO UPDATE
        SET balance = fund_balances.balance + EXCLUDED.balance, updated_at = now()
        RETURNING balance`, acct.String(), amount).Scan(&balance)
	return balance, err
}

// Debit subtracts amount from the entry after checking it covers the amount.
func (s *PostgresStore) Debit(ctx context.Context, acct account.ID, amount int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	balance, err := lockedBalance(ctx, tx, acct)
	if err != nil {
		return 0, err
	}
	if balance < amount {
		return 0, ErrInsufficientBalance
	}

	var updated int64
	if err := tx.QueryRow(ctx, `UPDATE fund_balances SET balance = balance - $2, updated_at = now()
        WHERE account = $1 RETURNING balance`, acct.String(), amount).Scan(&updated); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return updated, nil
}

// Move atomically debits from and credits to inside one transaction.
func (s *PostgresStore) Move(ctx context.Context, from, to account.ID, amount int64) (MoveResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return MoveResult{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	fromBalance, err := lockedBalance(ctx, tx, from)
	if err != nil {
		return MoveResult{}, err
	}
	if fromBalance < amount {
		return MoveResult{}, ErrInsufficientBalance
	}

	var updatedFrom int64
	if err := tx.QueryRow(ctx, `UPDATE fund_balances SET balance = balance - $2, updated_at = now()
        WHERE account = $1 RETURNING balance`, from.String(), amount).Scan(&updatedFrom); err != nil {
		return MoveResult{}, err
	}

	var updatedTo int64
	if err := tx.QueryRow(ctx, `INSERT INTO fund_balances (account, balance, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (account) DO UPDATE
        SET balance = fund_balances.balance + EXCLUDED.balance, updated_at = now()
        RETURNING balance`, to.String(), amount).Scan(&updatedTo); err != nil {
		return MoveResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return MoveResult{}, err
	}
	return MoveResult{FromBalance: updatedFrom, ToBalance: updatedTo}, nil
}

// Entries returns a snapshot of all ledger entries.
func (s *PostgresStore) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `SELECT account, balance FROM fund_balances ORDER BY account`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var raw string
		if err := rows.Scan(&raw, &entry.Balance); err != nil {
			return nil, err
		}
		entry.Account = account.ID(raw)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func lockedBalance(ctx context.Context, tx pgx.Tx, acct account.ID) (int64, error) {
	var balance int64
	err := tx.QueryRow(ctx, `SELECT balance FROM fund_balances WHERE account = $1 FOR UPDATE`, acct.String()).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNoFundsAllocated
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}
