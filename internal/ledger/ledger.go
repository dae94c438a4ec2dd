package ledger

import (
	"context"
	"errors"

	"github.com/fundgate/fundgate/internal/account"
)

var (
	// ErrAdminOnly occurs when a non-administrator attempts a withdrawal or transfer.
	ErrAdminOnly = errors.New("administrator only")

	// ErrNotWhitelisted occurs when a deposit comes from an account absent
	// from the whitelist.
	ErrNotWhitelisted = errors.New("account not whitelisted")

	// ErrNoFundsAllocated indicates the referenced account has no ledger entry.
	ErrNoFundsAllocated = errors.New("no funds allocated for account")

	// ErrInsufficientBalance occurs when a debit exceeds the recorded balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Entry is a per-account record of custodied balance.
type Entry struct {
	Account account.ID
	Balance int64
}

// MoveResult captures both balances after an internal transfer.
type MoveResult struct {
	FromBalance int64
	ToBalance   int64
}

// Store persists ledger entries. Entries are created lazily on first
// credit and never deleted; a zero balance is a live state. Debit and
// Move are atomic check-and-mutate primitives so no backend can drive a
// balance negative.
type Store interface {
	Balance(ctx context.Context, acct account.ID) (int64, bool, error)
	Credit(ctx context.Context, acct account.ID, amount int64) (int64, error)
	Debit(ctx context.Context, acct account.ID, amount int64) (int64, error)
	Move(ctx context.Context, from, to account.ID, amount int64) (MoveResult, error)
	Entries(ctx context.Context) ([]Entry, error)
}
