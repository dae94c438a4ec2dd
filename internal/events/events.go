package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fundgate/fundgate/internal/account"
)

const (
	// KindWhitelistChanged records an account entering or leaving the whitelist.
	KindWhitelistChanged = "whitelist_changed"
	// KindDeposited records funds credited to a ledger entry.
	KindDeposited = "deposited"
	// KindWithdrawn records funds debited from a ledger entry.
	KindWithdrawn = "withdrawn"
)

// Event is an immutable, append-only fact describing one completed mutation.
// The core never reads events back; they exist for external observers.
type Event struct {
	ID         string
	Kind       string
	Account    account.ID
	Amount     int64
	Added      bool
	OccurredAt time.Time
}

// Sink receives events in the order the mutations completed.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// WhitelistChanged builds a whitelist membership event.
func WhitelistChanged(acct account.ID, added bool) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       KindWhitelistChanged,
		Account:    acct,
		Added:      added,
		OccurredAt: time.Now().UTC(),
	}
}

// Deposited builds a credit event.
func Deposited(acct account.ID, amount int64) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       KindDeposited,
		Account:    acct,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	}
}

// Withdrawn builds a debit event.
func Withdrawn(acct account.ID, amount int64) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       KindWithdrawn,
		Account:    acct,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	}
}
