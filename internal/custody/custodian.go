package custody

import (
	"context"
	"errors"

	"github.com/fundgate/fundgate/internal/account"
)

// ErrInsufficientExternalFunds occurs when a depositor's external wallet
// cannot cover the amount being locked into custody.
var ErrInsufficientExternalFunds = errors.New("insufficient external funds")

// Receipt proves a completed custody lock. It is issued once per lock and
// is never reused; the reference ties the lock to the emitted event trail.
type Receipt struct {
	Reference string
	Amount    int64
}

// Custodian moves real value between external wallets and the pooled
// custody account backing the ledger. The ledger treats it as
// capability-scoped: a lock either completes fully or leaves the external
// wallet untouched.
type Custodian interface {
	// Lock pulls amount from the external wallet into pooled custody.
	Lock(ctx context.Context, from account.ID, amount int64) (Receipt, error)
	// Release pays amount out of pooled custody to the external wallet.
	Release(ctx context.Context, to account.ID, amount int64) error
}
