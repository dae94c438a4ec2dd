package custody

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/fundgate/fundgate/internal/account"
)

// SimulatedCustodian models external wallets and the pooled custody
// account in memory. It backs development mode and unit tests.
type SimulatedCustodian struct {
	mu      sync.Mutex
	wallets map[account.ID]int64
	pooled  int64
}

// NewSimulated builds a custodian with no funded wallets.
func NewSimulated() *SimulatedCustodian {
	return &SimulatedCustodian{wallets: make(map[account.ID]int64)}
}

// Lock moves amount from the external wallet into the pool.
func (c *SimulatedCustodian) Lock(_ context.Context, from account.ID, amount int64) (Receipt, error) {
	if amount < 0 {
		return Receipt{}, fmt.Errorf("lock amount must be non-negative")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.wallets[from] < amount {
		return Receipt{}, ErrInsufficientExternalFunds
	}
	c.wallets[from] -= amount
	c.pooled += amount

	return Receipt{Reference: uuid.NewString(), Amount: amount}, nil
}

// Release moves amount from the pool to the external wallet.
func (c *SimulatedCustodian) Release(_ context.Context, to account.ID, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("release amount must be non-negative")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pooled < amount {
		return fmt.Errorf("custody pool underflow: pooled=%d release=%d", c.pooled, amount)
	}
	c.pooled -= amount
	c.wallets[to] += amount
	return nil
}

// WalletBalance reports the external wallet balance for an account.
func (c *SimulatedCustodian) WalletBalance(acct account.ID) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wallets[acct]
}

// Pooled reports the total value currently held in custody.
func (c *SimulatedCustodian) Pooled() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pooled
}
