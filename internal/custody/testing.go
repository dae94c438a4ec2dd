package custody

import "github.com/fundgate/fundgate/internal/account"

// SeedWallet is a test helper that funds an external wallet on the
// simulated custodian.
func SeedWallet(c Custodian, acct account.ID, amount int64) {
	if sim, ok := c.(*SimulatedCustodian); ok {
		sim.mu.Lock()
		defer sim.mu.Unlock()
		sim.wallets[acct] = amount
	}
}
