package ledger

import "github.com/fundgate/fundgate/internal/account"

// SeedBalance is a test helper that sets an entry balance directly when
// using the in-memory store.
func SeedBalance(s Store, acct account.ID, amount int64) {
	if mem, ok := s.(*memoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.balances[acct] = amount
	}
}
