package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/fundgate/fundgate/internal/account"
)

type memoryStore struct {
	mu       sync.RWMutex
	balances map[account.ID]int64
}

// NewMemoryStore creates a concurrency-safe in-memory ledger store used in
// development mode and unit tests.
func NewMemoryStore() Store {
	return &memoryStore{balances: make(map[account.ID]int64)}
}

func (s *memoryStore) Balance(_ context.Context, acct account.ID) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	balance, ok := s.balances[acct]
	return balance, ok, nil
}

func (s *memoryStore) Credit(_ context.Context, acct account.ID, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[acct] += amount
	return s.balances[acct], nil
}

func (s *memoryStore) Debit(_ context.Context, acct account.ID, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, ok := s.balances[acct]
	if !ok {
		return 0, ErrNoFundsAllocated
	}
	if balance < amount {
		return 0, ErrInsufficientBalance
	}
	s.balances[acct] = balance - amount
	return s.balances[acct], nil
}

func (s *memoryStore) Move(_ context.Context, from, to account.ID, amount int64) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fromBalance, ok := s.balances[from]
	if !ok {
		return MoveResult{}, ErrNoFundsAllocated
	}
	if fromBalance < amount {
		return MoveResult{}, ErrInsufficientBalance
	}

	s.balances[from] = fromBalance - amount
	s.balances[to] += amount

	return MoveResult{FromBalance: s.balances[from], ToBalance: s.balances[to]}, nil
}

func (s *memoryStore) Entries(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]Entry, 0, len(s.balances))
	for acct, balance := range s.balances {
		entries = append(entries, Entry{Account: acct, Balance: balance})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Account < entries[j].Account })
	return entries, nil
}
