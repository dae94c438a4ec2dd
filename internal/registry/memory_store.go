package registry

import (
	"context"
	"sync"

	"github.com/fundgate/fundgate/internal/account"
)

type memoryStore struct {
	mu      sync.RWMutex
	ordered []account.ID
	counts  map[account.ID]int
}

// NewMemoryStore builds an in-memory membership store. The counts index
// keeps Contains O(1) while ordered preserves insertion order.
func NewMemoryStore() Store {
	return &memoryStore{counts: make(map[account.ID]int)}
}

func (s *memoryStore) Append(_ context.Context, acct account.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ordered = append(s.ordered, acct)
	s.counts[acct]++
	return nil
}

func (s *memoryStore) RemoveFirst(_ context.Context, acct account.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts[acct] == 0 {
		return ErrNotInWhitelist
	}
	for i, member := range s.ordered {
		if member == acct {
			s.ordered = append(s.ordered[:i], s.ordered[i+1:]...)
			break
		}
	}
	s.counts[acct]--
	if s.counts[acct] == 0 {
		delete(s.counts, acct)
	}
	return nil
}

func (s *memoryStore) Contains(_ context.Context, acct account.ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[acct] > 0, nil
}

func (s *memoryStore) Members(_ context.Context) ([]account.ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]account.ID, len(s.ordered))
	copy(out, s.ordered)
	return out, nil
}
