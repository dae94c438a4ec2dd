package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fundgate/fundgate/internal/account"
	"github.com/fundgate/fundgate/internal/events"
)

// Service owns the set of accounts approved to deposit. Only the
// configured administrator may change membership; queries are open.
type Service struct {
	mu     sync.Mutex
	store  Store
	admin  account.ID
	sink   events.Sink
	logger *slog.Logger
}

// NewService builds a registry service gated on the given administrator account.
func NewService(store Store, admin account.ID, sink events.Sink, logger *slog.Logger) *Service {
	return &Service{store: store, admin: admin, sink: sink, logger: logger}
}

// Add appends an account to the whitelist. Duplicate entries are permitted;
// each Remove takes out a single occurrence.
func (s *Service) Add(ctx context.Context, caller, acct account.ID) error {
	if caller != s.admin {
		return ErrAdminOnly
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(ctx, acct)
}

// Remove deletes the earliest whitelist occurrence of the account.
func (s *Service) Remove(ctx context.Context, caller, acct account.ID) error {
	if caller != s.admin {
		return ErrAdminOnly
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(ctx, acct)
}

// BulkAdd appends each account in order. The batch is not transactional:
// on the first failure the accounts already appended stay applied. The
// returned count reports how many elements were applied.
func (s *Service) BulkAdd(ctx context.Context, caller account.ID, accts []account.ID) (int, error) {
	if caller != s.admin {
		return 0, ErrAdminOnly
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, acct := range accts {
		if err := s.add(ctx, acct); err != nil {
			return i, fmt.Errorf("add %s: %w", acct, err)
		}
	}
	return len(accts), nil
}

// BulkRemove removes each account in order with the same partial-on-failure
// semantics as BulkAdd.
func (s *Service) BulkRemove(ctx context.Context, caller account.ID, accts []account.ID) (int, error) {
	if caller != s.admin {
		return 0, ErrAdminOnly
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, acct := range accts {
		if err := s.remove(ctx, acct); err != nil {
			return i, fmt.Errorf("remove %s: %w", acct, err)
		}
	}
	return len(accts), nil
}

// IsWhitelisted reports whether the account may deposit.
func (s *Service) IsWhitelisted(ctx context.Context, acct account.ID) (bool, error) {
	return s.store.Contains(ctx, acct)
}

// Members returns the membership snapshot in insertion order.
func (s *Service) Members(ctx context.Context) ([]account.ID, error) {
	return s.store.Members(ctx)
}

func (s *Service) add(ctx context.Context, acct account.ID) error {
	if err := s.store.Append(ctx, acct); err != nil {
		return err
	}
	s.emit(ctx, events.WhitelistChanged(acct, true))
	return nil
}

func (s *Service) remove(ctx context.Context, acct account.ID) error {
	if err := s.store.RemoveFirst(ctx, acct); err != nil {
		return err
	}
	s.emit(ctx, events.WhitelistChanged(acct, false))
	return nil
}

// emit appends to the sink. Events are side-channel observability, so a
// sink failure never rolls back the mutation it describes.
func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Append(ctx, event); err != nil && s.logger != nil {
		s.logger.Error("append whitelist event", "kind", event.Kind, "account", event.Account.String(), "error", err)
	}
}
