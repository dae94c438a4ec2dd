package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fundgate/fundgate/internal/account"
	"github.com/fundgate/fundgate/internal/custody"
	"github.com/fundgate/fundgate/internal/events"
)

// Whitelist answers whether an account is approved to deposit. Satisfied
// by *registry.Service.
type Whitelist interface {
	IsWhitelisted(ctx context.Context, acct account.ID) (bool, error)
}

// Service coordinates balance mutations with the whitelist, the custody
// collaborator and the event sink. Deposits are whitelist-gated; withdraw
// and transfer are administrator-only and deliberately do NOT re-check the
// whitelist, so funds of a since-removed depositor stay reachable.
type Service struct {
	mu        sync.Mutex
	store     Store
	whitelist Whitelist
	custodian custody.Custodian
	admin     account.ID
	sink      events.Sink
	logger    *slog.Logger
}

// NewService builds a ledger service.
func NewService(store Store, whitelist Whitelist, custodian custody.Custodian, admin account.ID, sink events.Sink, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		whitelist: whitelist,
		custodian: custodian,
		admin:     admin,
		sink:      sink,
		logger:    logger,
	}
}

// Deposit pulls amount from the depositor's external wallet into custody
// and credits the depositor's entry, creating it when absent. The custody
// lock runs before any ledger mutation so a failed lock leaves the ledger
// untouched. A zero amount is permitted and behaves as a recorded no-op.
func (s *Service) Deposit(ctx context.Context, depositor account.ID, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("amount must be non-negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	whitelisted, err := s.whitelist.IsWhitelisted(ctx, depositor)
	if err != nil {
		return 0, err
	}
	if !whitelisted {
		return 0, ErrNotWhitelisted
	}

	receipt, err := s.custodian.Lock(ctx, depositor, amount)
	if err != nil {
		return 0, err
	}

	balance, err := s.store.Credit(ctx, depositor, amount)
	if err != nil {
		// Undo the custody lock so value is not stranded in the pool.
		if rerr := s.custodian.Release(ctx, depositor, receipt.Amount); rerr != nil && s.logger != nil {
			s.logger.Error("release custody after failed credit", "account", depositor.String(), "error", rerr)
		}
		return 0, err
	}

	s.emit(ctx, events.Deposited(depositor, amount))
	return balance, nil
}

// Withdraw debits the target's entry and releases the amount from custody
// to the target's external wallet. Administrator only.
func (s *Service) Withdraw(ctx context.Context, caller, target account.ID, amount int64) (int64, error) {
	if caller != s.admin {
		return 0, ErrAdminOnly
	}
	if amount < 0 {
		return 0, fmt.Errorf("amount must be non-negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance, err := s.store.Debit(ctx, target, amount)
	if err != nil {
		return 0, err
	}

	if err := s.custodian.Release(ctx, target, amount); err != nil {
		// The debit and release form one unit: put the balance back.
		if _, cerr := s.store.Credit(ctx, target, amount); cerr != nil && s.logger != nil {
			s.logger.Error("restore balance after failed release", "account", target.String(), "error", cerr)
		}
		return 0, err
	}

	s.emit(ctx, events.Withdrawn(target, amount))
	return balance, nil
}

// Transfer re-titles custodied funds between two entries. No external value
// moves; the destination entry is created lazily. Administrator only.
func (s *Service) Transfer(ctx context.Context, caller, from, to account.ID, amount int64) (MoveResult, error) {
	if caller != s.admin {
		return MoveResult{}, ErrAdminOnly
	}
	if amount < 0 {
		return MoveResult{}, fmt.Errorf("amount must be non-negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.store.Move(ctx, from, to, amount)
	if err != nil {
		return MoveResult{}, err
	}

	// Event order is part of the contract: the debit fact precedes the credit fact.
	s.emit(ctx, events.Withdrawn(from, amount))
	s.emit(ctx, events.Deposited(to, amount))
	return result, nil
}

// GetBalance returns the entry balance, or 0 when the account has none.
func (s *Service) GetBalance(ctx context.Context, acct account.ID) (int64, error) {
	balance, ok, err := s.store.Balance(ctx, acct)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return balance, nil
}

// Entries returns a snapshot of every ledger entry.
func (s *Service) Entries(ctx context.Context) ([]Entry, error) {
	return s.store.Entries(ctx)
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Append(ctx, event); err != nil && s.logger != nil {
		s.logger.Error("append ledger event", "kind", event.Kind, "account", event.Account.String(), "error", err)
	}
}
