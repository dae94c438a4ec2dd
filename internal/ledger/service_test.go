package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/fundgate/fundgate/internal/account"
	"github.com/fundgate/fundgate/internal/custody"
	"github.com/fundgate/fundgate/internal/events"
	"github.com/fundgate/fundgate/internal/logging"
	"github.com/fundgate/fundgate/internal/registry"
)

const admin = account.ID("admin-1")

type testEnv struct {
	ledger    *Service
	registry  *registry.Service
	custodian *custody.SimulatedCustodian
	sink      *events.MemorySink
}

func newTestEnv() *testEnv {
	sink := events.NewMemorySink()
	logger := logging.Discard()
	reg := registry.NewService(registry.NewMemoryStore(), admin, sink, logger)
	custodian := custody.NewSimulated()
	svc := NewService(NewMemoryStore(), reg, custodian, admin, sink, logger)
	return &testEnv{ledger: svc, registry: reg, custodian: custodian, sink: sink}
}

func (e *testEnv) whitelist(t *testing.T, acct account.ID) {
	t.Helper()
	if err := e.registry.Add(context.Background(), admin, acct); err != nil {
		t.Fatalf("whitelist %s: %v", acct, err)
	}
}

func (e *testEnv) totalBalance(t *testing.T) int64 {
	t.Helper()
	entries, err := e.ledger.Entries(context.Background())
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	var total int64
	for _, entry := range entries {
		total += entry.Balance
	}
	return total
}

func TestDepositWithdrawTransferScenario(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.whitelist(t, "A")
	custody.SeedWallet(env.custodian, "A", 100)

	balance, err := env.ledger.Deposit(ctx, "A", 100)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if balance != 100 {
		t.Fatalf("expected balance 100, got %d", balance)
	}
	if env.custodian.WalletBalance("A") != 0 {
		t.Fatalf("expected external wallet drained, got %d", env.custodian.WalletBalance("A"))
	}
	if env.custodian.Pooled() != 100 {
		t.Fatalf("expected 100 pooled, got %d", env.custodian.Pooled())
	}

	balance, err = env.ledger.Withdraw(ctx, admin, "A", 25)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if balance != 75 {
		t.Fatalf("expected balance 75, got %d", balance)
	}
	if env.custodian.WalletBalance("A") != 25 {
		t.Fatalf("expected 25 released to wallet, got %d", env.custodian.WalletBalance("A"))
	}

	// B has never been seen; the transfer creates its entry lazily.
	result, err := env.ledger.Transfer(ctx, admin, "A", "B", 50)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if result.FromBalance != 25 || result.ToBalance != 50 {
		t.Fatalf("unexpected transfer result: %+v", result)
	}

	if got, _ := env.ledger.GetBalance(ctx, "A"); got != 25 {
		t.Fatalf("expected A=25, got %d", got)
	}
	if got, _ := env.ledger.GetBalance(ctx, "B"); got != 50 {
		t.Fatalf("expected B=50, got %d", got)
	}

	// Transfer is a pure re-titling: pooled custody is untouched.
	if env.custodian.Pooled() != 75 {
		t.Fatalf("expected 75 pooled, got %d", env.custodian.Pooled())
	}
	if total := env.totalBalance(t); total != 75 {
		t.Fatalf("expected total ledger balance 75, got %d", total)
	}
}

func TestDepositRequiresWhitelist(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	custody.SeedWallet(env.custodian, "C", 50)

	_, err := env.ledger.Deposit(ctx, "C", 10)
	if !errors.Is(err, ErrNotWhitelisted) {
		t.Fatalf("expected ErrNotWhitelisted, got %v", err)
	}

	// Nothing moved: wallet intact, no entry, no events.
	if env.custodian.WalletBalance("C") != 50 {
		t.Fatalf("external wallet changed on rejected deposit")
	}
	if got, _ := env.ledger.GetBalance(ctx, "C"); got != 0 {
		t.Fatalf("expected no balance, got %d", got)
	}
	if len(env.sink.Events()) != 0 {
		t.Fatalf("expected no events, got %d", len(env.sink.Events()))
	}
}

func TestDepositInsufficientExternalFunds(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.whitelist(t, "A")
	custody.SeedWallet(env.custodian, "A", 5)

	_, err := env.ledger.Deposit(ctx, "A", 10)
	if !errors.Is(err, custody.ErrInsufficientExternalFunds) {
		t.Fatalf("expected ErrInsufficientExternalFunds, got %v", err)
	}
	if got, _ := env.ledger.GetBalance(ctx, "A"); got != 0 {
		t.Fatalf("ledger mutated despite failed custody lock: %d", got)
	}
}

func TestWhitelistRemovalDoesNotFreezeFunds(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.whitelist(t, "A")
	custody.SeedWallet(env.custodian, "A", 100)
	if _, err := env.ledger.Deposit(ctx, "A", 100); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	if err := env.registry.Remove(ctx, admin, "A"); err != nil {
		t.Fatalf("remove from whitelist: %v", err)
	}

	// Withdraw and transfer never re-check membership.
	if _, err := env.ledger.Withdraw(ctx, admin, "A", 40); err != nil {
		t.Fatalf("withdraw after removal: %v", err)
	}
	if _, err := env.ledger.Transfer(ctx, admin, "A", "B", 60); err != nil {
		t.Fatalf("transfer after removal: %v", err)
	}

	// But a fresh deposit is rejected again.
	custody.SeedWallet(env.custodian, "A", 10)
	if _, err := env.ledger.Deposit(ctx, "A", 10); !errors.Is(err, ErrNotWhitelisted) {
		t.Fatalf("expected ErrNotWhitelisted after removal, got %v", err)
	}
}

func TestWithdrawUnknownAccount(t *testing.T) {
	env := newTestEnv()

	_, err := env.ledger.Withdraw(context.Background(), admin, "D", 10)
	if !errors.Is(err, ErrNoFundsAllocated) {
		t.Fatalf("expected ErrNoFundsAllocated, got %v", err)
	}
}

func TestWithdrawInsufficientBalance(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	SeedBalance(env.ledger.store, "A", 30)

	_, err := env.ledger.Withdraw(ctx, admin, "A", 31)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if got, _ := env.ledger.GetBalance(ctx, "A"); got != 30 {
		t.Fatalf("balance changed on rejected withdraw: %d", got)
	}
}

func TestAdminGating(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	intruder := account.ID("mallory")

	SeedBalance(env.ledger.store, "A", 100)

	if _, err := env.ledger.Withdraw(ctx, intruder, "A", 10); !errors.Is(err, ErrAdminOnly) {
		t.Fatalf("expected ErrAdminOnly for withdraw, got %v", err)
	}
	if _, err := env.ledger.Transfer(ctx, intruder, "A", "B", 10); !errors.Is(err, ErrAdminOnly) {
		t.Fatalf("expected ErrAdminOnly for transfer, got %v", err)
	}
	if got, _ := env.ledger.GetBalance(ctx, "A"); got != 100 {
		t.Fatalf("balance changed on rejected calls: %d", got)
	}
}

func TestTransferEmitsWithdrawnThenDeposited(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	SeedBalance(env.ledger.store, "A", 100)

	if _, err := env.ledger.Transfer(ctx, admin, "A", "B", 40); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	evts := env.sink.Events()
	if len(evts) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evts))
	}
	if evts[0].Kind != events.KindWithdrawn || evts[0].Account != "A" || evts[0].Amount != 40 {
		t.Fatalf("unexpected first event: %+v", evts[0])
	}
	if evts[1].Kind != events.KindDeposited || evts[1].Account != "B" || evts[1].Amount != 40 {
		t.Fatalf("unexpected second event: %+v", evts[1])
	}
}

func TestZeroDepositIsPermitted(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.whitelist(t, "A")

	balance, err := env.ledger.Deposit(ctx, "A", 0)
	if err != nil {
		t.Fatalf("zero deposit: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected balance 0, got %d", balance)
	}

	// The entry now exists at zero, a live terminal state.
	entries, err := env.ledger.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Account != "A" || entries[0].Balance != 0 {
		t.Fatalf("expected zero-balance entry for A, got %+v", entries)
	}
}

func TestGetBalanceUnknownAccount(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := env.ledger.GetBalance(ctx, "nobody")
		if err != nil {
			t.Fatalf("getBalance: %v", err)
		}
		if got != 0 {
			t.Fatalf("expected 0 for unknown account, got %d", got)
		}
	}
}

func TestNegativeAmountsRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.whitelist(t, "A")
	SeedBalance(env.ledger.store, "A", 100)

	if _, err := env.ledger.Deposit(ctx, "A", -1); err == nil {
		t.Fatalf("expected error for negative deposit")
	}
	if _, err := env.ledger.Withdraw(ctx, admin, "A", -1); err == nil {
		t.Fatalf("expected error for negative withdraw")
	}
	if _, err := env.ledger.Transfer(ctx, admin, "A", "B", -1); err == nil {
		t.Fatalf("expected error for negative transfer")
	}
	if got, _ := env.ledger.GetBalance(ctx, "A"); got != 100 {
		t.Fatalf("balance changed on rejected amounts: %d", got)
	}
}
