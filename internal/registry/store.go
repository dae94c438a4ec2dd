package registry

import (
	"context"
	"errors"

	"github.com/fundgate/fundgate/internal/account"
)

var (
	// ErrAdminOnly occurs when a non-administrator attempts to change the whitelist.
	ErrAdminOnly = errors.New("administrator only")

	// ErrNotInWhitelist indicates a removal for an account that is not a member.
	ErrNotInWhitelist = errors.New("account not in whitelist")
)

// Store persists whitelist membership. Membership is an ordered multiset:
// duplicate appends are permitted and removal takes out the earliest
// matching occurrence.
type Store interface {
	Append(ctx context.Context, acct account.ID) error
	RemoveFirst(ctx context.Context, acct account.ID) error
	Contains(ctx context.Context, acct account.ID) (bool, error)
	Members(ctx context.Context) ([]account.ID, error)
}
