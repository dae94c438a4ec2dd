package account

import (
	"errors"
	"strings"
)

// MaxIDLength bounds account identifiers so storage keys stay sane.
const MaxIDLength = 128

// ErrInvalidID indicates a malformed account identifier.
var ErrInvalidID = errors.New("invalid account id")

// ID is an opaque account identifier. The service never interprets it
// beyond equality; it is the join key between whitelist membership and
// ledger balances.
type ID string

// Parse validates and normalizes a raw account identifier.
func Parse(raw string) (ID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || len(trimmed) > MaxIDLength {
		return "", ErrInvalidID
	}
	return ID(trimmed), nil
}

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}
