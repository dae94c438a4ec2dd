package account

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	id, err := Parse("  wallet-42  ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "wallet-42" {
		t.Fatalf("expected trimmed id, got %q", id)
	}

	if _, err := Parse(""); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID for empty input, got %v", err)
	}
	if _, err := Parse("   "); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID for blank input, got %v", err)
	}
	if _, err := Parse(strings.Repeat("x", MaxIDLength+1)); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID for oversized input, got %v", err)
	}
}
