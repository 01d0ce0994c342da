package utils

import (
	"strings"
	"testing"
)

func TestPasswordHashVerify(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret-pass", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "s3cret-pass") {
		t.Fatalf("expected correct password to verify")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestHashPasswordClampsBadCost(t *testing.T) {
	t.Parallel()

	for _, cost := range []int{-1, 0, 99} {
		hash, err := HashPassword("s3cret-pass", cost)
		if err != nil {
			t.Fatalf("cost %d: %v", cost, err)
		}
		if !VerifyPassword(hash, "s3cret-pass") {
			t.Fatalf("cost %d: expected hash to verify", cost)
		}
	}
}

func TestHashRefreshRaw(t *testing.T) {
	t.Parallel()

	a := HashRefreshRaw("token-a")
	if a != HashRefreshRaw("token-a") {
		t.Fatalf("expected deterministic hash")
	}
	if a == HashRefreshRaw("token-b") {
		t.Fatalf("expected different tokens to hash differently")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestNewID(t *testing.T) {
	t.Parallel()

	id := NewID("plot")
	if !strings.HasPrefix(id, "plot_") {
		t.Fatalf("expected plot_ prefix, got %s", id)
	}
	if id == NewID("plot") {
		t.Fatalf("expected unique IDs")
	}
}
