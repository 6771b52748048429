package util

import (
	"strings"
	"testing"
)

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID("txn")
		if !strings.HasPrefix(id, "txn_") {
			t.Fatalf("expected txn_ prefix, got %s", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id: %s", id)
		}
		seen[id] = true
	}
}

func TestNewIDNoPrefix(t *testing.T) {
	id := NewID("")
	if strings.Contains(id, "_") {
		t.Errorf("unprefixed id should have no separator: %s", id)
	}
	if len(id) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(id))
	}
}
