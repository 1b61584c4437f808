package util

import "testing"

func TestHashNamespaceStable(t *testing.T) {
	a := HashNamespace("acct-1")
	b := HashNamespace("acct-1")
	if a != b {
		t.Fatalf("expected stable hash, got %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == HashNamespace("acct-2") {
		t.Fatalf("expected distinct namespaces to hash differently")
	}
}
