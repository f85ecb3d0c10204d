package middleware

import (
	"context"
	"testing"
)

func TestRequestHashDeterministic(t *testing.T) {
	first := RequestHash([]byte(`{"target":"submitted"}`))
	second := RequestHash([]byte(`{"target":"submitted"}`))
	other := RequestHash([]byte(`{"target":"complete"}`))
	if first != second {
		t.Fatal("equal payloads must hash equally")
	}
	if first == other {
		t.Fatal("different payloads must hash differently")
	}
	if len(first) != 64 {
		t.Fatalf("expected hex sha256, got %d chars", len(first))
	}
}

func TestIdempotencyStoreNilSafe(t *testing.T) {
	var store *IdempotencyStore
	if _, found, err := store.Check(context.Background(), "u1", "appraisal.transition", "key", "hash"); err != nil || found {
		t.Fatalf("nil store Check: found=%v err=%v", found, err)
	}
	if err := store.Save(context.Background(), "u1", "appraisal.transition", "key", "hash", nil); err != nil {
		t.Fatalf("nil store Save: %v", err)
	}
}
