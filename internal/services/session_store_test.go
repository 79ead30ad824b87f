package services

import (
	"testing"
	"time"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	a := store.Create("admin", now, time.Minute)
	b := store.Create("admin", now, 0)
	if a.ID == b.ID {
		t.Fatalf("session ids must be unique")
	}

	if _, ok := store.Get(a.ID, now.Add(30*time.Second)); !ok {
		t.Fatalf("live session not found")
	}
	if _, ok := store.Get(a.ID, now.Add(2*time.Minute)); ok {
		t.Fatalf("expired session returned")
	}
	if store.Len() != 1 {
		t.Fatalf("expired session must be dropped, len=%d", store.Len())
	}
	if _, ok := store.Get(b.ID, now.Add(1000*time.Hour)); !ok {
		t.Fatalf("session without ttl must not expire")
	}

	store.Delete(b.ID)
	store.Delete(b.ID)
	if store.Len() != 0 {
		t.Fatalf("store not empty after delete")
	}
}
