package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"janggi/internal/janggi"
)

func testRecord(id string) Record {
	return Record{
		ID:        id,
		Position:  janggi.NewInitialPosition().Encode(),
		Status:    janggi.StatusInProgress,
		Ply:       0,
		UpdatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	want := testRecord("g1")
	if err := m.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := m.Get(ctx, "g1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Fatalf("Get = %+v, want %+v", got, want)
	}

	want.Ply = 7
	if err := m.Save(ctx, want); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	got, err = m.Get(ctx, "g1")
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if got.Ply != 7 {
		t.Fatalf("Ply after overwrite = %d, want 7", got.Ply)
	}
}

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory()
	if _, err := m.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryListAndDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for _, id := range []string{"a", "b"} {
		if err := m.Save(ctx, testRecord(id)); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}
	recs, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("List len = %d, want 2", len(recs))
	}

	if err := m.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := m.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete twice should be silent, got %v", err)
	}
	recs, err = m.List(ctx)
	if err != nil {
		t.Fatalf("List after delete: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "b" {
		t.Fatalf("List after delete = %+v, want only b", recs)
	}
}
