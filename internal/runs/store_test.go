package runs

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return store
}

func TestRecordAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := Run{
		ID:             "run-1",
		CreatedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ScriptPath:     "/tmp/script.txt",
		TranscriptPath: "/tmp/words.json",
		TimelinePath:   "/tmp/timeline.json",
		Matched:        3,
		Partial:        1,
		Unmatched:      1,
		Status:         StatusCompleted,
	}
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Matched != 3 || got.Partial != 1 || got.Unmatched != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/1/1", got.Matched, got.Partial, got.Unmatched)
	}
	if got.Status != StatusCompleted {
		t.Errorf("status = %q, want %q", got.Status, StatusCompleted)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestRecordRequiresID(t *testing.T) {
	store := openTestStore(t)
	if err := store.Record(context.Background(), Run{}); err == nil {
		t.Error("Record() expected error for missing id")
	}
}

func TestRecordReplacesExisting(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := Run{ID: "run-1", Status: StatusFailed, ErrorMessage: "boom"}
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	run.Status = StatusCompleted
	run.ErrorMessage = ""
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record() replace error = %v", err)
	}

	got, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != StatusCompleted || got.ErrorMessage != "" {
		t.Errorf("replaced run = %q/%q, want completed with empty message", got.Status, got.ErrorMessage)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := Run{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Status:    StatusCompleted,
		}
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record(%s) error = %v", id, err)
		}
	}

	got, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() = %d runs, want 2", len(got))
	}
	if got[0].ID != "run-c" || got[1].ID != "run-b" {
		t.Errorf("List() order = %s, %s, want run-c, run-b", got[0].ID, got[1].ID)
	}
}

func TestListEmpty(t *testing.T) {
	store := openTestStore(t)
	got, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() = %d runs, want 0", len(got))
	}
}
