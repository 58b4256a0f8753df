package audit

import (
	"context"
	"testing"

	"call-console/pkg/logger"
)

func TestService_AppendRequiresType(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if err := svc.Append(context.Background(), Event{CallID: "c1"}); err != ErrInvalidEvent {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestService_AppendFillsIdentity(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	ctx := logger.WithRequestID(context.Background(), "rid-7")
	if err := svc.LogQuickCall(ctx, "c1", "+33612345678", "professional-prospecting"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	evs := repo.Events()
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	e := evs[0]
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at to be set")
	}
	if e.RequestID != "rid-7" {
		t.Fatalf("expected request id from context, got %q", e.RequestID)
	}
	if e.Metadata != `{"phoneNumber":"+33612345678","scenario":"professional-prospecting"}` {
		t.Fatalf("unexpected metadata %s", e.Metadata)
	}
}

func TestService_RecentNewestFirst(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	for _, id := range []string{"l1", "l2", "l3"} {
		if err := svc.Record(ctx, EventCallListStarted, "", id, "call list started", nil); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	out, err := svc.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 || out[0].CallListID != "l3" || out[1].CallListID != "l2" {
		t.Fatalf("unexpected order: %+v", out)
	}
	if out[0].Metadata != "" {
		t.Fatalf("expected no metadata")
	}
}

func TestNewPostgresRepo_RequiresDB(t *testing.T) {
	if _, err := NewPostgresRepo(nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}

func TestMemoryRepo_EvictsOldest(t *testing.T) {
	repo := NewMemoryRepoWithCapacity(2)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		if err := repo.Append(ctx, Event{Type: EventCallDeleted, CallID: id}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	evs := repo.Events()
	if len(evs) != 2 || evs[0].CallID != "b" || evs[1].CallID != "c" {
		t.Fatalf("expected oldest evicted, got %+v", evs)
	}
}
