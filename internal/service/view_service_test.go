package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wakja/wakja-be/internal/db"
	"github.com/wakja/wakja-be/internal/testutil"
)

type stubGate struct {
	allowed bool
	err     error
	calls   int
	forgot  []string
}

func (g *stubGate) Allow(context.Context, uint, string) (bool, error) {
	g.calls++
	return g.allowed, g.err
}

func (g *stubGate) Forget(_ context.Context, _ uint, actorKey string) error {
	g.forgot = append(g.forgot, actorKey)
	return nil
}

func TestViewService_CooldownCountsOncePerWindow(t *testing.T) {
	gdb := testutil.NewDB(t)
	author := testutil.CreateUser(t, gdb, "writer@wakja.app", "writer")
	post := testutil.CreatePost(t, gdb, author.ID, "본문")

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	now := base
	svc := NewViewService(gdb).WithClock(func() time.Time { return now })
	ctx := context.Background()

	views, counted, err := svc.RecordView(ctx, post.ID, "anon:visitor-1")
	if err != nil {
		t.Fatalf("first view failed: %v", err)
	}
	if views != 1 || !counted {
		t.Fatalf("expected first view to count, got views=%d counted=%v", views, counted)
	}

	now = base.Add(5 * time.Hour)
	views, counted, err = svc.RecordView(ctx, post.ID, "anon:visitor-1")
	if err != nil {
		t.Fatalf("repeat view failed: %v", err)
	}
	if views != 1 || counted {
		t.Fatalf("expected repeat inside window to be ignored, got views=%d counted=%v", views, counted)
	}

	views, _, err = svc.RecordView(ctx, post.ID, "user:someone")
	if err != nil {
		t.Fatalf("second actor failed: %v", err)
	}
	if views != 2 {
		t.Fatalf("expected another actor to count, got %d", views)
	}

	now = base.Add(6*time.Hour + time.Minute)
	views, counted, err = svc.RecordView(ctx, post.ID, "anon:visitor-1")
	if err != nil {
		t.Fatalf("view after window failed: %v", err)
	}
	if views != 3 || !counted {
		t.Fatalf("expected view after window to count, got views=%d counted=%v", views, counted)
	}

	var record db.PostView
	if err := gdb.Where("post_id = ? AND user_identifier = ?", post.ID, "anon:visitor-1").First(&record).Error; err != nil {
		t.Fatalf("load view record: %v", err)
	}
	if !record.LastViewedAt.Equal(now) {
		t.Fatalf("expected last_viewed_at %v, got %v", now, record.LastViewedAt)
	}
}

func TestViewService_GateShortCircuits(t *testing.T) {
	gdb := testutil.NewDB(t)
	author := testutil.CreateUser(t, gdb, "writer@wakja.app", "writer")
	post := testutil.CreatePost(t, gdb, author.ID, "본문")
	ctx := context.Background()

	gate := &stubGate{allowed: false}
	svc := NewViewService(gdb).WithGate(gate)

	views, counted, err := svc.RecordView(ctx, post.ID, "anon:visitor-1")
	if err != nil {
		t.Fatalf("record view: %v", err)
	}
	if counted || views != 0 {
		t.Fatalf("expected gate to suppress the view, got views=%d counted=%v", views, counted)
	}

	var rows int64
	gdb.Model(&db.PostView{}).Count(&rows)
	if rows != 0 {
		t.Fatalf("expected no view rows when gate denies, got %d", rows)
	}

	gate.allowed, gate.err = false, errors.New("redis down")
	views, counted, err = svc.RecordView(ctx, post.ID, "anon:visitor-1")
	if err != nil {
		t.Fatalf("record view with failing gate: %v", err)
	}
	if !counted || views != 1 {
		t.Fatalf("expected database fallback to count, got views=%d counted=%v", views, counted)
	}
	if gate.calls != 2 {
		t.Fatalf("expected gate to be consulted twice, got %d", gate.calls)
	}
}

func TestViewService_MissingPost(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc := NewViewService(gdb)

	if _, _, err := svc.RecordView(context.Background(), 42, "anon:x"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if _, _, err := svc.RecordView(context.Background(), 42, ""); err == nil {
		t.Fatal("expected error for empty actor key")
	}
}

func TestViewService_ReleasesGateWhenRecordFails(t *testing.T) {
	gdb := testutil.NewDB(t)
	gate := &stubGate{allowed: true}
	svc := NewViewService(gdb).WithGate(gate)

	_, counted, err := svc.RecordView(context.Background(), 42, "anon:visitor-1")
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if counted {
		t.Fatal("failed view must not count")
	}
	if len(gate.forgot) != 1 || gate.forgot[0] != "anon:visitor-1" {
		t.Fatalf("expected gate entry to be released, got %v", gate.forgot)
	}

	author := testutil.CreateUser(t, gdb, "writer@wakja.app", "writer")
	post := testutil.CreatePost(t, gdb, author.ID, "본문")
	if _, counted, err := svc.RecordView(context.Background(), post.ID, "anon:visitor-1"); err != nil || !counted {
		t.Fatalf("expected successful view, got counted=%v err=%v", counted, err)
	}
	if len(gate.forgot) != 1 {
		t.Fatalf("successful view must keep the gate entry, got %v", gate.forgot)
	}

	gate.allowed, gate.err = false, errors.New("redis down")
	if _, _, err := svc.RecordView(context.Background(), 4242, "anon:visitor-2"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if len(gate.forgot) != 1 {
		t.Fatalf("gate errors must not trigger a release, got %v", gate.forgot)
	}
}
