package service

import (
	"context"
	"errors"
	"testing"

	"github.com/wakja/wakja-be/internal/db"
	"github.com/wakja/wakja-be/internal/testutil"
)

func TestLikeService_ToggleTwiceRestoresCount(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc := NewLikeService(gdb)
	ctx := context.Background()
	author := testutil.CreateUser(t, gdb, "writer@wakja.app", "writer")
	post := testutil.CreatePost(t, gdb, author.ID, "본문")

	if err := gdb.Model(&db.Post{}).Where("id = ?", post.ID).Update("like_count", 4).Error; err != nil {
		t.Fatalf("seed like_count: %v", err)
	}

	liked, err := svc.Toggle(ctx, post.ID, "anon:visitor-1")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !liked.Liked || liked.LikeCount != 5 {
		t.Fatalf("expected liked with count 5, got %+v", liked)
	}

	has, err := svc.HasLiked(ctx, post.ID, "anon:visitor-1")
	if err != nil || !has {
		t.Fatalf("expected HasLiked true, got %v %v", has, err)
	}

	unliked, err := svc.Toggle(ctx, post.ID, "anon:visitor-1")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if unliked.Liked || unliked.LikeCount != 4 {
		t.Fatalf("expected unliked with original count 4, got %+v", unliked)
	}

	var rows int64
	gdb.Model(&db.Like{}).Where("post_id = ?", post.ID).Count(&rows)
	if rows != 0 {
		t.Fatalf("expected no like rows, got %d", rows)
	}
}

func TestLikeService_ActorsAreIndependent(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc := NewLikeService(gdb)
	ctx := context.Background()
	author := testutil.CreateUser(t, gdb, "writer@wakja.app", "writer")
	post := testutil.CreatePost(t, gdb, author.ID, "본문")

	if _, err := svc.Toggle(ctx, post.ID, "user:"+author.ID); err != nil {
		t.Fatalf("toggle user: %v", err)
	}
	result, err := svc.Toggle(ctx, post.ID, "anon:visitor-1")
	if err != nil {
		t.Fatalf("toggle anon: %v", err)
	}
	if !result.Liked || result.LikeCount != 2 {
		t.Fatalf("expected two likes, got %+v", result)
	}

	has, err := svc.HasLiked(ctx, post.ID, "anon:visitor-2")
	if err != nil || has {
		t.Fatalf("expected unrelated actor to not have liked, got %v %v", has, err)
	}
}

func TestLikeService_MissingPost(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc := NewLikeService(gdb)

	if _, err := svc.Toggle(context.Background(), 404, "anon:visitor-1"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
