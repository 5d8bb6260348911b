package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewGate remembers recent (post, actor) views in Redis with SET NX EX.
type ViewGate struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewGate returns a gate whose entries expire after ttl.
func NewViewGate(client *redis.Client, ttl time.Duration) *ViewGate {
	return &ViewGate{client: client, ttl: ttl}
}

// Allow reports true when no view was recorded for the pair inside the
// window, and records this one.
func (g *ViewGate) Allow(ctx context.Context, postID uint, actorKey string) (bool, error) {
	return g.client.SetNX(ctx, viewKey(postID, actorKey), 1, g.ttl).Result()
}

// Forget removes the entry so the next view is allowed again.
func (g *ViewGate) Forget(ctx context.Context, postID uint, actorKey string) error {
	return g.client.Del(ctx, viewKey(postID, actorKey)).Err()
}

func viewKey(postID uint, actorKey string) string {
	return fmt.Sprintf("wakja:view:%d:%s", postID, actorKey)
}
