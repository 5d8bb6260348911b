package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientConnectsByURLAndAddr(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	byURL, err := NewClient(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer byURL.Close()

	byAddr, err := NewClient(ctx, mr.Addr())
	require.NoError(t, err)
	defer byAddr.Close()

	_, err = NewClient(ctx, "")
	assert.Error(t, err)
}

func TestNewClientFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewClient(context.Background(), addr)
	assert.Error(t, err)
}

func TestViewGateWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	gate := NewViewGate(client, 6*time.Hour)
	ctx := context.Background()

	allowed, err := gate.Allow(ctx, 7, "anon:visitor-1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = gate.Allow(ctx, 7, "anon:visitor-1")
	require.NoError(t, err)
	assert.False(t, allowed, "repeat inside window must be denied")

	allowed, err = gate.Allow(ctx, 7, "user:abc")
	require.NoError(t, err)
	assert.True(t, allowed, "other actors are independent")

	assert.True(t, mr.Exists("wakja:view:7:anon:visitor-1"))
	assert.Equal(t, 6*time.Hour, mr.TTL("wakja:view:7:anon:visitor-1"))

	mr.FastForward(6*time.Hour + time.Second)
	allowed, err = gate.Allow(ctx, 7, "anon:visitor-1")
	require.NoError(t, err)
	assert.True(t, allowed, "window elapsed")
}

func TestViewGateForget(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	gate := NewViewGate(client, 6*time.Hour)
	ctx := context.Background()

	allowed, err := gate.Allow(ctx, 9, "anon:visitor-1")
	require.NoError(t, err)
	require.True(t, allowed)

	require.NoError(t, gate.Forget(ctx, 9, "anon:visitor-1"))
	assert.False(t, mr.Exists("wakja:view:9:anon:visitor-1"))

	allowed, err = gate.Allow(ctx, 9, "anon:visitor-1")
	require.NoError(t, err)
	assert.True(t, allowed, "forgotten entry must not block the next view")

	assert.NoError(t, gate.Forget(ctx, 9, "anon:never-seen"))
}

func TestViewGateReportsRedisErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = NewViewGate(client, time.Hour).Allow(context.Background(), 1, "anon:x")
	assert.Error(t, err)
}
