package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (Repository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRepository(client), mr
}

func TestSession_RoundTrip(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSession(ctx, "jti-1", "user-1", time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("session:jti-1"))

	userID, err := repo.GetSession(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	require.NoError(t, repo.DeleteSession(ctx, "jti-1"))
	_, err = repo.GetSession(ctx, "jti-1")
	assert.ErrorIs(t, err, goredis.Nil)
}

func TestOTP_Expires(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.SetOTP(ctx, "+919999999999", "123456", 5*time.Minute))

	code, err := repo.GetOTP(ctx, "+919999999999")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	mr.FastForward(6 * time.Minute)
	_, err = repo.GetOTP(ctx, "+919999999999")
	assert.ErrorIs(t, err, goredis.Nil)
}

func TestVerificationQueue_OrderedByTime(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.EnqueueVerification(ctx, "order-b", now))
	require.NoError(t, repo.EnqueueVerification(ctx, "order-a", now.Add(-time.Minute)))

	entries, err := repo.ListVerificationQueue(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "order-a", entries[0].Member)
	assert.Equal(t, "order-b", entries[1].Member)

	require.NoError(t, repo.DequeueVerification(ctx, "order-a"))
	entries, err = repo.ListVerificationQueue(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "order-b", entries[0].Member)
}

func TestNilClient_IsNoop(t *testing.T) {
	repo := NewRepository(nil)
	ctx := context.Background()

	assert.NoError(t, repo.Set(ctx, "k", "v"))
	v, err := repo.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Empty(t, v)
	_, err = repo.GetSession(ctx, "x")
	assert.ErrorIs(t, err, goredis.Nil)
}
