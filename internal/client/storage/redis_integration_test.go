//go:build integration

package storage

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisRepository_Contract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	client := startRedis(t)

	runContract(t, func(t *testing.T) Repository {
		// distinct prefix per subtest keeps them isolated on one server
		return NewRedisRepository(client, "test:"+t.Name()+":")
	})
}

func TestRedisRepository_ClearKeepsForeignKeys(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	client := startRedis(t)

	require.NoError(t, client.Set(ctx, "other:key", "v", 0).Err())
	r := NewRedisRepository(client, "mine:")
	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Clear(ctx))

	v, err := client.Get(ctx, "other:key").Result()
	require.NoError(t, err)
	require.Equal(t, "v", v)
}
