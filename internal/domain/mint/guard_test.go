package mint

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/questx-lab/nftgallery/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestMemoryGuard(t *testing.T) {
	ctx := context.Background()
	guard := NewMemoryGuard()

	token, ok, err := guard.Acquire(ctx, "wallet", "slot")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, token)

	_, ok, err = guard.Acquire(ctx, "wallet", "slot")
	require.NoError(t, err)
	require.False(t, ok)

	// Another slot of the same wallet is independent.
	_, ok, err = guard.Acquire(ctx, "wallet", "other")
	require.NoError(t, err)
	require.True(t, ok)

	// A foreign token leaves the hold in place.
	guard.Release(ctx, "wallet", "slot", "stale")
	_, ok, err = guard.Acquire(ctx, "wallet", "slot")
	require.NoError(t, err)
	require.False(t, ok)

	guard.Release(ctx, "wallet", "slot", token)
	_, ok, err = guard.Acquire(ctx, "wallet", "slot")
	require.NoError(t, err)
	require.True(t, ok)
}

// newExpiringRedis returns a mock redis that stores values and lets the test
// expire a key, the way a TTL would.
func newExpiringRedis() (*testutil.MockRedisClient, map[string]string, map[string]time.Duration) {
	values := map[string]string{}
	ttls := map[string]time.Duration{}

	return &testutil.MockRedisClient{
		SetNXFunc: func(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
			if _, ok := values[key]; ok {
				return false, nil
			}
			values[key] = value
			ttls[key] = ttl
			return true, nil
		},
		DelIfEqualFunc: func(ctx context.Context, key, value string) (bool, error) {
			if current, ok := values[key]; !ok || current != value {
				return false, nil
			}
			delete(values, key)
			return true, nil
		},
	}, values, ttls
}

func TestRedisGuard(t *testing.T) {
	ctx := testutil.MockContext()
	redisClient, values, ttls := newExpiringRedis()

	guard := NewRedisGuard(redisClient, time.Minute)
	token, ok, err := guard.Acquire(ctx, "wallet", "slot")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, time.Minute, ttls["mintguard:wallet:slot"])
	require.Equal(t, token, values["mintguard:wallet:slot"])

	_, ok, err = guard.Acquire(ctx, "wallet", "slot")
	require.NoError(t, err)
	require.False(t, ok)

	guard.Release(ctx, "wallet", "slot", token)
	require.NotContains(t, values, "mintguard:wallet:slot")

	redisClient.SetNXFunc = func(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
		return false, errors.New("connection refused")
	}
	_, ok, err = guard.Acquire(ctx, "wallet", "slot")
	require.Error(t, err)
	require.False(t, ok)
}

func TestRedisGuard_LateReleaseKeepsNewHolder(t *testing.T) {
	ctx := testutil.MockContext()
	redisClient, values, _ := newExpiringRedis()
	guard := NewRedisGuard(redisClient, time.Minute)

	tokenA, ok, err := guard.Acquire(ctx, "wallet", "slot")
	require.NoError(t, err)
	require.True(t, ok)

	// The first hold expires while its mint is still running.
	delete(values, "mintguard:wallet:slot")

	tokenB, ok, err := guard.Acquire(ctx, "wallet", "slot")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEqual(t, tokenA, tokenB)

	// The first mint finishes and releases its expired hold.
	guard.Release(ctx, "wallet", "slot", tokenA)
	require.Equal(t, tokenB, values["mintguard:wallet:slot"])

	_, ok, err = guard.Acquire(ctx, "wallet", "slot")
	require.NoError(t, err)
	require.False(t, ok)

	guard.Release(ctx, "wallet", "slot", tokenB)
	_, ok, err = guard.Acquire(ctx, "wallet", "slot")
	require.NoError(t, err)
	require.True(t, ok)
}
