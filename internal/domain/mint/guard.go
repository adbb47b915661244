package mint

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/nftgallery/internal/common"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
	"github.com/questx-lab/nftgallery/pkg/xredis"
)

type memoryGuard struct {
	inflight *xsync.MapOf[string, string]
}

func NewMemoryGuard() *memoryGuard {
	return &memoryGuard{inflight: xsync.NewMapOf[string]()}
}

func (g *memoryGuard) Acquire(ctx context.Context, walletAddress, slotID string) (string, bool, error) {
	token := uuid.NewString()
	_, loaded := g.inflight.LoadOrStore(common.RedisKeyMintGuard(walletAddress, slotID), token)
	if loaded {
		return "", false, nil
	}

	return token, true, nil
}

func (g *memoryGuard) Release(ctx context.Context, walletAddress, slotID, token string) {
	key := common.RedisKeyMintGuard(walletAddress, slotID)

	// Entries never expire in memory, so only the holder of the token can
	// remove it between Load and Delete.
	if current, ok := g.inflight.Load(key); ok && current == token {
		g.inflight.Delete(key)
	}
}

// redisGuard shares the in-flight state between processes. The key expires
// after ttl so a crashed process cannot block a slot forever, the token stops
// a late Release from dropping a hold taken after that expiry.
type redisGuard struct {
	redisClient xredis.Client
	ttl         time.Duration
}

func NewRedisGuard(redisClient xredis.Client, ttl time.Duration) *redisGuard {
	return &redisGuard{redisClient: redisClient, ttl: ttl}
}

func (g *redisGuard) Acquire(ctx context.Context, walletAddress, slotID string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := g.redisClient.SetNX(ctx, common.RedisKeyMintGuard(walletAddress, slotID), token, g.ttl)
	if err != nil || !ok {
		return "", false, err
	}

	return token, true, nil
}

func (g *redisGuard) Release(ctx context.Context, walletAddress, slotID, token string) {
	key := common.RedisKeyMintGuard(walletAddress, slotID)
	deleted, err := g.redisClient.DelIfEqual(ctx, key, token)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot release mint guard %s: %v", key, err)
		return
	}

	if !deleted {
		xcontext.Logger(ctx).Warnf("Mint guard %s expired before release", key)
	}
}
