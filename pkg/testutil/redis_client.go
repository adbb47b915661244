package testutil

import (
	"context"
	"time"
)

type MockRedisClient struct {
	SetNXFunc      func(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	DelIfEqualFunc func(ctx context.Context, key, value string) (bool, error)
}

func (m *MockRedisClient) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if m.SetNXFunc != nil {
		return m.SetNXFunc(ctx, key, value, ttl)
	}

	return true, nil
}

func (m *MockRedisClient) DelIfEqual(ctx context.Context, key, value string) (bool, error) {
	if m.DelIfEqualFunc != nil {
		return m.DelIfEqualFunc(ctx, key, value)
	}

	return true, nil
}
