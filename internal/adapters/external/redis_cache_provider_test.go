package external

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forecast.app/internal/config"
	"forecast.app/internal/ports"
	"forecast.app/pkg/errors"
)

func setupMockRedis(t *testing.T) (*miniredis.Miniredis, *RedisCacheProviderAdapter) {
	t.Helper()

	mr := miniredis.RunT(t)
	adapter, err := NewRedisCacheProviderAdapter(&config.RedisConfig{
		Addr:         mr.Addr(),
		DialTimeout:  5,
		ReadTimeout:  3,
		WriteTimeout: 3,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = adapter.Close() })

	return mr, adapter
}

func TestNewRedisCacheProviderAdapter_Errors(t *testing.T) {
	_, err := NewRedisCacheProviderAdapter(nil)
	assert.True(t, errors.IsConfigurationError(err))

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisCacheProviderAdapter(&config.RedisConfig{Addr: addr, DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1})
	assert.True(t, errors.IsNetworkError(err))
}

func TestRedisCacheProviderAdapter_Operations(t *testing.T) {
	mr, adapter := setupMockRedis(t)
	ctx := context.Background()

	var _ ports.CacheProvider = adapter

	t.Run("SetAndGetUsesPrefix", func(t *testing.T) {
		require.NoError(t, adapter.Set(ctx, "geocode:london", []byte(`{"name":"London"}`), time.Minute))

		got, err := adapter.Get(ctx, "geocode:london")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"London"}`, string(got))
		assert.True(t, mr.Exists(redisKeyPrefix+"geocode:london"))
	})

	t.Run("Miss", func(t *testing.T) {
		_, err := adapter.Get(ctx, "absent")
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, adapter.Set(ctx, "d", []byte("v"), time.Minute))
		require.NoError(t, adapter.Delete(ctx, "d"))

		assert.False(t, mr.Exists(redisKeyPrefix+"d"))
	})

	t.Run("TTLExpiration", func(t *testing.T) {
		require.NoError(t, adapter.Set(ctx, "ttl", []byte("v"), 100*time.Millisecond))
		mr.FastForward(150 * time.Millisecond)

		_, err := adapter.Get(ctx, "ttl")
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("ClearKeepsForeignKeys", func(t *testing.T) {
		require.NoError(t, mr.Set("other-app:key", "keep"))
		require.NoError(t, adapter.Set(ctx, "a", []byte("1"), time.Minute))
		require.NoError(t, adapter.Set(ctx, "b", []byte("2"), time.Minute))

		require.NoError(t, adapter.Clear(ctx))

		assert.False(t, mr.Exists(redisKeyPrefix+"a"))
		assert.False(t, mr.Exists(redisKeyPrefix+"b"))
		assert.True(t, mr.Exists("other-app:key"))
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, adapter.Ping(ctx))
	})
}

func TestRedisCacheProviderAdapter_ValidationErrors(t *testing.T) {
	_, adapter := setupMockRedis(t)
	ctx := context.Background()

	tests := []struct {
		name string
		op   func() error
	}{
		{"GetEmptyKey", func() error { _, err := adapter.Get(ctx, ""); return err }},
		{"SetEmptyKey", func() error { return adapter.Set(ctx, "", []byte("v"), time.Minute) }},
		{"SetNilValue", func() error { return adapter.Set(ctx, "k", nil, time.Minute) }},
		{"SetNegativeTTL", func() error { return adapter.Set(ctx, "k", []byte("v"), -time.Minute) }},
		{"DeleteEmptyKey", func() error { return adapter.Delete(ctx, "") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.IsValidationError(tt.op()))
		})
	}
}

func TestRedisCacheProviderAdapter_ContextCancellation(t *testing.T) {
	_, adapter := setupMockRedis(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.Get(ctx, "key")
	assert.Error(t, err)
	assert.Error(t, adapter.Set(ctx, "key", []byte("v"), time.Minute))
	assert.Error(t, adapter.Clear(ctx))
}
