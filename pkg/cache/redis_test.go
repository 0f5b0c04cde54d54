package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowFixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := NewRedisClient(&Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer rc.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := rc.Allow(ctx, "login:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i+1)
	}

	ok, err := rc.Allow(ctx, "login:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(61 * time.Second)

	ok, err = rc.Allow(ctx, "login:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewRedisClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(&Config{Addr: addr})
	assert.Error(t, err)
}
