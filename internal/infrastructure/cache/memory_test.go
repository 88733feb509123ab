package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/crypto_indicator_api/internal/domain"
)

func TestMemoryCache_SetGet(t *testing.T) {
	m := NewMemoryCache()
	defer m.Close()
	ctx := context.Background()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "k", []byte("payload"), time.Minute))

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestMemoryCache_ExpiryBoundary(t *testing.T) {
	m := NewMemoryCache()
	defer m.Close()
	ctx := context.Background()

	now := time.Now()
	m.SetClock(func() time.Time { return now })

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 30*time.Minute))

	now = now.Add(30*time.Minute - time.Millisecond)
	_, err := m.Get(ctx, "k")
	assert.NoError(t, err, "entry still fresh just inside the ttl")

	now = now.Add(2 * time.Millisecond)
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss, "past expiresAt is a hard miss")
}

func TestMemoryCache_PayloadIsolated(t *testing.T) {
	m := NewMemoryCache()
	defer m.Close()
	ctx := context.Background()

	src := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", src, time.Minute))
	src[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[0] = 'y'
	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryCache_Overwrite(t *testing.T) {
	m := NewMemoryCache()
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("old"), time.Minute))
	require.NoError(t, m.Set(ctx, "k", []byte("new"), time.Minute))

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}
