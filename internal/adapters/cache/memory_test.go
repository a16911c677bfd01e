package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/alaqidah-service/internal/domain"
	"github.com/jsamuelsen/alaqidah-service/internal/ports"
)

var _ ports.Cache = (*Memory)(nil)

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(32)

	_, err := m.Get(ctx, "card:en:1")
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, m.Set(ctx, "card:en:1", []byte("png"), 0))

	got, err := m.Get(ctx, "card:en:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), got)

	require.NoError(t, m.Delete(ctx, "card:en:1"))
	require.NoError(t, m.Delete(ctx, "card:en:1"))

	_, err = m.Get(ctx, "card:en:1")
	assert.True(t, domain.IsNotFound(err))
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	m := NewMemory(32)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "short", []byte("a"), time.Minute))
	require.NoError(t, m.Set(ctx, "forever", []byte("b"), 0))

	now = now.Add(59 * time.Second)
	_, err := m.Get(ctx, "short")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = m.Get(ctx, "short")
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, 1, m.Len())

	now = now.Add(24 * time.Hour)
	_, err = m.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemory_Purge(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(64)

	for i := range 10 {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("card:id:%d", i), []byte{byte(i)}, time.Hour))
	}

	n, err := m.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Zero(t, m.Len())

	n, err = m.Purge(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(256)

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Go(func() {
			for i := range 50 {
				key := fmt.Sprintf("card:%d:%d", w, i)
				_ = m.Set(ctx, key, []byte(key), time.Minute)
				_, _ = m.Get(ctx, key)
			}
		})
	}
	wg.Wait()

	assert.Positive(t, m.Len())
}
