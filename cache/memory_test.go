package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "k", []byte("value"), time.Minute))
	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryMiss(t *testing.T) {
	t.Parallel()

	_, ok, err := NewMemory().Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(WithNow(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "k", []byte("value"), time.Minute))

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryOverwrite(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "k", []byte("old"), time.Minute))
	require.NoError(t, m.Put(ctx, "k", []byte("new"), time.Minute))

	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}

func TestMemoryCopiesValue(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	value := []byte("value")
	require.NoError(t, m.Put(ctx, "k", value, time.Minute))
	value[0] = 'X'

	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for j := 0; j < 100; j++ {
				_ = m.Put(ctx, key, []byte("value"), time.Minute)
				_, _, _ = m.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	_, ok, err := m.Get(ctx, "k0")
	require.NoError(t, err)
	assert.True(t, ok)
}
