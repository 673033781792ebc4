package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SaveGetList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[string](0)

	require.NoError(t, s.Save(ctx, "a", "one"))
	require.NoError(t, s.Save(ctx, "b", "two"))
	require.NoError(t, s.Save(ctx, "a", "uno"))

	v, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "uno", v)

	_, err = s.Get(ctx, "zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"uno", "two"}, all)
}

func TestMemory_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[int](2)
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.Save(ctx, fmt.Sprint(i), i))
	}
	_, err := s.Get(ctx, "1")
	assert.ErrorIs(t, err, ErrNotFound)
	all, _ := s.List(ctx)
	assert.Equal(t, []int{2, 3}, all)
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[int](0)
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Save(ctx, fmt.Sprint(i), i))
			_, _ = s.Get(ctx, fmt.Sprint(i))
		}()
	}
	wg.Wait()
	all, _ := s.List(ctx)
	assert.Len(t, all, 64)
}

func TestMemory_SaveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewMemoryStore[int](0).Save(ctx, "x", 1), context.Canceled)
}
