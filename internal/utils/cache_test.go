package utils

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternCache_Compile(t *testing.T) {
	t.Parallel()

	cache := NewPatternCache()
	assert.Zero(t, cache.HitRate())

	first, err := cache.Compile(`^N`)
	require.NoError(t, err)
	second, err := cache.Compile(`^N`)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Size())
	assert.InDelta(t, 0.5, cache.HitRate(), 1e-12)
}

func TestPatternCache_InvalidPattern(t *testing.T) {
	t.Parallel()

	cache := NewPatternCache()

	_, err := cache.CompileAll([]string{`^J`, `(`})
	require.Error(t, err)
	assert.Equal(t, 1, cache.Size())
}

func TestPatternCache_Concurrent(t *testing.T) {
	t.Parallel()

	cache := NewPatternCache()
	exprs := []string{`^N`, `^J`, `^V`}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := cache.CompileAll(exprs)
			assert.NoError(t, err)
			assert.Len(t, res, 3)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, cache.Size())
	assert.InDelta(t, 45.0/48.0, cache.HitRate(), 1e-12)
}

func TestPatternCache_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	cache := NewPatternCacheWithCapacity(2)

	a, err := cache.Compile(`^a`)
	require.NoError(t, err)
	_, err = cache.Compile(`^b`)
	require.NoError(t, err)

	// touch ^a so ^b becomes the oldest
	again, err := cache.Compile(`^a`)
	require.NoError(t, err)
	assert.Same(t, a, again)

	_, err = cache.Compile(`^c`)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Size())

	// ^a survived, ^b was evicted and compiles afresh
	stillCached, err := cache.Compile(`^a`)
	require.NoError(t, err)
	assert.Same(t, a, stillCached)

	_, err = cache.Compile(`^b`)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/6.0, cache.HitRate(), 1e-12)
}

func TestPatternCache_SizeStaysAtCapacity(t *testing.T) {
	t.Parallel()

	cache := NewPatternCacheWithCapacity(8)
	for i := range 100 {
		_, err := cache.Compile(fmt.Sprintf(`^N%d`, i))
		require.NoError(t, err)
	}

	assert.Equal(t, 8, cache.Size())
	assert.Zero(t, cache.HitRate())
}

func TestNewPatternCache_DefaultCapacity(t *testing.T) {
	t.Parallel()

	cache := NewPatternCache()
	for i := range DefaultPatternCacheSize + 10 {
		_, err := cache.Compile(fmt.Sprintf(`^J%d`, i))
		require.NoError(t, err)
	}

	assert.Equal(t, DefaultPatternCacheSize, cache.Size())
}
