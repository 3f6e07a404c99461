package cipher_test

import (
	"sync"
	"testing"

	"github.com/robalyx/cipherlab/internal/cipher"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTableCacheWarmup(t *testing.T) {
	t.Parallel()

	cache := cipher.NewTableCache(100, zap.NewNop())
	assert.Equal(t, 100, cache.Len())
	assert.True(t, cache.Has(1))
	assert.True(t, cache.Has(100))
	assert.False(t, cache.Has(101))
}

func TestTableCacheLazyBuild(t *testing.T) {
	t.Parallel()

	cache := cipher.NewTableCache(0, zap.NewNop())
	assert.Equal(t, 0, cache.Len())

	var wg sync.WaitGroup
	tables := make([]*cipher.Table, 16)
	for i := range tables {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tables[i] = cache.GetOrBuild(5)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, cache.Len())
	for _, table := range tables {
		assert.Same(t, tables[0], table)
	}

	// A second lookup is a cache hit.
	assert.Same(t, tables[0], cache.GetOrBuild(5))
	assert.Equal(t, 1, cache.Len())
}

func TestTableIsBijective(t *testing.T) {
	t.Parallel()

	cache := cipher.NewTableCache(0, zap.NewNop())

	for _, shift := range []int{1, 10, 26, 32, 77} {
		table := cache.GetOrBuild(shift)

		for _, alphabet := range cipher.Alphabets() {
			seen := make(map[rune]bool, alphabet.Size())

			for _, r := range alphabet.Letters {
				fwd, ok := table.Forward(r)
				assert.True(t, ok)
				assert.True(t, alphabet.Contains(fwd), "shift %d maps %q outside %s", shift, r, alphabet.ID)
				assert.False(t, seen[fwd], "shift %d maps twice onto %q", shift, fwd)
				seen[fwd] = true

				back, ok := table.Reverse(fwd)
				assert.True(t, ok)
				assert.Equal(t, r, back)
			}
		}
	}
}

func TestTableLowercase(t *testing.T) {
	t.Parallel()

	table := cipher.NewTableCache(3, zap.NewNop()).GetOrBuild(3)

	r, ok := table.Forward('x')
	assert.True(t, ok)
	assert.Equal(t, 'a', r)

	r, ok = table.Reverse('A')
	assert.True(t, ok)
	assert.Equal(t, 'X', r)

	_, ok = table.Forward(' ')
	assert.False(t, ok)
}

func TestNormalizeShift(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shift    int
		size     int
		expected int
	}{
		{shift: 1, size: 26, expected: 1},
		{shift: 26, size: 26, expected: 26},
		{shift: 27, size: 26, expected: 1},
		{shift: 52, size: 26, expected: 26},
		{shift: -3, size: 26, expected: 3},
		{shift: -26, size: 26, expected: 26},
		{shift: 33, size: 32, expected: 1},
		{shift: 101, size: 26, expected: 23},
		{shift: 0, size: 26, expected: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, cipher.NormalizeShift(tt.shift, tt.size), "shift %d size %d", tt.shift, tt.size)
	}
}
