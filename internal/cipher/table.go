package cipher

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Table is the substitution mapping for one normalized shift across every alphabet.
// Reverse is the exact inverse of forward.
type Table struct {
	Shift   int
	forward map[rune]rune
	reverse map[rune]rune
}

// newTable builds the forward and reverse mappings for a shift.
// Each alphabet applies the shift modulo its own size.
func newTable(shift int) *Table {
	t := &Table{
		Shift:   shift,
		forward: make(map[rune]rune, 128),
		reverse: make(map[rune]rune, 128),
	}

	for _, a := range registry {
		size := a.Size()
		s := ((shift % size) + size) % size

		for i, r := range a.Letters {
			fwd := a.Letters[(i+s)%size]
			rev := a.Letters[(i-s+size)%size]

			t.forward[r] = fwd
			t.reverse[r] = rev

			if a.Cased {
				t.forward[unicode.ToLower(r)] = unicode.ToLower(fwd)
				t.reverse[unicode.ToLower(r)] = unicode.ToLower(rev)
			}
		}
	}

	return t
}

// Forward returns the encrypted form of r.
func (t *Table) Forward(r rune) (rune, bool) {
	out, ok := t.forward[r]
	return out, ok
}

// Reverse returns the decrypted form of r.
func (t *Table) Reverse(r rune) (rune, bool) {
	out, ok := t.reverse[r]
	return out, ok
}

// Apply maps every character of text through the table.
// Characters without an entry pass through unchanged.
func (t *Table) Apply(text string, mode Mode) string {
	lookup := t.forward
	if mode == ModeDecrypt {
		lookup = t.reverse
	}

	return strings.Map(func(r rune) rune {
		if out, ok := lookup[r]; ok {
			return out
		}
		return r
	}, text)
}

// TableCache memoizes substitution tables by normalized shift.
// Entries are only ever added, never replaced or removed.
type TableCache struct {
	tables map[int]*Table
	group  singleflight.Group
	logger *zap.Logger
	mu     sync.RWMutex
}

// NewTableCache creates a cache with tables for shifts 1 through warmup prebuilt.
func NewTableCache(warmup int, logger *zap.Logger) *TableCache {
	c := &TableCache{
		tables: make(map[int]*Table, max(warmup, 0)),
		logger: logger.Named("table_cache"),
	}

	for shift := 1; shift <= warmup; shift++ {
		c.tables[shift] = newTable(shift)
	}

	c.logger.Debug("Warmed up shift tables", zap.Int("count", len(c.tables)))

	return c
}

// GetOrBuild returns the table for shift, building and caching it on first use.
// Concurrent misses for the same shift share a single build.
func (c *TableCache) GetOrBuild(shift int) *Table {
	if t, ok := c.get(shift); ok {
		return t
	}

	v, _, _ := c.group.Do(strconv.Itoa(shift), func() (any, error) {
		if t, ok := c.get(shift); ok {
			return t, nil
		}

		t := newTable(shift)

		c.mu.Lock()
		c.tables[shift] = t
		c.mu.Unlock()

		c.logger.Debug("Built shift table on demand", zap.Int("shift", shift))

		return t, nil
	})

	return v.(*Table)
}

// Has reports whether a table for shift is cached.
func (c *TableCache) Has(shift int) bool {
	_, ok := c.get(shift)
	return ok
}

// Len returns the number of cached tables.
func (c *TableCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.tables)
}

func (c *TableCache) get(shift int) (*Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tables[shift]
	return t, ok
}
