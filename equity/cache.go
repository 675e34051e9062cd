package equity

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"holdem-engine/cards"
)

// Cache memoizes rollouts by canonicalized (hero, board, opp, trials),
// with a single-writer-safe insert path. Concurrent callers requesting
// the identical key collapse onto one rollout via singleflight, which
// is the "locked insertion" spec.md §5 asks for without serializing
// unrelated keys behind one global mutex.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Result
	order   []string // insertion order, for size-threshold eviction
	limit   int
	group   singleflight.Group

	probes int // test/diagnostic hook: counts rollouts actually executed
}

// DefaultCacheLimit matches the 4096-entry training-time eviction
// threshold from spec.md §5.
const DefaultCacheLimit = 4096

// NewCache builds a cache that evicts its oldest entry once it holds
// more than limit entries. limit<=0 means DefaultCacheLimit.
func NewCache(limit int) *Cache {
	if limit <= 0 {
		limit = DefaultCacheLimit
	}
	return &Cache{entries: make(map[string]Result), limit: limit}
}

func cacheKey(hero, board, opp []cards.Card, trials int) string {
	var b strings.Builder
	writeCards(&b, cards.Canonicalize(hero))
	b.WriteByte('|')
	writeCards(&b, cards.Canonicalize(board))
	b.WriteByte('|')
	writeCards(&b, cards.Canonicalize(opp))
	fmt.Fprintf(&b, "|%d", trials)
	return b.String()
}

func writeCards(b *strings.Builder, cs []cards.Card) {
	for i, c := range cs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.String())
	}
}

// Get returns the cached rollout for this key, computing (and caching)
// it via compute if absent. Concurrent Get calls for the same key share
// one in-flight computation.
func (c *Cache) Get(hero, board, opp []cards.Card, trials int, compute func() Result) Result {
	key := cacheKey(hero, board, opp, trials)

	c.mu.RLock()
	if r, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return r
	}
	c.mu.RUnlock()

	v, _, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		if r, ok := c.entries[key]; ok {
			c.mu.RUnlock()
			return r, nil
		}
		c.mu.RUnlock()

		c.mu.Lock()
		c.probes++
		c.mu.Unlock()
		r := compute()

		c.mu.Lock()
		c.entries[key] = r
		c.order = append(c.order, key)
		if len(c.order) > c.limit {
			evict := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, evict)
		}
		c.mu.Unlock()
		return r, nil
	})
	return v.(Result)
}

// Probes returns the number of rollouts actually executed (as opposed
// to served from cache) — used to test the caching property from
// spec.md §8 scenario 6.
func (c *Cache) Probes() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.probes
}

// Count returns the number of cached entries.
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// EstimateCached is the convenience entry point: look up (hero, board,
// opp, trials) in the cache, computing a fresh rollout on a miss with a
// rng seeded from seed.
func (c *Cache) EstimateCached(seed int64, hero, board, opp []cards.Card, trials int) Result {
	return c.Get(hero, board, opp, trials, func() Result {
		rng := rand.New(rand.NewSource(seed))
		return Estimate(rng, hero, board, opp, trials)
	})
}
