package roster

import (
	"context"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/sam-maryland/madness-mcp-server/internal/sim"
)

const (
	RosterCacheSize = 8
)

// CachedSource memoizes rosters from the wrapped source, keyed by source
// name. Failed loads are not cached.
type CachedSource struct {
	cache  *lru.Cache[string, []sim.Entrant]
	next   Source
	logger *logrus.Logger

	cacheHit  atomic.Int64
	cacheMiss atomic.Int64
}

var _ Source = (*CachedSource)(nil)

func NewCachedSource(size int, next Source, logger *logrus.Logger) (*CachedSource, error) {
	cache, err := lru.New[string, []sim.Entrant](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create roster cache: %w", err)
	}
	return &CachedSource{
		cache:  cache,
		next:   next,
		logger: logger,
	}, nil
}

func (c *CachedSource) Name() string {
	return c.next.Name()
}

// Entrants returns a copy of the cached roster, loading it on a miss
func (c *CachedSource) Entrants(ctx context.Context) ([]sim.Entrant, error) {
	key := c.next.Name()
	if entrants, ok := c.cache.Get(key); ok {
		c.cacheHit.Add(1)
		return append([]sim.Entrant(nil), entrants...), nil
	}

	c.cacheMiss.Add(1)
	entrants, err := c.next.Entrants(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, entrants)
	c.logger.WithFields(logrus.Fields{
		"source":   key,
		"entrants": len(entrants),
		"hits":     c.cacheHit.Load(),
		"misses":   c.cacheMiss.Load(),
	}).Debug("Roster cached")

	return append([]sim.Entrant(nil), entrants...), nil
}

// Stats returns cache hit and miss counts
func (c *CachedSource) Stats() (hits, misses int64) {
	return c.cacheHit.Load(), c.cacheMiss.Load()
}

// Invalidate drops the cached roster so the next call reloads it
func (c *CachedSource) Invalidate() {
	c.cache.Remove(c.next.Name())
}
