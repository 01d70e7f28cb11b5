// Package cache wraps sun sources with an in-memory, per-day cache.
package cache

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/maypok86/otter/v2"

	"world-dashboard/datasource"
	"world-dashboard/models"
)

const maxEntries = 1024

// CachedSunSource wraps a SunSource and caches results per coordinate pair and UTC date.
// Sun times change once a day, so repeated refreshes of the same city reuse one answer.
type CachedSunSource struct {
	source    datasource.SunSource
	cache     *otter.Cache[string, models.SunTimes]
	ttl       time.Duration
	now       func() time.Time
	logger    *slog.Logger
	hitCount  atomic.Int64
	missCount atomic.Int64
}

// NewCachedSunSource creates a new cached wrapper around a sun source.
// A non-positive ttl disables caching.
func NewCachedSunSource(source datasource.SunSource, ttl time.Duration, logger *slog.Logger) *CachedSunSource {
	c := &CachedSunSource{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With("component", "sun-cache"),
	}
	if ttl > 0 {
		c.cache = otter.Must(&otter.Options[string, models.SunTimes]{
			MaximumSize:      maxEntries,
			ExpiryCalculator: otter.ExpiryWriting[string, models.SunTimes](ttl),
		})
	}
	return c
}

// Name returns the name of the underlying source with [Cached] suffix
func (c *CachedSunSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// FetchSunTimes returns cached sun times when available, fetching on a miss.
// Failures are never cached.
func (c *CachedSunSource) FetchSunTimes(ctx context.Context, city models.City) (models.SunTimes, error) {
	if c.cache == nil {
		return c.source.FetchSunTimes(ctx, city)
	}

	key := c.key(city)
	if times, found := c.cache.GetIfPresent(key); found {
		c.hitCount.Add(1)
		c.logger.Debug("cache hit", "city", city.Name, "key", key)
		return times, nil
	}

	c.missCount.Add(1)
	c.logger.Debug("cache miss", "city", city.Name, "key", key)

	times, err := c.source.FetchSunTimes(ctx, city)
	if err != nil {
		return models.SunTimes{}, err
	}
	c.cache.Set(key, times)
	return times, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedSunSource) CacheStats() (hits, misses int64) {
	return c.hitCount.Load(), c.missCount.Load()
}

// Size returns the approximate number of cached entries.
func (c *CachedSunSource) Size() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.EstimatedSize()
}

func (c *CachedSunSource) key(city models.City) string {
	return city.CoordinateKey() + "@" + c.now().UTC().Format(time.DateOnly)
}

// Ensure CachedSunSource implements the SunSource interface
var _ datasource.SunSource = (*CachedSunSource)(nil)
