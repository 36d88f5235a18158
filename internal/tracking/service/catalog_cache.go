package service

import (
	"context"
	"strconv"
	"time"

	"github.com/reeltrack/reeltrack/internal/tracking/constants"
	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/pkg/interfaces"
)

// CachedCatalog remembers catalog ids that were seen to exist. Misses always
// go to the store, so a freshly ingested item is visible at once. Deleting an
// item must call Invalidate; foreign keys still reject writes that race a
// delete.
type CachedCatalog struct {
	next  domain.CatalogReader
	cache interfaces.Cache
	ttl   time.Duration
}

// NewCachedCatalog wraps next with cache.
func NewCachedCatalog(next domain.CatalogReader, cache interfaces.Cache, ttl time.Duration) *CachedCatalog {
	if ttl <= 0 {
		ttl = constants.CatalogCacheTTL
	}
	return &CachedCatalog{next: next, cache: cache, ttl: ttl}
}

var _ domain.CatalogReader = (*CachedCatalog)(nil)

// MovieExists implements domain.CatalogReader.
func (c *CachedCatalog) MovieExists(ctx context.Context, id int64) (bool, error) {
	return c.exists(ctx, constants.CatalogCacheKeyMovie, id, c.next.MovieExists)
}

// TVShowExists implements domain.CatalogReader.
func (c *CachedCatalog) TVShowExists(ctx context.Context, id int64) (bool, error) {
	return c.exists(ctx, constants.CatalogCacheKeyTV, id, c.next.TVShowExists)
}

// Invalidate drops the cached entry for ref.
func (c *CachedCatalog) Invalidate(ctx context.Context, ref domain.MediaRef) {
	prefix := constants.CatalogCacheKeyMovie
	if ref.IsTVShow() {
		prefix = constants.CatalogCacheKeyTV
	}
	_ = c.cache.Delete(ctx, prefix+strconv.FormatInt(ref.ID(), 10))
}

func (c *CachedCatalog) exists(
	ctx context.Context,
	prefix string,
	id int64,
	lookup func(context.Context, int64) (bool, error),
) (bool, error) {
	key := prefix + strconv.FormatInt(id, 10)
	if cached, err := c.cache.Get(ctx, key); err == nil {
		if ok, _ := cached.(bool); ok {
			return true, nil
		}
	}

	ok, err := lookup(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		_ = c.cache.Set(ctx, key, true, c.ttl)
	}
	return ok, nil
}
