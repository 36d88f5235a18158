package constants

import "time"

const (
	// Resource names used in NotFound errors.
	ResourceMovie     = "Movie"
	ResourceTVShow    = "TVShow"
	ResourceReview    = "Review"
	ResourceWatched   = "Watched"
	ResourceWatchlist = "Watchlist"
	ResourceList      = "List"

	// Cache constants.
	CatalogCacheTTL      = 5 * time.Minute
	CatalogCacheSweep    = time.Minute
	CatalogCacheKeyMovie = "catalog:movie:"
	CatalogCacheKeyTV    = "catalog:tvshow:"

	// Log field names.
	FieldUserID    = "user_id"
	FieldMediaType = "media_type"
	FieldMediaID   = "media_id"
	FieldListID    = "list_id"
)
