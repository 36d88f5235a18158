package repository

import (
	"context"
	"time"

	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/pkg/pagination"
)

// Transactor runs a unit of work in one database transaction. Repository
// calls made with the callback's context join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CatalogRepository defines data access for movies and tv shows.
type CatalogRepository interface {
	domain.CatalogReader

	CreateMovie(ctx context.Context, movie *domain.Movie) error
	CreateTVShow(ctx context.Context, show *domain.TVShow) error
	GetMovie(ctx context.Context, id int64) (*domain.Movie, error)
	GetTVShow(ctx context.Context, id int64) (*domain.TVShow, error)

	// HasEngagement reports whether any review, watched or watchlist row
	// references the item.
	HasEngagement(ctx context.Context, ref domain.MediaRef) (bool, error)

	// DeleteMovie removes the movie and its list memberships and returns the
	// number of memberships removed.
	DeleteMovie(ctx context.Context, id int64) (int64, error)
	DeleteTVShow(ctx context.Context, id int64) (int64, error)
}

// ReviewRepository defines data access for reviews.
type ReviewRepository interface {
	CreateReview(ctx context.Context, review *domain.Review) error
	GetReview(ctx context.Context, id string) (*domain.Review, error)
	UpdateReview(ctx context.Context, review *domain.Review) error
	DeleteReview(ctx context.Context, id string) error
	ListReviewsForMedia(ctx context.Context, ref domain.MediaRef, w pagination.Window) ([]*domain.Review, error)
	ListReviewsByUser(ctx context.Context, userID string, w pagination.Window) ([]*domain.Review, error)
}

// WatchedRepository defines data access for watched rows.
type WatchedRepository interface {
	// MarkWatched inserts w unless the user already watched the item, in which
	// case the stored row is returned and created is false.
	MarkWatched(ctx context.Context, w *domain.Watched) (stored *domain.Watched, created bool, err error)
	GetWatched(ctx context.Context, id string) (*domain.Watched, error)
	FindWatched(ctx context.Context, userID string, ref domain.MediaRef) (*domain.Watched, error)
	DeleteWatched(ctx context.Context, id string) error
	ListWatchedByUser(ctx context.Context, userID string, w pagination.Window) ([]*domain.Watched, error)
}

// WatchlistRepository defines data access for watchlist rows.
type WatchlistRepository interface {
	AddToWatchlist(ctx context.Context, e *domain.WatchlistEntry) (stored *domain.WatchlistEntry, created bool, err error)
	GetWatchlistEntry(ctx context.Context, id string) (*domain.WatchlistEntry, error)
	FindWatchlistEntry(ctx context.Context, userID string, ref domain.MediaRef) (*domain.WatchlistEntry, error)
	DeleteWatchlistEntry(ctx context.Context, id string) error
	ListWatchlistByUser(ctx context.Context, userID string, w pagination.Window) ([]*domain.WatchlistEntry, error)
}

// ListRepository defines data access for lists and their memberships.
type ListRepository interface {
	CreateList(ctx context.Context, list *domain.List) error
	GetList(ctx context.Context, id string) (*domain.List, error)
	UpdateList(ctx context.Context, list *domain.List) error
	// DeleteList removes the list and its membership rows, never the catalog items.
	DeleteList(ctx context.Context, id string) error
	ListsByOwner(ctx context.Context, ownerID string, w pagination.Window) ([]*domain.List, error)

	// AddMovie and AddTVShow report whether a new membership was created.
	AddMovie(ctx context.Context, listID string, movieID int64, at time.Time) (bool, error)
	AddTVShow(ctx context.Context, listID string, tvShowID int64, at time.Time) (bool, error)
	// RemoveMovie and RemoveTVShow report whether a membership was removed.
	RemoveMovie(ctx context.Context, listID string, movieID int64) (bool, error)
	RemoveTVShow(ctx context.Context, listID string, tvShowID int64) (bool, error)

	Movies(ctx context.Context, listID string) ([]*domain.Movie, error)
	TVShows(ctx context.Context, listID string) ([]*domain.TVShow, error)
}

// StatsRepository computes aggregates from live rows.
type StatsRepository interface {
	CountsFor(ctx context.Context, ref domain.MediaRef) (domain.Counts, error)
	CountsForUser(ctx context.Context, userID string) (domain.UserCounts, error)
}
