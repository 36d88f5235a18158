package service

import (
	"context"

	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/pkg/pagination"
)

// EngagementServiceInterface defines the engagement operations exposed to callers.
type EngagementServiceInterface interface {
	Resolve(ctx context.Context, movieID, tvShowID *int64) (domain.MediaRef, error)

	// Reviews
	RecordReview(ctx context.Context, userID string, ref domain.MediaRef, rating float64, comment *string) (*domain.Review, error)
	GetReview(ctx context.Context, reviewID string) (*domain.Review, error)
	UpdateReview(ctx context.Context, reviewID, requestingUserID string, rating *float64, comment *string) (*domain.Review, error)
	DeleteReview(ctx context.Context, reviewID, requestingUserID string) error
	ListReviewsFor(ctx context.Context, ref domain.MediaRef, req pagination.Request) (pagination.Page[*domain.Review], error)
	ListReviewsByUser(ctx context.Context, userID string, req pagination.Request) (pagination.Page[*domain.Review], error)

	// Watched
	MarkWatched(ctx context.Context, userID string, ref domain.MediaRef) (*domain.Watched, error)
	RemoveWatched(ctx context.Context, userID string, ref domain.MediaRef) error
	DeleteWatched(ctx context.Context, watchedID, requestingUserID string) error
	ListWatchedFor(ctx context.Context, userID string, req pagination.Request) (pagination.Page[*domain.Watched], error)

	// Watchlist
	AddToWatchlist(ctx context.Context, userID string, ref domain.MediaRef) (*domain.WatchlistEntry, error)
	RemoveFromWatchlist(ctx context.Context, userID string, ref domain.MediaRef) error
	DeleteWatchlistEntry(ctx context.Context, entryID, requestingUserID string) error
	ListWatchlistFor(ctx context.Context, userID string, req pagination.Request) (pagination.Page[*domain.WatchlistEntry], error)
}

// ListServiceInterface defines list and aggregate operations.
type ListServiceInterface interface {
	CreateList(ctx context.Context, userID, name string, description *string) (*domain.List, error)
	GetList(ctx context.Context, listID string) (*domain.List, error)
	UpdateList(ctx context.Context, listID, requestingUserID, name string, description *string) (*domain.List, error)
	DeleteList(ctx context.Context, listID, requestingUserID string) error
	ListsByOwner(ctx context.Context, ownerID string, req pagination.Request) (pagination.Page[*domain.List], error)

	AddMovieToList(ctx context.Context, listID string, movieID int64, requestingUserID string) error
	AddTVShowToList(ctx context.Context, listID string, tvShowID int64, requestingUserID string) error
	RemoveMovieFromList(ctx context.Context, listID string, movieID int64, requestingUserID string) error
	RemoveTVShowFromList(ctx context.Context, listID string, tvShowID int64, requestingUserID string) error
	ListContents(ctx context.Context, listID string) (*domain.ListContents, error)

	CountsFor(ctx context.Context, ref domain.MediaRef) (domain.Counts, error)
	CountsForUser(ctx context.Context, userID string) (domain.UserCounts, error)
}

// CatalogServiceInterface defines catalog ingestion and removal.
type CatalogServiceInterface interface {
	CreateMovie(ctx context.Context, movie *domain.Movie) error
	CreateTVShow(ctx context.Context, show *domain.TVShow) error
	GetMovie(ctx context.Context, id int64) (*domain.Movie, error)
	GetTVShow(ctx context.Context, id int64) (*domain.TVShow, error)
	DeleteMovie(ctx context.Context, id int64) error
	DeleteTVShow(ctx context.Context, id int64) error
	ImportCatalog(ctx context.Context, file *CatalogFile) (*ImportResult, error)
}

var (
	_ EngagementServiceInterface = (*EngagementService)(nil)
	_ ListServiceInterface       = (*ListService)(nil)
	_ CatalogServiceInterface    = (*CatalogService)(nil)
)
