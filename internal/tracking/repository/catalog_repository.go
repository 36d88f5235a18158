package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reeltrack/reeltrack/internal/tracking/constants"
	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	pkgrepo "github.com/reeltrack/reeltrack/pkg/repository"
)

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

var _ CatalogRepository = (*GormCatalogRepository)(nil)

// CreateMovie inserts a movie and copies the assigned id back.
func (r *GormCatalogRepository) CreateMovie(ctx context.Context, movie *domain.Movie) error {
	model := movieToModel(movie)
	if err := pkgrepo.Create(ctx, r.db, constants.ResourceMovie, model); err != nil {
		return err
	}
	*movie = *model.toDomain()
	return nil
}

// CreateTVShow inserts a tv show and copies the assigned id back.
func (r *GormCatalogRepository) CreateTVShow(ctx context.Context, show *domain.TVShow) error {
	model := tvShowToModel(show)
	if err := pkgrepo.Create(ctx, r.db, constants.ResourceTVShow, model); err != nil {
		return err
	}
	*show = *model.toDomain()
	return nil
}

// GetMovie retrieves a movie by ID.
func (r *GormCatalogRepository) GetMovie(ctx context.Context, id int64) (*domain.Movie, error) {
	model, err := pkgrepo.FindByID[Movie](ctx, r.db, constants.ResourceMovie, id)
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// GetTVShow retrieves a tv show by ID.
func (r *GormCatalogRepository) GetTVShow(ctx context.Context, id int64) (*domain.TVShow, error) {
	model, err := pkgrepo.FindByID[TVShow](ctx, r.db, constants.ResourceTVShow, id)
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// MovieExists reports whether the movie is in the catalog.
func (r *GormCatalogRepository) MovieExists(ctx context.Context, id int64) (bool, error) {
	return pkgrepo.Exists[Movie](ctx, r.db, constants.ResourceMovie, id)
}

// TVShowExists reports whether the tv show is in the catalog.
func (r *GormCatalogRepository) TVShowExists(ctx context.Context, id int64) (bool, error) {
	return pkgrepo.Exists[TVShow](ctx, r.db, constants.ResourceTVShow, id)
}

// HasEngagement reports whether any engagement row still points at ref.
func (r *GormCatalogRepository) HasEngagement(ctx context.Context, ref domain.MediaRef) (bool, error) {
	query := engagementColumn(ref) + " = ?"

	counters := []func() (int64, error){
		func() (int64, error) { return pkgrepo.Count[Review](ctx, r.db, constants.ResourceReview, query, ref.ID()) },
		func() (int64, error) { return pkgrepo.Count[Watched](ctx, r.db, constants.ResourceWatched, query, ref.ID()) },
		func() (int64, error) {
			return pkgrepo.Count[Watchlist](ctx, r.db, constants.ResourceWatchlist, query, ref.ID())
		},
	}
	for _, count := range counters {
		n, err := count()
		if err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

// DeleteMovie removes list memberships for the movie, then the movie itself.
func (r *GormCatalogRepository) DeleteMovie(ctx context.Context, id int64) (int64, error) {
	res := pkgrepo.Conn(ctx, r.db).Where("movie_id = ?", id).Delete(&ListMovie{})
	if res.Error != nil {
		return 0, pkgrepo.TranslateError(res.Error, constants.ResourceMovie, id)
	}
	if err := pkgrepo.Delete[Movie](ctx, r.db, constants.ResourceMovie, id); err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// DeleteTVShow removes list memberships for the show, then the show itself.
func (r *GormCatalogRepository) DeleteTVShow(ctx context.Context, id int64) (int64, error) {
	res := pkgrepo.Conn(ctx, r.db).Where("tv_show_id = ?", id).Delete(&ListTVShow{})
	if res.Error != nil {
		return 0, pkgrepo.TranslateError(res.Error, constants.ResourceTVShow, id)
	}
	if err := pkgrepo.Delete[TVShow](ctx, r.db, constants.ResourceTVShow, id); err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// engagementColumn names the id column that holds ref on engagement tables.
func engagementColumn(ref domain.MediaRef) string {
	if ref.IsTVShow() {
		return "tv_id"
	}
	return "movie_id"
}

// catalogResource names the catalog table behind ref for NotFound errors.
func catalogResource(ref domain.MediaRef) string {
	if ref.IsTVShow() {
		return constants.ResourceTVShow
	}
	return constants.ResourceMovie
}
