package service

import (
	"context"
	"fmt"

	"github.com/reeltrack/reeltrack/internal/tracking/constants"
	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/internal/tracking/repository"
	"github.com/reeltrack/reeltrack/pkg/errors"
	"github.com/reeltrack/reeltrack/pkg/interfaces"
)

// CatalogService ingests and removes movies and tv shows.
type CatalogService struct {
	base
	catalog repository.CatalogRepository
	cache   *CachedCatalog
}

// NewCatalogService creates a new catalog service. cache may be nil.
func NewCatalogService(
	tx repository.Transactor,
	catalog repository.CatalogRepository,
	cache *CachedCatalog,
	publisher interfaces.EventPublisher,
	logger interfaces.Logger,
	opts ...Option,
) *CatalogService {
	return &CatalogService{
		base:    newBase(tx, nil, publisher, logger, opts),
		catalog: catalog,
		cache:   cache,
	}
}

// CreateMovie validates and inserts a movie. The assigned id is written back.
func (s *CatalogService) CreateMovie(ctx context.Context, movie *domain.Movie) error {
	if err := movie.Validate(); err != nil {
		return err
	}
	now := s.now()
	movie.CreatedAt, movie.UpdatedAt = now, now

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.catalog.CreateMovie(ctx, movie)
	})
	if err != nil {
		return s.fail("Failed to create movie", err, interfaces.String("title", movie.Title))
	}

	s.logger.Info("Movie created",
		interfaces.Int64("id", movie.ID),
		interfaces.String("title", movie.Title))
	return nil
}

// CreateTVShow validates and inserts a tv show. The assigned id is written back.
func (s *CatalogService) CreateTVShow(ctx context.Context, show *domain.TVShow) error {
	if err := show.Validate(); err != nil {
		return err
	}
	now := s.now()
	show.CreatedAt, show.UpdatedAt = now, now

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.catalog.CreateTVShow(ctx, show)
	})
	if err != nil {
		return s.fail("Failed to create tv show", err, interfaces.String("title", show.Title))
	}

	s.logger.Info("TV show created",
		interfaces.Int64("id", show.ID),
		interfaces.String("title", show.Title))
	return nil
}

// GetMovie retrieves a movie by ID.
func (s *CatalogService) GetMovie(ctx context.Context, id int64) (*domain.Movie, error) {
	return s.catalog.GetMovie(ctx, id)
}

// GetTVShow retrieves a tv show by ID.
func (s *CatalogService) GetTVShow(ctx context.Context, id int64) (*domain.TVShow, error) {
	return s.catalog.GetTVShow(ctx, id)
}

// DeleteMovie removes a movie. It fails with a conflict while reviews,
// watched marks or watchlist entries still point at it. List memberships are
// removed with the movie.
func (s *CatalogService) DeleteMovie(ctx context.Context, id int64) error {
	ref, _ := domain.MediaRefFromColumns(&id, nil, domain.ShowTypeMovie)
	return s.deleteItem(ctx, ref, func(ctx context.Context) (int64, error) {
		if _, err := s.catalog.GetMovie(ctx, id); err != nil {
			return 0, err
		}
		if err := s.ensureUnreferenced(ctx, ref); err != nil {
			return 0, err
		}
		return s.catalog.DeleteMovie(ctx, id)
	})
}

// DeleteTVShow removes a tv show under the same rules as DeleteMovie.
func (s *CatalogService) DeleteTVShow(ctx context.Context, id int64) error {
	ref, _ := domain.MediaRefFromColumns(nil, &id, domain.ShowTypeTVShow)
	return s.deleteItem(ctx, ref, func(ctx context.Context) (int64, error) {
		if _, err := s.catalog.GetTVShow(ctx, id); err != nil {
			return 0, err
		}
		if err := s.ensureUnreferenced(ctx, ref); err != nil {
			return 0, err
		}
		return s.catalog.DeleteTVShow(ctx, id)
	})
}

func (s *CatalogService) ensureUnreferenced(ctx context.Context, ref domain.MediaRef) error {
	engaged, err := s.catalog.HasEngagement(ctx, ref)
	if err != nil {
		return err
	}
	if engaged {
		return errors.Conflict(fmt.Sprintf("%s is still referenced by reviews, watched or watchlist entries", ref))
	}
	return nil
}

func (s *CatalogService) deleteItem(ctx context.Context, ref domain.MediaRef, del func(context.Context) (int64, error)) error {
	var memberships int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		memberships, err = del(ctx)
		return err
	})
	if err != nil {
		return s.fail("Failed to delete catalog item", err,
			interfaces.String(constants.FieldMediaType, string(ref.Kind())),
			interfaces.Int64(constants.FieldMediaID, ref.ID()))
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, ref)
	}
	s.publish(ctx, domain.NewCatalogItemDeletedEvent(ref, memberships))
	s.logger.Info("Catalog item deleted",
		interfaces.String(constants.FieldMediaType, string(ref.Kind())),
		interfaces.Int64(constants.FieldMediaID, ref.ID()),
		interfaces.Int64("list_memberships_removed", memberships))
	return nil
}
