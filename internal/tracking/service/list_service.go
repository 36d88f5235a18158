package service

import (
	"context"
	"time"

	"github.com/reeltrack/reeltrack/internal/tracking/constants"
	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/internal/tracking/repository"
	"github.com/reeltrack/reeltrack/pkg/errors"
	"github.com/reeltrack/reeltrack/pkg/interfaces"
	"github.com/reeltrack/reeltrack/pkg/pagination"
)

// ListService manages user lists and serves the aggregate counts.
type ListService struct {
	base
	resolver *domain.Resolver
	lists    repository.ListRepository
	stats    repository.StatsRepository
}

// NewListService creates a new list service
func NewListService(
	tx repository.Transactor,
	catalog domain.CatalogReader,
	lists repository.ListRepository,
	stats repository.StatsRepository,
	paginator *pagination.Paginator,
	publisher interfaces.EventPublisher,
	logger interfaces.Logger,
	opts ...Option,
) *ListService {
	return &ListService{
		base:     newBase(tx, paginator, publisher, logger, opts),
		resolver: domain.NewResolver(catalog),
		lists:    lists,
		stats:    stats,
	}
}

// CreateList creates an empty list owned by userID.
func (s *ListService) CreateList(ctx context.Context, userID, name string, description *string) (*domain.List, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	name, err := s.policy.ValidateListName(name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	list := &domain.List{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		OwnerID:     userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.lists.CreateList(ctx, list)
	})
	if err != nil {
		return nil, s.fail("Failed to create list", err, interfaces.String(constants.FieldUserID, userID))
	}

	s.publish(ctx, domain.NewListCreatedEvent(list))
	s.logger.Info("List created",
		interfaces.String(constants.FieldListID, list.ID),
		interfaces.String(constants.FieldUserID, userID),
		interfaces.String("name", name))

	return list, nil
}

// GetList retrieves a list by ID.
func (s *ListService) GetList(ctx context.Context, listID string) (*domain.List, error) {
	return s.lists.GetList(ctx, listID)
}

// UpdateList renames a list and replaces its description.
func (s *ListService) UpdateList(ctx context.Context, listID, requestingUserID, name string, description *string) (*domain.List, error) {
	name, err := s.policy.ValidateListName(name)
	if err != nil {
		return nil, err
	}

	var list *domain.List
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		list, err = s.owned(ctx, listID, requestingUserID)
		if err != nil {
			return err
		}
		list.Name = name
		list.Description = description
		list.UpdatedAt = s.now()
		return s.lists.UpdateList(ctx, list)
	})
	if err != nil {
		return nil, s.fail("Failed to update list", err, interfaces.String(constants.FieldListID, listID))
	}

	s.publish(ctx, domain.NewListUpdatedEvent(list))
	return list, nil
}

// DeleteList removes a list and its memberships. Catalog items are untouched.
func (s *ListService) DeleteList(ctx context.Context, listID, requestingUserID string) error {
	var list *domain.List
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		list, err = s.owned(ctx, listID, requestingUserID)
		if err != nil {
			return err
		}
		return s.lists.DeleteList(ctx, listID)
	})
	if err != nil {
		return s.fail("Failed to delete list", err,
			interfaces.String(constants.FieldListID, listID),
			interfaces.String("requested_by", requestingUserID))
	}

	s.publish(ctx, domain.NewListDeletedEvent(list))
	s.logger.Info("List deleted",
		interfaces.String(constants.FieldListID, listID),
		interfaces.String(constants.FieldUserID, list.OwnerID))
	return nil
}

// ListsByOwner returns one page of a user's lists, newest first.
func (s *ListService) ListsByOwner(ctx context.Context, ownerID string, req pagination.Request) (pagination.Page[*domain.List], error) {
	w, err := s.window(req)
	if err != nil {
		return pagination.Page[*domain.List]{}, err
	}
	rows, err := s.lists.ListsByOwner(ctx, ownerID, w)
	if err != nil {
		return pagination.Page[*domain.List]{}, err
	}
	return buildPage(&s.base, w, rows)
}

// AddMovieToList adds a movie to a list. Adding a member again is a no-op.
func (s *ListService) AddMovieToList(ctx context.Context, listID string, movieID int64, requestingUserID string) error {
	return s.addItem(ctx, listID, requestingUserID, func(ctx context.Context) (domain.MediaRef, error) {
		return s.resolver.ResolveMovie(ctx, movieID)
	}, s.lists.AddMovie)
}

// AddTVShowToList adds a tv show to a list. Adding a member again is a no-op.
func (s *ListService) AddTVShowToList(ctx context.Context, listID string, tvShowID int64, requestingUserID string) error {
	return s.addItem(ctx, listID, requestingUserID, func(ctx context.Context) (domain.MediaRef, error) {
		return s.resolver.ResolveTVShow(ctx, tvShowID)
	}, s.lists.AddTVShow)
}

// RemoveMovieFromList removes a movie from a list. Removing a non-member is
// a no-op.
func (s *ListService) RemoveMovieFromList(ctx context.Context, listID string, movieID int64, requestingUserID string) error {
	ref, _ := domain.MediaRefFromColumns(&movieID, nil, domain.ShowTypeMovie)
	return s.removeItem(ctx, listID, requestingUserID, ref, s.lists.RemoveMovie)
}

// RemoveTVShowFromList removes a tv show from a list. Removing a non-member
// is a no-op.
func (s *ListService) RemoveTVShowFromList(ctx context.Context, listID string, tvShowID int64, requestingUserID string) error {
	ref, _ := domain.MediaRefFromColumns(nil, &tvShowID, domain.ShowTypeTVShow)
	return s.removeItem(ctx, listID, requestingUserID, ref, s.lists.RemoveTVShow)
}

// ListContents returns a list with its movies and tv shows in insertion order.
func (s *ListService) ListContents(ctx context.Context, listID string) (*domain.ListContents, error) {
	contents := &domain.ListContents{}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if contents.List, err = s.lists.GetList(ctx, listID); err != nil {
			return err
		}
		if contents.Movies, err = s.lists.Movies(ctx, listID); err != nil {
			return err
		}
		contents.TVShows, err = s.lists.TVShows(ctx, listID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return contents, nil
}

// CountsFor returns live review, watched, watchlist and list counts for ref.
func (s *ListService) CountsFor(ctx context.Context, ref domain.MediaRef) (domain.Counts, error) {
	if err := requireRef(ref); err != nil {
		return domain.Counts{}, err
	}
	return s.stats.CountsFor(ctx, ref)
}

// CountsForUser returns live engagement counts for one user.
func (s *ListService) CountsForUser(ctx context.Context, userID string) (domain.UserCounts, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return domain.UserCounts{}, err
	}
	return s.stats.CountsForUser(ctx, userID)
}

func (s *ListService) owned(ctx context.Context, listID, userID string) (*domain.List, error) {
	list, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !list.OwnedBy(userID) {
		return nil, errors.Forbidden("list belongs to another user")
	}
	return list, nil
}

func (s *ListService) addItem(
	ctx context.Context,
	listID, requestingUserID string,
	resolve func(context.Context) (domain.MediaRef, error),
	add func(ctx context.Context, listID string, id int64, at time.Time) (bool, error),
) error {
	var (
		list  *domain.List
		ref   domain.MediaRef
		added bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if list, err = s.owned(ctx, listID, requestingUserID); err != nil {
			return err
		}
		if ref, err = resolve(ctx); err != nil {
			return err
		}
		added, err = add(ctx, listID, ref.ID(), s.now())
		return err
	})
	if err != nil {
		return s.fail("Failed to add list item", err, interfaces.String(constants.FieldListID, listID))
	}

	if added {
		s.publish(ctx, domain.NewListItemAddedEvent(list, ref))
		s.logger.Info("List item added", append(mediaFields(list.OwnerID, ref),
			interfaces.String(constants.FieldListID, listID))...)
	}
	return nil
}

func (s *ListService) removeItem(
	ctx context.Context,
	listID, requestingUserID string,
	ref domain.MediaRef,
	remove func(ctx context.Context, listID string, id int64) (bool, error),
) error {
	var (
		list    *domain.List
		removed bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if list, err = s.owned(ctx, listID, requestingUserID); err != nil {
			return err
		}
		removed, err = remove(ctx, listID, ref.ID())
		return err
	})
	if err != nil {
		return s.fail("Failed to remove list item", err, interfaces.String(constants.FieldListID, listID))
	}

	if removed {
		s.publish(ctx, domain.NewListItemRemovedEvent(list, ref))
	}
	return nil
}
