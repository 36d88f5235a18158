package service

import (
	"context"

	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/internal/tracking/repository"
	"github.com/reeltrack/reeltrack/pkg/errors"
	"github.com/reeltrack/reeltrack/pkg/interfaces"
	"github.com/reeltrack/reeltrack/pkg/pagination"
)

// EngagementService records reviews, watched marks and watchlist entries.
type EngagementService struct {
	base
	resolver  *domain.Resolver
	reviews   repository.ReviewRepository
	watched   repository.WatchedRepository
	watchlist repository.WatchlistRepository
}

// NewEngagementService creates a new engagement service
func NewEngagementService(
	tx repository.Transactor,
	catalog domain.CatalogReader,
	reviews repository.ReviewRepository,
	watched repository.WatchedRepository,
	watchlist repository.WatchlistRepository,
	paginator *pagination.Paginator,
	publisher interfaces.EventPublisher,
	logger interfaces.Logger,
	opts ...Option,
) *EngagementService {
	return &EngagementService{
		base:      newBase(tx, paginator, publisher, logger, opts),
		resolver:  domain.NewResolver(catalog),
		reviews:   reviews,
		watched:   watched,
		watchlist: watchlist,
	}
}

// Resolve validates a (movieID, tvShowID) pair against the catalog.
func (s *EngagementService) Resolve(ctx context.Context, movieID, tvShowID *int64) (domain.MediaRef, error) {
	return s.resolver.Resolve(ctx, movieID, tvShowID)
}

// RecordReview stores a new review. Earlier reviews by the same user are kept.
func (s *EngagementService) RecordReview(
	ctx context.Context,
	userID string,
	ref domain.MediaRef,
	rating float64,
	comment *string,
) (*domain.Review, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := requireRef(ref); err != nil {
		return nil, err
	}
	if err := s.policy.ValidateRating(rating); err != nil {
		return nil, err
	}
	if err := s.policy.ValidateComment(comment); err != nil {
		return nil, err
	}

	now := s.now()
	review := &domain.Review{
		ID:        s.newID(),
		UserID:    userID,
		Media:     ref,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.reviews.CreateReview(ctx, review)
	})
	if err != nil {
		return nil, s.fail("Failed to record review", err, mediaFields(userID, ref)...)
	}

	s.publish(ctx, domain.NewReviewRecordedEvent(review))
	s.logger.Info("Review recorded",
		append(mediaFields(userID, ref),
			interfaces.String("review_id", review.ID),
			interfaces.Float64("rating", rating))...)

	return review, nil
}

// GetReview retrieves a review by ID.
func (s *EngagementService) GetReview(ctx context.Context, reviewID string) (*domain.Review, error) {
	return s.reviews.GetReview(ctx, reviewID)
}

// UpdateReview changes the rating and/or comment of a review owned by
// requestingUserID. Nil arguments leave the field as is.
func (s *EngagementService) UpdateReview(
	ctx context.Context,
	reviewID, requestingUserID string,
	rating *float64,
	comment *string,
) (*domain.Review, error) {
	if rating != nil {
		if err := s.policy.ValidateRating(*rating); err != nil {
			return nil, err
		}
	}
	if err := s.policy.ValidateComment(comment); err != nil {
		return nil, err
	}

	var review *domain.Review
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		review, err = s.reviews.GetReview(ctx, reviewID)
		if err != nil {
			return err
		}
		if review.UserID != requestingUserID {
			return errors.Forbidden("review belongs to another user")
		}

		if rating != nil {
			review.Rating = *rating
		}
		if comment != nil {
			review.Comment = comment
		}
		review.UpdatedAt = s.now()
		return s.reviews.UpdateReview(ctx, review)
	})
	if err != nil {
		return nil, s.fail("Failed to update review", err, interfaces.String("review_id", reviewID))
	}

	s.publish(ctx, domain.NewReviewUpdatedEvent(review))
	return review, nil
}

// DeleteReview removes a review owned by requestingUserID.
func (s *EngagementService) DeleteReview(ctx context.Context, reviewID, requestingUserID string) error {
	var review *domain.Review
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		review, err = s.reviews.GetReview(ctx, reviewID)
		if err != nil {
			return err
		}
		if review.UserID != requestingUserID {
			return errors.Forbidden("review belongs to another user")
		}
		return s.reviews.DeleteReview(ctx, reviewID)
	})
	if err != nil {
		return s.fail("Failed to delete review", err,
			interfaces.String("review_id", reviewID),
			interfaces.String("requested_by", requestingUserID))
	}

	s.publish(ctx, domain.NewReviewDeletedEvent(review))
	s.logger.Info("Review deleted", append(mediaFields(review.UserID, review.Media),
		interfaces.String("review_id", reviewID))...)
	return nil
}

// ListReviewsFor returns one page of reviews of ref, newest first.
func (s *EngagementService) ListReviewsFor(ctx context.Context, ref domain.MediaRef, req pagination.Request) (pagination.Page[*domain.Review], error) {
	if err := requireRef(ref); err != nil {
		return pagination.Page[*domain.Review]{}, err
	}
	w, err := s.window(req)
	if err != nil {
		return pagination.Page[*domain.Review]{}, err
	}
	rows, err := s.reviews.ListReviewsForMedia(ctx, ref, w)
	if err != nil {
		return pagination.Page[*domain.Review]{}, err
	}
	return buildPage(&s.base, w, rows)
}

// ListReviewsByUser returns one page of a user's reviews, newest first.
func (s *EngagementService) ListReviewsByUser(ctx context.Context, userID string, req pagination.Request) (pagination.Page[*domain.Review], error) {
	w, err := s.window(req)
	if err != nil {
		return pagination.Page[*domain.Review]{}, err
	}
	rows, err := s.reviews.ListReviewsByUser(ctx, userID, w)
	if err != nil {
		return pagination.Page[*domain.Review]{}, err
	}
	return buildPage(&s.base, w, rows)
}

// MarkWatched records that userID has seen ref. Marking the same item again
// returns the existing row.
func (s *EngagementService) MarkWatched(ctx context.Context, userID string, ref domain.MediaRef) (*domain.Watched, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := requireRef(ref); err != nil {
		return nil, err
	}

	now := s.now()
	candidate := &domain.Watched{ID: s.newID(), UserID: userID, Media: ref, CreatedAt: now, UpdatedAt: now}

	var (
		stored  *domain.Watched
		created bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		stored, created, err = s.watched.MarkWatched(ctx, candidate)
		return err
	})
	if err != nil {
		return nil, s.fail("Failed to mark watched", err, mediaFields(userID, ref)...)
	}

	if created {
		s.publish(ctx, domain.NewWatchedMarkedEvent(stored))
		s.logger.Info("Marked watched", mediaFields(userID, ref)...)
	}
	return stored, nil
}

// RemoveWatched clears userID's watched mark on ref. Nothing to remove is not
// an error.
func (s *EngagementService) RemoveWatched(ctx context.Context, userID string, ref domain.MediaRef) error {
	if err := requireRef(ref); err != nil {
		return err
	}

	var removed *domain.Watched
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		row, err := s.watched.FindWatched(ctx, userID, ref)
		if errors.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.watched.DeleteWatched(ctx, row.ID); err != nil {
			return err
		}
		removed = row
		return nil
	})
	if err != nil {
		return s.fail("Failed to remove watched", err, mediaFields(userID, ref)...)
	}

	if removed != nil {
		s.publish(ctx, domain.NewWatchedRemovedEvent(removed))
	}
	return nil
}

// DeleteWatched removes a watched row by id on behalf of its owner.
func (s *EngagementService) DeleteWatched(ctx context.Context, watchedID, requestingUserID string) error {
	var row *domain.Watched
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		row, err = s.watched.GetWatched(ctx, watchedID)
		if err != nil {
			return err
		}
		if row.UserID != requestingUserID {
			return errors.Forbidden("watched entry belongs to another user")
		}
		return s.watched.DeleteWatched(ctx, watchedID)
	})
	if err != nil {
		return s.fail("Failed to delete watched", err, interfaces.String("watched_id", watchedID))
	}

	s.publish(ctx, domain.NewWatchedRemovedEvent(row))
	return nil
}

// ListWatchedFor returns one page of a user's watched items, newest first.
func (s *EngagementService) ListWatchedFor(ctx context.Context, userID string, req pagination.Request) (pagination.Page[*domain.Watched], error) {
	w, err := s.window(req)
	if err != nil {
		return pagination.Page[*domain.Watched]{}, err
	}
	rows, err := s.watched.ListWatchedByUser(ctx, userID, w)
	if err != nil {
		return pagination.Page[*domain.Watched]{}, err
	}
	return buildPage(&s.base, w, rows)
}

// AddToWatchlist records that userID intends to watch ref. Adding the same
// item again returns the existing entry.
func (s *EngagementService) AddToWatchlist(ctx context.Context, userID string, ref domain.MediaRef) (*domain.WatchlistEntry, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := requireRef(ref); err != nil {
		return nil, err
	}

	now := s.now()
	candidate := &domain.WatchlistEntry{ID: s.newID(), UserID: userID, Media: ref, CreatedAt: now, UpdatedAt: now}

	var (
		stored  *domain.WatchlistEntry
		created bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		stored, created, err = s.watchlist.AddToWatchlist(ctx, candidate)
		return err
	})
	if err != nil {
		return nil, s.fail("Failed to add to watchlist", err, mediaFields(userID, ref)...)
	}

	if created {
		s.publish(ctx, domain.NewWatchlistAddedEvent(stored))
		s.logger.Info("Added to watchlist", mediaFields(userID, ref)...)
	}
	return stored, nil
}

// RemoveFromWatchlist clears userID's watchlist entry for ref. Nothing to
// remove is not an error.
func (s *EngagementService) RemoveFromWatchlist(ctx context.Context, userID string, ref domain.MediaRef) error {
	if err := requireRef(ref); err != nil {
		return err
	}

	var removed *domain.WatchlistEntry
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		row, err := s.watchlist.FindWatchlistEntry(ctx, userID, ref)
		if errors.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.watchlist.DeleteWatchlistEntry(ctx, row.ID); err != nil {
			return err
		}
		removed = row
		return nil
	})
	if err != nil {
		return s.fail("Failed to remove from watchlist", err, mediaFields(userID, ref)...)
	}

	if removed != nil {
		s.publish(ctx, domain.NewWatchlistRemovedEvent(removed))
	}
	return nil
}

// DeleteWatchlistEntry removes a watchlist row by id on behalf of its owner.
func (s *EngagementService) DeleteWatchlistEntry(ctx context.Context, entryID, requestingUserID string) error {
	var row *domain.WatchlistEntry
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		row, err = s.watchlist.GetWatchlistEntry(ctx, entryID)
		if err != nil {
			return err
		}
		if row.UserID != requestingUserID {
			return errors.Forbidden("watchlist entry belongs to another user")
		}
		return s.watchlist.DeleteWatchlistEntry(ctx, entryID)
	})
	if err != nil {
		return s.fail("Failed to delete watchlist entry", err, interfaces.String("watchlist_id", entryID))
	}

	s.publish(ctx, domain.NewWatchlistRemovedEvent(row))
	return nil
}

// ListWatchlistFor returns one page of a user's watchlist, newest first.
func (s *EngagementService) ListWatchlistFor(ctx context.Context, userID string, req pagination.Request) (pagination.Page[*domain.WatchlistEntry], error) {
	w, err := s.window(req)
	if err != nil {
		return pagination.Page[*domain.WatchlistEntry]{}, err
	}
	rows, err := s.watchlist.ListWatchlistByUser(ctx, userID, w)
	if err != nil {
		return pagination.Page[*domain.WatchlistEntry]{}, err
	}
	return buildPage(&s.base, w, rows)
}
