package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reeltrack/reeltrack/internal/tracking/constants"
	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/pkg/errors"
	"github.com/reeltrack/reeltrack/pkg/pagination"
	pkgrepo "github.com/reeltrack/reeltrack/pkg/repository"
)

// GormEngagementRepository implements the review, watched and watchlist
// repositories using GORM.
type GormEngagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository.
func NewEngagementRepository(db *gorm.DB) *GormEngagementRepository {
	return &GormEngagementRepository{db: db}
}

var (
	_ ReviewRepository    = (*GormEngagementRepository)(nil)
	_ WatchedRepository   = (*GormEngagementRepository)(nil)
	_ WatchlistRepository = (*GormEngagementRepository)(nil)
)

// translateInsert maps a failed engagement insert. A foreign key failure
// means the catalog item vanished after it was resolved.
func translateInsert(err error, resource string, ref domain.MediaRef) error {
	if pkgrepo.IsForeignKeyViolation(err) {
		return errors.NotFound(catalogResource(ref), ref.ID())
	}
	return pkgrepo.TranslateError(err, resource, nil)
}

// insertIgnoringDuplicates inserts model and reports whether a row was
// written. Unique index collisions leave the table unchanged.
func insertIgnoringDuplicates(ctx context.Context, db *gorm.DB, model interface{}) (bool, error) {
	res := pkgrepo.Conn(ctx, db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func findByUserAndRef[T any](ctx context.Context, db *gorm.DB, resource, userID string, ref domain.MediaRef) (*T, error) {
	var model T
	err := pkgrepo.Conn(ctx, db).
		Where("user_id = ? AND "+engagementColumn(ref)+" = ?", userID, ref.ID()).
		First(&model).Error
	if err != nil {
		return nil, pkgrepo.TranslateError(err, resource, ref.String())
	}
	return &model, nil
}

// CreateReview inserts a review. Reviews are not deduplicated.
func (r *GormEngagementRepository) CreateReview(ctx context.Context, review *domain.Review) error {
	model := reviewToModel(review)
	if err := pkgrepo.Conn(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateInsert(err, constants.ResourceReview, review.Media)
	}
	return nil
}

// GetReview retrieves a review by ID.
func (r *GormEngagementRepository) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	model, err := pkgrepo.FindByID[Review](ctx, r.db, constants.ResourceReview, id)
	if err != nil {
		return nil, err
	}
	return model.toDomain()
}

// UpdateReview writes the mutable review fields.
func (r *GormEngagementRepository) UpdateReview(ctx context.Context, review *domain.Review) error {
	res := pkgrepo.Conn(ctx, r.db).
		Model(&Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"rating":     review.Rating,
			"comment":    review.Comment,
			"updated_at": review.UpdatedAt,
		})
	if res.Error != nil {
		return pkgrepo.TranslateError(res.Error, constants.ResourceReview, review.ID)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound(constants.ResourceReview, review.ID)
	}
	return nil
}

// DeleteReview deletes a review by ID.
func (r *GormEngagementRepository) DeleteReview(ctx context.Context, id string) error {
	return pkgrepo.Delete[Review](ctx, r.db, constants.ResourceReview, id)
}

// ListReviewsForMedia returns reviews of one item, newest first.
func (r *GormEngagementRepository) ListReviewsForMedia(ctx context.Context, ref domain.MediaRef, w pagination.Window) ([]*domain.Review, error) {
	rows, err := pkgrepo.Page[Review](ctx, r.db, constants.ResourceReview, w,
		engagementColumn(ref)+" = ? AND type = ?", ref.ID(), string(ref.Kind()))
	if err != nil {
		return nil, err
	}
	return reviewsToDomain(rows)
}

// ListReviewsByUser returns a user's reviews, newest first.
func (r *GormEngagementRepository) ListReviewsByUser(ctx context.Context, userID string, w pagination.Window) ([]*domain.Review, error) {
	rows, err := pkgrepo.Page[Review](ctx, r.db, constants.ResourceReview, w, "user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	return reviewsToDomain(rows)
}

// MarkWatched inserts the row or returns the one already stored.
func (r *GormEngagementRepository) MarkWatched(ctx context.Context, w *domain.Watched) (*domain.Watched, bool, error) {
	created, err := insertIgnoringDuplicates(ctx, r.db, watchedToModel(w))
	if err != nil {
		return nil, false, translateInsert(err, constants.ResourceWatched, w.Media)
	}
	if created {
		return w, true, nil
	}
	existing, err := r.FindWatched(ctx, w.UserID, w.Media)
	return existing, false, err
}

// GetWatched retrieves a watched row by ID.
func (r *GormEngagementRepository) GetWatched(ctx context.Context, id string) (*domain.Watched, error) {
	model, err := pkgrepo.FindByID[Watched](ctx, r.db, constants.ResourceWatched, id)
	if err != nil {
		return nil, err
	}
	return model.toDomain()
}

// FindWatched retrieves the watched row for a user and item.
func (r *GormEngagementRepository) FindWatched(ctx context.Context, userID string, ref domain.MediaRef) (*domain.Watched, error) {
	model, err := findByUserAndRef[Watched](ctx, r.db, constants.ResourceWatched, userID, ref)
	if err != nil {
		return nil, err
	}
	return model.toDomain()
}

// DeleteWatched deletes a watched row by ID.
func (r *GormEngagementRepository) DeleteWatched(ctx context.Context, id string) error {
	return pkgrepo.Delete[Watched](ctx, r.db, constants.ResourceWatched, id)
}

// ListWatchedByUser returns a user's watched rows, newest first.
func (r *GormEngagementRepository) ListWatchedByUser(ctx context.Context, userID string, w pagination.Window) ([]*domain.Watched, error) {
	rows, err := pkgrepo.Page[Watched](ctx, r.db, constants.ResourceWatched, w, "user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Watched, 0, len(rows))
	for i := range rows {
		item, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// AddToWatchlist inserts the row or returns the one already stored.
func (r *GormEngagementRepository) AddToWatchlist(ctx context.Context, e *domain.WatchlistEntry) (*domain.WatchlistEntry, bool, error) {
	created, err := insertIgnoringDuplicates(ctx, r.db, watchlistToModel(e))
	if err != nil {
		return nil, false, translateInsert(err, constants.ResourceWatchlist, e.Media)
	}
	if created {
		return e, true, nil
	}
	existing, err := r.FindWatchlistEntry(ctx, e.UserID, e.Media)
	return existing, false, err
}

// GetWatchlistEntry retrieves a watchlist row by ID.
func (r *GormEngagementRepository) GetWatchlistEntry(ctx context.Context, id string) (*domain.WatchlistEntry, error) {
	model, err := pkgrepo.FindByID[Watchlist](ctx, r.db, constants.ResourceWatchlist, id)
	if err != nil {
		return nil, err
	}
	return model.toDomain()
}

// FindWatchlistEntry retrieves the watchlist row for a user and item.
func (r *GormEngagementRepository) FindWatchlistEntry(ctx context.Context, userID string, ref domain.MediaRef) (*domain.WatchlistEntry, error) {
	model, err := findByUserAndRef[Watchlist](ctx, r.db, constants.ResourceWatchlist, userID, ref)
	if err != nil {
		return nil, err
	}
	return model.toDomain()
}

// DeleteWatchlistEntry deletes a watchlist row by ID.
func (r *GormEngagementRepository) DeleteWatchlistEntry(ctx context.Context, id string) error {
	return pkgrepo.Delete[Watchlist](ctx, r.db, constants.ResourceWatchlist, id)
}

// ListWatchlistByUser returns a user's watchlist, newest first.
func (r *GormEngagementRepository) ListWatchlistByUser(ctx context.Context, userID string, w pagination.Window) ([]*domain.WatchlistEntry, error) {
	rows, err := pkgrepo.Page[Watchlist](ctx, r.db, constants.ResourceWatchlist, w, "user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.WatchlistEntry, 0, len(rows))
	for i := range rows {
		item, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func reviewsToDomain(rows []Review) ([]*domain.Review, error) {
	out := make([]*domain.Review, 0, len(rows))
	for i := range rows {
		item, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
