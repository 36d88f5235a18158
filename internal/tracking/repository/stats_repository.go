package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/pkg/errors"
	pkgrepo "github.com/reeltrack/reeltrack/pkg/repository"
)

// GormStatsRepository computes aggregate counts with one round trip. Every
// number comes from a COUNT over live rows.
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

var _ StatsRepository = (*GormStatsRepository)(nil)

type countsRow struct {
	Reviews     int64
	Watched     int64
	Watchlisted int64
	Lists       int64
}

func countWhere(table string, pred sq.Eq) sq.SelectBuilder {
	return sq.Select("COUNT(*)").From(table).Where(pred)
}

// CountsQuery builds the fan-out select for one catalog item.
func CountsQuery(ref domain.MediaRef) (string, []interface{}, error) {
	col := engagementColumn(ref)
	membership := countWhere("list_movies", sq.Eq{"movie_id": ref.ID()})
	if ref.IsTVShow() {
		membership = countWhere("list_tv_shows", sq.Eq{"tv_show_id": ref.ID()})
	}

	return sq.Select().
		Column(sq.Alias(countWhere("reviews", sq.Eq{col: ref.ID()}), "reviews")).
		Column(sq.Alias(countWhere("watched", sq.Eq{col: ref.ID()}), "watched")).
		Column(sq.Alias(countWhere("watchlist", sq.Eq{col: ref.ID()}), "watchlisted")).
		Column(sq.Alias(membership, "lists")).
		PlaceholderFormat(sq.Question).
		ToSql()
}

// UserCountsQuery builds the fan-out select for one user.
func UserCountsQuery(userID string) (string, []interface{}, error) {
	return sq.Select().
		Column(sq.Alias(countWhere("reviews", sq.Eq{"user_id": userID}), "reviews")).
		Column(sq.Alias(countWhere("watched", sq.Eq{"user_id": userID}), "watched")).
		Column(sq.Alias(countWhere("watchlist", sq.Eq{"user_id": userID}), "watchlisted")).
		Column(sq.Alias(countWhere("lists", sq.Eq{"owner_id": userID}), "lists")).
		PlaceholderFormat(sq.Question).
		ToSql()
}

// CountsFor returns review, watched, watchlist and list counts for ref.
func (r *GormStatsRepository) CountsFor(ctx context.Context, ref domain.MediaRef) (domain.Counts, error) {
	query, args, err := CountsQuery(ref)
	if err != nil {
		return domain.Counts{}, errors.Storage("build counts query", err)
	}

	var row countsRow
	if err := pkgrepo.Conn(ctx, r.db).Raw(query, args...).Scan(&row).Error; err != nil {
		return domain.Counts{}, pkgrepo.TranslateError(err, "Counts", ref.String())
	}
	return domain.Counts(row), nil
}

// CountsForUser returns the same aggregates keyed by user.
func (r *GormStatsRepository) CountsForUser(ctx context.Context, userID string) (domain.UserCounts, error) {
	query, args, err := UserCountsQuery(userID)
	if err != nil {
		return domain.UserCounts{}, errors.Storage("build user counts query", err)
	}

	var row countsRow
	if err := pkgrepo.Conn(ctx, r.db).Raw(query, args...).Scan(&row).Error; err != nil {
		return domain.UserCounts{}, pkgrepo.TranslateError(err, "Counts", userID)
	}
	return domain.UserCounts(row), nil
}
