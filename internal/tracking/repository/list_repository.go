package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reeltrack/reeltrack/internal/tracking/constants"
	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/pkg/errors"
	"github.com/reeltrack/reeltrack/pkg/pagination"
	pkgrepo "github.com/reeltrack/reeltrack/pkg/repository"
)

// GormListRepository implements ListRepository using GORM.
type GormListRepository struct {
	db *gorm.DB
}

// NewListRepository creates a new list repository.
func NewListRepository(db *gorm.DB) *GormListRepository {
	return &GormListRepository{db: db}
}

var _ ListRepository = (*GormListRepository)(nil)

// CreateList creates a new list.
func (r *GormListRepository) CreateList(ctx context.Context, list *domain.List) error {
	return pkgrepo.Create(ctx, r.db, constants.ResourceList, listToModel(list))
}

// GetList retrieves a list by ID.
func (r *GormListRepository) GetList(ctx context.Context, id string) (*domain.List, error) {
	model, err := pkgrepo.FindByID[List](ctx, r.db, constants.ResourceList, id)
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// UpdateList writes name and description.
func (r *GormListRepository) UpdateList(ctx context.Context, list *domain.List) error {
	res := pkgrepo.Conn(ctx, r.db).
		Model(&List{}).
		Where("id = ?", list.ID).
		Updates(map[string]interface{}{
			"name":        list.Name,
			"description": list.Description,
			"updated_at":  list.UpdatedAt,
		})
	if res.Error != nil {
		return pkgrepo.TranslateError(res.Error, constants.ResourceList, list.ID)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound(constants.ResourceList, list.ID)
	}
	return nil
}

// DeleteList deletes both membership sets and then the list.
func (r *GormListRepository) DeleteList(ctx context.Context, id string) error {
	conn := pkgrepo.Conn(ctx, r.db)
	if err := conn.Where("list_id = ?", id).Delete(&ListMovie{}).Error; err != nil {
		return pkgrepo.TranslateError(err, constants.ResourceList, id)
	}
	if err := conn.Where("list_id = ?", id).Delete(&ListTVShow{}).Error; err != nil {
		return pkgrepo.TranslateError(err, constants.ResourceList, id)
	}
	return pkgrepo.Delete[List](ctx, r.db, constants.ResourceList, id)
}

// ListsByOwner returns a user's lists, newest first.
func (r *GormListRepository) ListsByOwner(ctx context.Context, ownerID string, w pagination.Window) ([]*domain.List, error) {
	rows, err := pkgrepo.Page[List](ctx, r.db, constants.ResourceList, w, "owner_id = ?", ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.List, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

// AddMovie adds a movie to the list unless it is already a member.
func (r *GormListRepository) AddMovie(ctx context.Context, listID string, movieID int64, at time.Time) (bool, error) {
	return r.addMember(ctx, &ListMovie{ListID: listID, MovieID: movieID, CreatedAt: at}, constants.ResourceMovie, movieID)
}

// AddTVShow adds a tv show to the list unless it is already a member.
func (r *GormListRepository) AddTVShow(ctx context.Context, listID string, tvShowID int64, at time.Time) (bool, error) {
	return r.addMember(ctx, &ListTVShow{ListID: listID, TVShowID: tvShowID, CreatedAt: at}, constants.ResourceTVShow, tvShowID)
}

func (r *GormListRepository) addMember(ctx context.Context, member interface{}, resource string, id int64) (bool, error) {
	res := pkgrepo.Conn(ctx, r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(member)
	if res.Error != nil {
		if pkgrepo.IsForeignKeyViolation(res.Error) {
			return false, errors.NotFound(resource, id)
		}
		return false, pkgrepo.TranslateError(res.Error, constants.ResourceList, nil)
	}
	return res.RowsAffected > 0, nil
}

// RemoveMovie removes a movie membership if present.
func (r *GormListRepository) RemoveMovie(ctx context.Context, listID string, movieID int64) (bool, error) {
	res := pkgrepo.Conn(ctx, r.db).Where("list_id = ? AND movie_id = ?", listID, movieID).Delete(&ListMovie{})
	if res.Error != nil {
		return false, pkgrepo.TranslateError(res.Error, constants.ResourceList, listID)
	}
	return res.RowsAffected > 0, nil
}

// RemoveTVShow removes a tv show membership if present.
func (r *GormListRepository) RemoveTVShow(ctx context.Context, listID string, tvShowID int64) (bool, error) {
	res := pkgrepo.Conn(ctx, r.db).Where("list_id = ? AND tv_show_id = ?", listID, tvShowID).Delete(&ListTVShow{})
	if res.Error != nil {
		return false, pkgrepo.TranslateError(res.Error, constants.ResourceList, listID)
	}
	return res.RowsAffected > 0, nil
}

// Movies returns the list's movies in insertion order.
func (r *GormListRepository) Movies(ctx context.Context, listID string) ([]*domain.Movie, error) {
	var rows []Movie
	err := pkgrepo.Conn(ctx, r.db).
		Model(&Movie{}).
		Select("movies.*").
		Joins("JOIN list_movies ON list_movies.movie_id = movies.id").
		Where("list_movies.list_id = ?", listID).
		Order("list_movies.created_at ASC").
		Order("movies.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgrepo.TranslateError(err, constants.ResourceList, listID)
	}

	out := make([]*domain.Movie, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

// TVShows returns the list's tv shows in insertion order.
func (r *GormListRepository) TVShows(ctx context.Context, listID string) ([]*domain.TVShow, error) {
	var rows []TVShow
	err := pkgrepo.Conn(ctx, r.db).
		Model(&TVShow{}).
		Select("tv_shows.*").
		Joins("JOIN list_tv_shows ON list_tv_shows.tv_show_id = tv_shows.id").
		Where("list_tv_shows.list_id = ?", listID).
		Order("list_tv_shows.created_at ASC").
		Order("tv_shows.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgrepo.TranslateError(err, constants.ResourceList, listID)
	}

	out := make([]*domain.TVShow, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}
