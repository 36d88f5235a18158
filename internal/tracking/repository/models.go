package repository

import (
	"time"

	"github.com/reeltrack/reeltrack/internal/tracking/domain"
)

// Movie is the catalog row for a film.
type Movie struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Title       string  `gorm:"not null;index"`
	Description *string `gorm:"type:text"`
	ReleaseYear int     `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TVShow is the catalog row for a series.
type TVShow struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Title       string  `gorm:"not null;index"`
	Description *string `gorm:"type:text"`
	StartYear   int     `gorm:"not null"`
	EndYear     *int    `gorm:"check:chk_tv_shows_years,end_year IS NULL OR end_year >= start_year"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Review stores one rating. The (movie_id, tv_id, type) triple is guarded by
// a CHECK constraint in addition to the application checks.
type Review struct {
	ID        string  `gorm:"type:varchar(36);primaryKey"`
	UserID    string  `gorm:"type:varchar(64);not null;index:idx_reviews_user_created,priority:1"`
	MovieID   *int64  `gorm:"index"`
	TVID      *int64  `gorm:"column:tv_id;index"`
	Type      string  `gorm:"type:varchar(8);not null;check:chk_reviews_media_ref,(movie_id IS NOT NULL AND tv_id IS NULL AND type = 'MOVIE') OR (movie_id IS NULL AND tv_id IS NOT NULL AND type = 'TVSHOW')"`
	Rating    float64 `gorm:"not null"`
	Comment   *string `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index:idx_reviews_user_created,priority:2"`
	UpdatedAt time.Time

	Movie  *Movie  `gorm:"foreignKey:MovieID;constraint:OnDelete:RESTRICT"`
	TVShow *TVShow `gorm:"foreignKey:TVID;constraint:OnDelete:RESTRICT"`
}

// Watched stores that a user has seen an item. Unique per (user, item).
type Watched struct {
	ID        string  `gorm:"type:varchar(36);primaryKey"`
	UserID    string  `gorm:"type:varchar(64);not null;uniqueIndex:idx_watched_user_movie,priority:1;uniqueIndex:idx_watched_user_tv,priority:1"`
	MovieID   *int64  `gorm:"index;uniqueIndex:idx_watched_user_movie,priority:2"`
	TVID      *int64  `gorm:"column:tv_id;index;uniqueIndex:idx_watched_user_tv,priority:2"`
	Type      string  `gorm:"type:varchar(8);not null;check:chk_watched_media_ref,(movie_id IS NOT NULL AND tv_id IS NULL AND type = 'MOVIE') OR (movie_id IS NULL AND tv_id IS NOT NULL AND type = 'TVSHOW')"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Movie  *Movie  `gorm:"foreignKey:MovieID;constraint:OnDelete:RESTRICT"`
	TVShow *TVShow `gorm:"foreignKey:TVID;constraint:OnDelete:RESTRICT"`
}

// Watchlist stores that a user intends to watch an item. Unique per (user, item).
type Watchlist struct {
	ID        string  `gorm:"type:varchar(36);primaryKey"`
	UserID    string  `gorm:"type:varchar(64);not null;uniqueIndex:idx_watchlist_user_movie,priority:1;uniqueIndex:idx_watchlist_user_tv,priority:1"`
	MovieID   *int64  `gorm:"index;uniqueIndex:idx_watchlist_user_movie,priority:2"`
	TVID      *int64  `gorm:"column:tv_id;index;uniqueIndex:idx_watchlist_user_tv,priority:2"`
	Type      string  `gorm:"type:varchar(8);not null;check:chk_watchlist_media_ref,(movie_id IS NOT NULL AND tv_id IS NULL AND type = 'MOVIE') OR (movie_id IS NULL AND tv_id IS NOT NULL AND type = 'TVSHOW')"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Movie  *Movie  `gorm:"foreignKey:MovieID;constraint:OnDelete:RESTRICT"`
	TVShow *TVShow `gorm:"foreignKey:TVID;constraint:OnDelete:RESTRICT"`
}

// List is a user curated collection.
type List struct {
	ID          string  `gorm:"type:varchar(36);primaryKey"`
	Name        string  `gorm:"not null"`
	Description *string `gorm:"type:text"`
	OwnerID     string  `gorm:"type:varchar(64);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListMovie is the explicit join row between a list and a movie. The
// composite primary key gives set semantics.
type ListMovie struct {
	ListID    string `gorm:"type:varchar(36);primaryKey"`
	MovieID   int64  `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time

	List  *List  `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
	Movie *Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
}

// ListTVShow is the explicit join row between a list and a tv show.
type ListTVShow struct {
	ListID    string `gorm:"type:varchar(36);primaryKey"`
	TVShowID  int64  `gorm:"column:tv_show_id;primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time

	List   *List   `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
	TVShow *TVShow `gorm:"foreignKey:TVShowID;constraint:OnDelete:CASCADE"`
}

func (Movie) TableName() string      { return "movies" }
func (TVShow) TableName() string     { return "tv_shows" }
func (Review) TableName() string     { return "reviews" }
func (Watched) TableName() string    { return "watched" }
func (Watchlist) TableName() string  { return "watchlist" }
func (List) TableName() string       { return "lists" }
func (ListMovie) TableName() string  { return "list_movies" }
func (ListTVShow) TableName() string { return "list_tv_shows" }

// Models returns every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&Movie{},
		&TVShow{},
		&Review{},
		&Watched{},
		&Watchlist{},
		&List{},
		&ListMovie{},
		&ListTVShow{},
	}
}

func movieToModel(m *domain.Movie) *Movie {
	return &Movie{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (m *Movie) toDomain() *domain.Movie {
	return &domain.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func tvShowToModel(s *domain.TVShow) *TVShow {
	return &TVShow{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		StartYear:   s.StartYear,
		EndYear:     s.EndYear,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (s *TVShow) toDomain() *domain.TVShow {
	return &domain.TVShow{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		StartYear:   s.StartYear,
		EndYear:     s.EndYear,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func reviewToModel(r *domain.Review) *Review {
	movieID, tvID, kind := r.Media.Columns()
	return &Review{
		ID:        r.ID,
		UserID:    r.UserID,
		MovieID:   movieID,
		TVID:      tvID,
		Type:      string(kind),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *Review) toDomain() (*domain.Review, error) {
	ref, err := domain.MediaRefFromColumns(r.MovieID, r.TVID, domain.ShowType(r.Type))
	if err != nil {
		return nil, err
	}
	return &domain.Review{
		ID:        r.ID,
		UserID:    r.UserID,
		Media:     ref,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func watchedToModel(w *domain.Watched) *Watched {
	movieID, tvID, kind := w.Media.Columns()
	return &Watched{
		ID:        w.ID,
		UserID:    w.UserID,
		MovieID:   movieID,
		TVID:      tvID,
		Type:      string(kind),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func (w *Watched) toDomain() (*domain.Watched, error) {
	ref, err := domain.MediaRefFromColumns(w.MovieID, w.TVID, domain.ShowType(w.Type))
	if err != nil {
		return nil, err
	}
	return &domain.Watched{
		ID:        w.ID,
		UserID:    w.UserID,
		Media:     ref,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}, nil
}

func watchlistToModel(e *domain.WatchlistEntry) *Watchlist {
	movieID, tvID, kind := e.Media.Columns()
	return &Watchlist{
		ID:        e.ID,
		UserID:    e.UserID,
		MovieID:   movieID,
		TVID:      tvID,
		Type:      string(kind),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (e *Watchlist) toDomain() (*domain.WatchlistEntry, error) {
	ref, err := domain.MediaRefFromColumns(e.MovieID, e.TVID, domain.ShowType(e.Type))
	if err != nil {
		return nil, err
	}
	return &domain.WatchlistEntry{
		ID:        e.ID,
		UserID:    e.UserID,
		Media:     ref,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}, nil
}

func listToModel(l *domain.List) *List {
	return &List{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		OwnerID:     l.OwnerID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func (l *List) toDomain() *domain.List {
	return &domain.List{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		OwnerID:     l.OwnerID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
