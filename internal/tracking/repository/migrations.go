package repository

import (
	"gorm.io/gorm"

	"github.com/reeltrack/reeltrack/pkg/database"
)

// Migrations returns the tracking schema history in order.
func Migrations() []database.MigrationEntry {
	return []database.MigrationEntry{
		{
			Version: "20250101_001",
			Name:    "Create tracking schema",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(Models()...)
			},
		},
		{
			Version: "20250101_002",
			Name:    "Add read path indexes",
			Up: func(tx *gorm.DB) error {
				return database.ExecAll(tx,
					"CREATE INDEX IF NOT EXISTS idx_reviews_movie_created ON reviews(movie_id, created_at)",
					"CREATE INDEX IF NOT EXISTS idx_reviews_tv_created ON reviews(tv_id, created_at)",
					"CREATE INDEX IF NOT EXISTS idx_watched_user_created ON watched(user_id, created_at)",
					"CREATE INDEX IF NOT EXISTS idx_watchlist_user_created ON watchlist(user_id, created_at)",
					"CREATE INDEX IF NOT EXISTS idx_lists_owner_created ON lists(owner_id, created_at)",
					"CREATE INDEX IF NOT EXISTS idx_list_movies_list_created ON list_movies(list_id, created_at)",
					"CREATE INDEX IF NOT EXISTS idx_list_tv_shows_list_created ON list_tv_shows(list_id, created_at)",
				)
			},
		},
	}
}
