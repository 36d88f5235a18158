package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/reeltrack/reeltrack/internal/tracking/repository"
	"github.com/reeltrack/reeltrack/pkg/database"
)

// Tables lists tracking tables children first, for truncation.
var Tables = []string{
	"list_movies", "list_tv_shows", "lists",
	"reviews", "watched", "watchlist",
	"movies", "tv_shows",
}

// NewTestDB opens a migrated SQLite database in a temp file with foreign
// keys enforced. A file is used so every pooled connection sees one schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := database.DefaultConfig()
	cfg.Driver = database.DriverSQLite
	cfg.Path = filepath.Join(t.TempDir(), "reeltrack_test.db")

	db, cleanup, err := database.Open(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	migrate(t, db)
	return db
}

func migrate(t *testing.T, db *gorm.DB) {
	t.Helper()
	m := database.NewMigrator(db, repository.Migrations(), zaptest.NewLogger(t))
	require.NoError(t, m.Migrate(context.Background()))
}
