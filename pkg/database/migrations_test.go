package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Driver = DriverSQLite
	cfg.Path = filepath.Join(t.TempDir(), "migrate.db")

	db, cleanup, err := Open(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return db
}

func TestMigratorAppliesInVersionOrder(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	var order []string
	migrations := []MigrationEntry{
		{Version: "002", Name: "index widgets", Up: func(tx *gorm.DB) error {
			order = append(order, "002")
			return ExecAll(tx, "CREATE INDEX IF NOT EXISTS idx_widgets_name ON widgets(name)")
		}},
		{Version: "001", Name: "create widgets", Up: func(tx *gorm.DB) error {
			order = append(order, "001")
			return tx.AutoMigrate(&widget{})
		}},
	}

	m := NewMigrator(db, migrations, zaptest.NewLogger(t))

	pending, err := m.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, m.Migrate(ctx))
	assert.Equal(t, []string{"001", "002"}, order)

	// second run is a no-op
	require.NoError(t, m.Migrate(ctx))
	assert.Equal(t, []string{"001", "002"}, order)

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	for _, s := range statuses {
		assert.NotNil(t, s.AppliedAt, s.Version)
	}
}

func TestMigratorRollsBackFailedMigration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	m := NewMigrator(db, []MigrationEntry{
		{Version: "001", Name: "broken", Up: func(tx *gorm.DB) error {
			return tx.Exec("CREATE TABLE broken (").Error
		}},
	}, nil)

	err := m.Migrate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001")

	pending, err := m.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestDSN(t *testing.T) {
	cfg := DefaultConfig()
	assert.Contains(t, cfg.DSN(), "dbname=reeltrack")

	cfg.Driver = DriverSQLite
	cfg.Path = "/tmp/x.db"
	assert.Contains(t, cfg.DSN(), "_foreign_keys=1")

	cfg.Driver = "oracle"
	_, _, err := Open(cfg, nil)
	assert.Error(t, err)
}
