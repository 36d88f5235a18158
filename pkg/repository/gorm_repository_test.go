package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reeltrack/reeltrack/pkg/database"
	pkgerrors "github.com/reeltrack/reeltrack/pkg/errors"
	"github.com/reeltrack/reeltrack/pkg/pagination"
	"github.com/reeltrack/reeltrack/pkg/repository"
)

type note struct {
	ID        string `gorm:"primaryKey"`
	Owner     string `gorm:"not null;index"`
	Body      string
	CreatedAt time.Time
}

func setup(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := database.DefaultConfig()
	cfg.Driver = database.DriverSQLite
	cfg.Path = filepath.Join(t.TempDir(), "repo.db")

	db, cleanup, err := database.Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	require.NoError(t, db.AutoMigrate(&note{}))
	return db
}

func TestCRUDHelpers(t *testing.T) {
	db := setup(t)
	ctx := context.Background()

	n := &note{ID: "n1", Owner: "u1", Body: "hello", CreatedAt: time.Now()}
	require.NoError(t, repository.Create(ctx, db, "Note", n))

	err := repository.Create(ctx, db, "Note", &note{ID: "n1", Owner: "u1"})
	assert.True(t, pkgerrors.IsConflict(err), "got %v", err)

	found, err := repository.FindByID[note](ctx, db, "Note", "n1")
	require.NoError(t, err)
	assert.Equal(t, "hello", found.Body)

	_, err = repository.FindByID[note](ctx, db, "Note", "missing")
	assert.True(t, pkgerrors.IsNotFound(err))

	ok, err := repository.Exists[note](ctx, db, "Note", "n1")
	require.NoError(t, err)
	assert.True(t, ok)

	found.Body = "edited"
	require.NoError(t, repository.Update(ctx, db, "Note", found))

	count, err := repository.Count[note](ctx, db, "Note", "owner = ?", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repository.Delete[note](ctx, db, "Note", "n1"))
	assert.True(t, pkgerrors.IsNotFound(repository.Delete[note](ctx, db, "Note", "n1")))
}

func TestPageOrdersNewestFirst(t *testing.T) {
	db := setup(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repository.Create(ctx, db, "Note", &note{
			ID: id, Owner: "u1", CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	rows, err := repository.Page[note](ctx, db, "Note", pagination.Window{Offset: 0, Limit: 2}, "owner = ?", "u1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "c", rows[0].ID)
	assert.Equal(t, "b", rows[1].ID)
}

func TestWithinTransactionRollsBack(t *testing.T) {
	db := setup(t)
	ctx := context.Background()
	tr := repository.NewTransactor(db)
	boom := errors.New("boom")

	err := tr.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repository.Create(ctx, db, "Note", &note{ID: "x", Owner: "u1"}))
		return tr.WithinTransaction(ctx, func(ctx context.Context) error {
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	ok, err := repository.Exists[note](ctx, db, "Note", "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, repository.TranslateError(nil, "Note", 1))
	assert.True(t, pkgerrors.IsNotFound(repository.TranslateError(gorm.ErrRecordNotFound, "Note", 1)))
	assert.True(t, pkgerrors.IsConflict(repository.TranslateError(gorm.ErrDuplicatedKey, "Note", 1)))
	assert.True(t, pkgerrors.IsConflict(repository.TranslateError(gorm.ErrForeignKeyViolated, "Movie", 1)))
	assert.True(t, pkgerrors.IsInvalidReference(repository.TranslateError(errors.New("CHECK constraint failed: chk_reviews_media_ref"), "Review", nil)))

	cause := errors.New("connection reset")
	err := repository.TranslateError(cause, "Note", 1)
	assert.True(t, pkgerrors.IsStorage(err))
	assert.ErrorIs(t, err, cause)

	forbidden := pkgerrors.Forbidden("nope")
	assert.Same(t, forbidden, repository.TranslateError(forbidden, "Note", 1))
}
