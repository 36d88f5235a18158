package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	pkgerrors "github.com/reeltrack/reeltrack/pkg/errors"
	"github.com/reeltrack/reeltrack/pkg/pagination"
)

// TranslateError maps gorm and driver errors onto the application taxonomy.
// Errors that already carry a type pass through unchanged.
func TranslateError(err error, resource string, id any) error {
	switch {
	case err == nil:
		return nil
	case pkgerrors.TypeOf(err) != "":
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgerrors.NotFound(resource, id)
	case errors.Is(err, gorm.ErrDuplicatedKey) || pkgerrors.IsDuplicateError(err):
		return pkgerrors.Wrap(pkgerrors.ErrorTypeConflict, fmt.Sprintf("%s already exists", resource), err)
	case IsForeignKeyViolation(err):
		return pkgerrors.Wrap(pkgerrors.ErrorTypeConflict, fmt.Sprintf("%s %v is still referenced", resource, id), err)
	case pkgerrors.IsCheckConstraintError(err):
		return pkgerrors.InvalidReference(err)
	default:
		return pkgerrors.Storage(fmt.Sprintf("%s query failed", resource), err)
	}
}

// IsForeignKeyViolation reports whether err is a referential integrity failure.
func IsForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || pkgerrors.IsForeignKeyError(err)
}

// Create creates a new entity in the database.
func Create[T any](ctx context.Context, db *gorm.DB, resource string, entity *T) error {
	if err := Conn(ctx, db).Create(entity).Error; err != nil {
		return TranslateError(err, resource, nil)
	}
	return nil
}

// FindByID finds an entity by its ID. It preloads specified associations.
func FindByID[T any](ctx context.Context, db *gorm.DB, resource string, id any, preloads ...string) (*T, error) {
	var entity T
	query := Conn(ctx, db)
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	if err := query.First(&entity, "id = ?", id).Error; err != nil {
		return nil, TranslateError(err, resource, id)
	}
	return &entity, nil
}

// Exists reports whether a row with the given ID is present.
func Exists[T any](ctx context.Context, db *gorm.DB, resource string, id any) (bool, error) {
	var count int64
	var entity T
	if err := Conn(ctx, db).Model(&entity).Where("id = ?", id).Limit(1).Count(&count).Error; err != nil {
		return false, TranslateError(err, resource, id)
	}
	return count > 0, nil
}

// Update updates an entity in the database.
func Update[T any](ctx context.Context, db *gorm.DB, resource string, entity *T) error {
	if err := Conn(ctx, db).Save(entity).Error; err != nil {
		return TranslateError(err, resource, nil)
	}
	return nil
}

// Delete removes an entity from the database by its ID.
func Delete[T any](ctx context.Context, db *gorm.DB, resource string, id any) error {
	var entity T
	result := Conn(ctx, db).Delete(&entity, "id = ?", id)
	if result.Error != nil {
		return TranslateError(result.Error, resource, id)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.NotFound(resource, id)
	}
	return nil
}

// Page fetches one window of rows matching query, newest first. One extra
// row is read so the caller can tell whether another page exists.
func Page[T any](ctx context.Context, db *gorm.DB, resource string, w pagination.Window, query string, args ...interface{}) ([]T, error) {
	var entities []T
	err := Conn(ctx, db).
		Where(query, args...).
		Order("created_at DESC").
		Order("id DESC").
		Limit(w.Limit + 1).
		Offset(w.Offset).
		Find(&entities).Error
	if err != nil {
		return nil, TranslateError(err, resource, nil)
	}
	return entities, nil
}

// Count returns the number of entities matching query.
func Count[T any](ctx context.Context, db *gorm.DB, resource string, query string, args ...interface{}) (int64, error) {
	var count int64
	var entity T
	if err := Conn(ctx, db).Model(&entity).Where(query, args...).Count(&count).Error; err != nil {
		return 0, TranslateError(err, resource, nil)
	}
	return count, nil
}
