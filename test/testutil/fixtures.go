package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/internal/tracking/repository"
)

// StepClock returns a clock that advances one second per call so rows get
// distinct, increasing timestamps.
func StepClock(start time.Time) func() time.Time {
	current := start.Add(-time.Second)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

// CreateTestMovie inserts a movie.
func CreateTestMovie(t *testing.T, catalog repository.CatalogRepository, title string, year int) *domain.Movie {
	t.Helper()
	movie := &domain.Movie{Title: title, ReleaseYear: year}
	require.NoError(t, catalog.CreateMovie(context.Background(), movie))
	return movie
}

// CreateTestTVShow inserts a tv show. endYear 0 means ongoing.
func CreateTestTVShow(t *testing.T, catalog repository.CatalogRepository, title string, start, endYear int) *domain.TVShow {
	t.Helper()
	show := &domain.TVShow{Title: title, StartYear: start}
	if endYear != 0 {
		show.EndYear = &endYear
	}
	require.NoError(t, catalog.CreateTVShow(context.Background(), show))
	return show
}

// MovieRef resolves a movie reference against catalog.
func MovieRef(t *testing.T, catalog domain.CatalogReader, id int64) domain.MediaRef {
	t.Helper()
	ref, err := domain.NewResolver(catalog).ResolveMovie(context.Background(), id)
	require.NoError(t, err)
	return ref
}

// TVShowRef resolves a tv show reference against catalog.
func TVShowRef(t *testing.T, catalog domain.CatalogReader, id int64) domain.MediaRef {
	t.Helper()
	ref, err := domain.NewResolver(catalog).ResolveTVShow(context.Background(), id)
	require.NoError(t, err)
	return ref
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 { return &v }

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
