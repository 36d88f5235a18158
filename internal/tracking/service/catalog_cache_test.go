package service_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/internal/tracking/service"
	"github.com/reeltrack/reeltrack/pkg/cache"
)

// MockCatalog is a mock for the catalog reader
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) MovieExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalog) TVShowExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newCachedCatalog(t *testing.T) (*service.CachedCatalog, *MockCatalog) {
	t.Helper()
	memory := cache.NewInMemoryCache(0)
	t.Cleanup(memory.Close)
	next := new(MockCatalog)
	return service.NewCachedCatalog(next, memory, time.Minute), next
}

func TestCachedCatalogRemembersHits(t *testing.T) {
	ctx := context.Background()
	cached, next := newCachedCatalog(t)
	next.On("MovieExists", mock.Anything, int64(1)).Return(true, nil).Once()

	for i := 0; i < 3; i++ {
		ok, err := cached.MovieExists(ctx, 1)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	next.AssertExpectations(t)
}

func TestCachedCatalogDoesNotRememberMisses(t *testing.T) {
	ctx := context.Background()
	cached, next := newCachedCatalog(t)
	next.On("TVShowExists", mock.Anything, int64(2)).Return(false, nil).Once()
	next.On("TVShowExists", mock.Anything, int64(2)).Return(true, nil).Once()

	ok, err := cached.TVShowExists(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = cached.TVShowExists(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	next.AssertExpectations(t)
}

func TestCachedCatalogInvalidate(t *testing.T) {
	ctx := context.Background()
	cached, next := newCachedCatalog(t)
	next.On("MovieExists", mock.Anything, int64(3)).Return(true, nil).Once()
	next.On("MovieExists", mock.Anything, int64(3)).Return(false, nil).Once()

	ok, _ := cached.MovieExists(ctx, 3)
	require.True(t, ok)

	ref, err := domain.MediaRefFromColumns(int64Ptr(3), nil, domain.ShowTypeMovie)
	require.NoError(t, err)
	cached.Invalidate(ctx, ref)

	ok, err = cached.MovieExists(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)
	next.AssertExpectations(t)
}

func TestCachedCatalogKeepsKindsApart(t *testing.T) {
	ctx := context.Background()
	cached, next := newCachedCatalog(t)
	next.On("MovieExists", mock.Anything, int64(4)).Return(true, nil).Once()
	next.On("TVShowExists", mock.Anything, int64(4)).Return(false, stderrors.New("db down")).Once()

	ok, err := cached.MovieExists(ctx, 4)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = cached.TVShowExists(ctx, 4)
	assert.Error(t, err)
	next.AssertExpectations(t)
}

func int64Ptr(v int64) *int64 { return &v }
