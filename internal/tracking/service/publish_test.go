package service_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/internal/tracking/repository"
	"github.com/reeltrack/reeltrack/internal/tracking/service"
	"github.com/reeltrack/reeltrack/pkg/config"
	"github.com/reeltrack/reeltrack/pkg/interfaces"
	"github.com/reeltrack/reeltrack/pkg/logger"
	"github.com/reeltrack/reeltrack/pkg/pagination"
	pkgrepo "github.com/reeltrack/reeltrack/pkg/repository"
	"github.com/reeltrack/reeltrack/test/testutil"
)

// MockPublisher is a mock for the event publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event interfaces.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestPublishFailureDoesNotFailTheWrite(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	core, logs := observer.New(zapcore.InfoLevel)

	catalog := repository.NewCatalogRepository(db)
	engagement := repository.NewEngagementRepository(db)
	paginator, err := pagination.NewPaginator([]byte(config.DefaultCursorKey), pagination.Options{})
	require.NoError(t, err)

	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e interfaces.Event) bool {
		return e.EventType() == domain.EventReviewRecorded
	})).Return(stderrors.New("nats: no responders available for request"))

	svc := service.NewEngagementService(pkgrepo.NewTransactor(db), catalog, engagement, engagement, engagement,
		paginator, publisher, logger.Wrap(zap.New(core)))

	movie := testutil.CreateTestMovie(t, catalog, "Inception", 2010)
	ref := testutil.MovieRef(t, catalog, movie.ID)

	review, err := svc.RecordReview(ctx, "u1", ref, 9, nil)
	require.NoError(t, err)

	stored, err := svc.GetReview(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.0, stored.Rating)

	failures := logs.FilterMessage("Failed to publish event").All()
	require.Len(t, failures, 1)
	assert.Equal(t, zapcore.ErrorLevel, failures[0].Level)
	assert.Equal(t, domain.EventReviewRecorded, failures[0].ContextMap()["event_type"])
	publisher.AssertExpectations(t)
}

func TestNothingPublishedWhenWriteFails(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	catalog := repository.NewCatalogRepository(db)
	engagement := repository.NewEngagementRepository(db)
	paginator, err := pagination.NewPaginator([]byte(config.DefaultCursorKey), pagination.Options{})
	require.NoError(t, err)

	publisher := new(MockPublisher)
	svc := service.NewEngagementService(pkgrepo.NewTransactor(db), catalog, engagement, engagement, engagement,
		paginator, publisher, logger.NewNoop())

	ref, err := domain.MediaRefFromColumns(testutil.Int64Ptr(42), nil, domain.ShowTypeMovie)
	require.NoError(t, err)

	_, err = svc.MarkWatched(ctx, "u1", ref)
	require.Error(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
