package repository_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/internal/tracking/repository"
	"github.com/reeltrack/reeltrack/pkg/errors"
	"github.com/reeltrack/reeltrack/pkg/pagination"
	pkgrepo "github.com/reeltrack/reeltrack/pkg/repository"
	"github.com/reeltrack/reeltrack/test/testutil"
)

type TrackingRepositoryTestSuite struct {
	suite.Suite
	postgres bool
	pg       *testutil.PostgresContainer

	ctx        context.Context
	db         *gorm.DB
	catalog    *repository.GormCatalogRepository
	engagement *repository.GormEngagementRepository
	lists      *repository.GormListRepository
	stats      *repository.GormStatsRepository
	tx         *pkgrepo.Transactor
	clock      func() time.Time
}

func (s *TrackingRepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	if s.postgres {
		s.pg = testutil.SetupPostgresContainer(s.T())
	}
}

func (s *TrackingRepositoryTestSuite) SetupTest() {
	if s.postgres {
		s.Require().NoError(s.pg.TruncateTables(testutil.Tables...))
		s.db = s.pg.DB
	} else {
		s.db = testutil.NewTestDB(s.T())
	}

	s.catalog = repository.NewCatalogRepository(s.db)
	s.engagement = repository.NewEngagementRepository(s.db)
	s.lists = repository.NewListRepository(s.db)
	s.stats = repository.NewStatsRepository(s.db)
	s.tx = pkgrepo.NewTransactor(s.db)
	s.clock = testutil.StepClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
}

func TestTrackingRepositorySQLite(t *testing.T) {
	suite.Run(t, new(TrackingRepositoryTestSuite))
}

func TestTrackingRepositoryPostgres(t *testing.T) {
	suite.Run(t, &TrackingRepositoryTestSuite{postgres: true})
}

func (s *TrackingRepositoryTestSuite) newReview(userID string, ref domain.MediaRef, rating float64) *domain.Review {
	now := s.clock()
	return &domain.Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		Media:     ref,
		Rating:    rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *TrackingRepositoryTestSuite) newList(owner, name string) *domain.List {
	now := s.clock()
	list := &domain.List{ID: uuid.NewString(), Name: name, OwnerID: owner, CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.lists.CreateList(s.ctx, list))
	return list
}

func (s *TrackingRepositoryTestSuite) TestCatalogCreateAndExists() {
	movie := testutil.CreateTestMovie(s.T(), s.catalog, "Inception", 2010)
	s.NotZero(movie.ID)

	ok, err := s.catalog.MovieExists(s.ctx, movie.ID)
	s.NoError(err)
	s.True(ok)

	ok, err = s.catalog.TVShowExists(s.ctx, movie.ID+100)
	s.NoError(err)
	s.False(ok)

	show := testutil.CreateTestTVShow(s.T(), s.catalog, "Dark", 2017, 2020)
	got, err := s.catalog.GetTVShow(s.ctx, show.ID)
	s.Require().NoError(err)
	s.Equal("Dark", got.Title)
	s.Require().NotNil(got.EndYear)
	s.Equal(2020, *got.EndYear)

	_, err = s.catalog.GetMovie(s.ctx, 9999)
	s.True(errors.IsNotFound(err))
}

func (s *TrackingRepositoryTestSuite) TestCheckConstraintRejectsInconsistentTriples() {
	movie := testutil.CreateTestMovie(s.T(), s.catalog, "Heat", 1995)
	show := testutil.CreateTestTVShow(s.T(), s.catalog, "Lost", 2004, 2010)

	bad := []repository.Review{
		{MovieID: &movie.ID, TVID: &show.ID, Type: "MOVIE"},
		{MovieID: &movie.ID, Type: "TVSHOW"},
		{TVID: &show.ID, Type: "MOVIE"},
		{Type: "MOVIE"},
	}

	for i := range bad {
		row := bad[i]
		row.ID = uuid.NewString()
		row.UserID = "u1"
		row.Rating = 5
		err := s.db.Omit(clause.Associations).Create(&row).Error
		s.Require().Error(err, "row %d", i)
		s.True(errors.IsInvalidReference(pkgrepo.TranslateError(err, "Review", nil)), "row %d: %v", i, err)
	}
}

func (s *TrackingRepositoryTestSuite) TestReviewForMissingCatalogItem() {
	ref, err := domain.MediaRefFromColumns(testutil.Int64Ptr(999), nil, domain.ShowTypeMovie)
	s.Require().NoError(err)

	err = s.engagement.CreateReview(s.ctx, s.newReview("u1", ref, 7))
	s.True(errors.IsNotFound(err), "got %v", err)
}

func (s *TrackingRepositoryTestSuite) TestReviewsAreNotDeduplicated() {
	movie := testutil.CreateTestMovie(s.T(), s.catalog, "Inception", 2010)
	ref := testutil.MovieRef(s.T(), s.catalog, movie.ID)

	first := s.newReview("u1", ref, 6)
	second := s.newReview("u1", ref, 9)
	s.Require().NoError(s.engagement.CreateReview(s.ctx, first))
	s.Require().NoError(s.engagement.CreateReview(s.ctx, second))

	reviews, err := s.engagement.ListReviewsForMedia(s.ctx, ref, pagination.Window{Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(reviews, 2)
	s.Equal(second.ID, reviews[0].ID, "newest first")
	s.Equal(first.ID, reviews[1].ID)
	s.True(reviews[0].Media.IsMovie())
	s.Equal(movie.ID, reviews[0].Media.ID())
}

func (s *TrackingRepositoryTestSuite) TestUpdateAndDeleteReview() {
	movie := testutil.CreateTestMovie(s.T(), s.catalog, "Alien", 1979)
	review := s.newReview("u1", testutil.MovieRef(s.T(), s.catalog, movie.ID), 5)
	s.Require().NoError(s.engagement.CreateReview(s.ctx, review))

	review.Rating = 8.5
	review.Comment = testutil.StringPtr("better on rewatch")
	review.UpdatedAt = s.clock()
	s.Require().NoError(s.engagement.UpdateReview(s.ctx, review))

	got, err := s.engagement.GetReview(s.ctx, review.ID)
	s.Require().NoError(err)
	s.Equal(8.5, got.Rating)
	s.Require().NotNil(got.Comment)
	s.Equal("better on rewatch", *got.Comment)

	s.Require().NoError(s.engagement.DeleteReview(s.ctx, review.ID))
	s.True(errors.IsNotFound(s.engagement.DeleteReview(s.ctx, review.ID)))

	missing := *review
	missing.ID = uuid.NewString()
	s.True(errors.IsNotFound(s.engagement.UpdateReview(s.ctx, &missing)))
}

func (s *TrackingRepositoryTestSuite) TestMarkWatchedIsIdempotent() {
	movie := testutil.CreateTestMovie(s.T(), s.catalog, "Inception", 2010)
	show := testutil.CreateTestTVShow(s.T(), s.catalog, "Inception", 2010, 0)
	movieRef := testutil.MovieRef(s.T(), s.catalog, movie.ID)
	showRef := testutil.TVShowRef(s.T(), s.catalog, show.ID)

	now := s.clock()
	first, created, err := s.engagement.MarkWatched(s.ctx, &domain.Watched{
		ID: uuid.NewString(), UserID: "u1", Media: movieRef, CreatedAt: now, UpdatedAt: now,
	})
	s.Require().NoError(err)
	s.True(created)

	again, created, err := s.engagement.MarkWatched(s.ctx, &domain.Watched{
		ID: uuid.NewString(), UserID: "u1", Media: movieRef, CreatedAt: s.clock(), UpdatedAt: s.clock(),
	})
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.ID, again.ID)

	// same numeric id on the other side of the union is a different item
	_, created, err = s.engagement.MarkWatched(s.ctx, &domain.Watched{
		ID: uuid.NewString(), UserID: "u1", Media: showRef, CreatedAt: s.clock(), UpdatedAt: s.clock(),
	})
	s.Require().NoError(err)
	s.True(created)

	counts, err := s.stats.CountsFor(s.ctx, movieRef)
	s.Require().NoError(err)
	s.Equal(int64(1), counts.Watched)

	rows, err := s.engagement.ListWatchedByUser(s.ctx, "u1", pagination.Window{Limit: 10})
	s.Require().NoError(err)
	s.Len(rows, 2)
}

func (s *TrackingRepositoryTestSuite) TestWatchlistIdempotentAndDelete() {
	show := testutil.CreateTestTVShow(s.T(), s.catalog, "Severance", 2022, 0)
	ref := testutil.TVShowRef(s.T(), s.catalog, show.ID)

	now := s.clock()
	entry, created, err := s.engagement.AddToWatchlist(s.ctx, &domain.WatchlistEntry{
		ID: uuid.NewString(), UserID: "u2", Media: ref, CreatedAt: now, UpdatedAt: now,
	})
	s.Require().NoError(err)
	s.True(created)

	_, created, err = s.engagement.AddToWatchlist(s.ctx, &domain.WatchlistEntry{
		ID: uuid.NewString(), UserID: "u2", Media: ref, CreatedAt: now, UpdatedAt: now,
	})
	s.Require().NoError(err)
	s.False(created)

	found, err := s.engagement.FindWatchlistEntry(s.ctx, "u2", ref)
	s.Require().NoError(err)
	s.Equal(entry.ID, found.ID)

	s.Require().NoError(s.engagement.DeleteWatchlistEntry(s.ctx, entry.ID))
	_, err = s.engagement.FindWatchlistEntry(s.ctx, "u2", ref)
	s.True(errors.IsNotFound(err))
}

func (s *TrackingRepositoryTestSuite) TestListMembershipHasSetSemantics() {
	movie := testutil.CreateTestMovie(s.T(), s.catalog, "Inception", 2010)
	other := testutil.CreateTestMovie(s.T(), s.catalog, "Memento", 2000)
	show := testutil.CreateTestTVShow(s.T(), s.catalog, "Westworld", 2016, 2022)
	list := s.newList("u1", "Favorites")

	added, err := s.lists.AddMovie(s.ctx, list.ID, movie.ID, s.clock())
	s.Require().NoError(err)
	s.True(added)

	added, err = s.lists.AddMovie(s.ctx, list.ID, movie.ID, s.clock())
	s.Require().NoError(err)
	s.False(added)

	_, err = s.lists.AddMovie(s.ctx, list.ID, other.ID, s.clock())
	s.Require().NoError(err)
	_, err = s.lists.AddTVShow(s.ctx, list.ID, show.ID, s.clock())
	s.Require().NoError(err)

	movies, err := s.lists.Movies(s.ctx, list.ID)
	s.Require().NoError(err)
	s.Require().Len(movies, 2)
	s.Equal(movie.ID, movies[0].ID, "insertion order")
	s.Equal(other.ID, movies[1].ID)

	shows, err := s.lists.TVShows(s.ctx, list.ID)
	s.Require().NoError(err)
	s.Len(shows, 1)

	removed, err := s.lists.RemoveTVShow(s.ctx, list.ID, show.ID+50)
	s.Require().NoError(err)
	s.False(removed)

	_, err = s.lists.AddMovie(s.ctx, list.ID, 12345, s.clock())
	s.True(errors.IsNotFound(err), "got %v", err)
}

func (s *TrackingRepositoryTestSuite) TestDeleteListKeepsCatalog() {
	movie := testutil.CreateTestMovie(s.T(), s.catalog, "Inception", 2010)
	list := s.newList("u1", "Favorites")
	_, err := s.lists.AddMovie(s.ctx, list.ID, movie.ID, s.clock())
	s.Require().NoError(err)

	s.Require().NoError(s.lists.DeleteList(s.ctx, list.ID))

	_, err = s.lists.GetList(s.ctx, list.ID)
	s.True(errors.IsNotFound(err))

	ok, err := s.catalog.MovieExists(s.ctx, movie.ID)
	s.Require().NoError(err)
	s.True(ok)

	counts, err := s.stats.CountsFor(s.ctx, testutil.MovieRef(s.T(), s.catalog, movie.ID))
	s.Require().NoError(err)
	s.Equal(int64(0), counts.Lists)
}

func (s *TrackingRepositoryTestSuite) TestCountsAreLive() {
	movie := testutil.CreateTestMovie(s.T(), s.catalog, "Inception", 2010)
	ref := testutil.MovieRef(s.T(), s.catalog, movie.ID)

	var ids []string
	for i := 0; i < 3; i++ {
		r := s.newReview("u1", ref, float64(i+5))
		s.Require().NoError(s.engagement.CreateReview(s.ctx, r))
		ids = append(ids, r.ID)
	}
	list := s.newList("u2", "Watch later")
	_, err := s.lists.AddMovie(s.ctx, list.ID, movie.ID, s.clock())
	s.Require().NoError(err)

	counts, err := s.stats.CountsFor(s.ctx, ref)
	s.Require().NoError(err)
	s.Equal(domain.Counts{Reviews: 3, Lists: 1}, counts)

	s.Require().NoError(s.engagement.DeleteReview(s.ctx, ids[0]))
	counts, err = s.stats.CountsFor(s.ctx, ref)
	s.Require().NoError(err)
	s.Equal(int64(2), counts.Reviews)

	user, err := s.stats.CountsForUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(domain.UserCounts{Reviews: 2}, user)

	owner, err := s.stats.CountsForUser(s.ctx, "u2")
	s.Require().NoError(err)
	s.Equal(int64(1), owner.Lists)
}

func (s *TrackingRepositoryTestSuite) TestDeleteMovieIsRestrictedByEngagement() {
	movie := testutil.CreateTestMovie(s.T(), s.catalog, "Inception", 2010)
	ref := testutil.MovieRef(s.T(), s.catalog, movie.ID)
	s.Require().NoError(s.engagement.CreateReview(s.ctx, s.newReview("u1", ref, 9)))

	has, err := s.catalog.HasEngagement(s.ctx, ref)
	s.Require().NoError(err)
	s.True(has)

	err = s.tx.WithinTransaction(s.ctx, func(ctx context.Context) error {
		_, err := s.catalog.DeleteMovie(ctx, movie.ID)
		return err
	})
	s.True(errors.IsConflict(err), "got %v", err)

	ok, err := s.catalog.MovieExists(s.ctx, movie.ID)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *TrackingRepositoryTestSuite) TestDeleteTVShowRemovesMemberships() {
	show := testutil.CreateTestTVShow(s.T(), s.catalog, "Chernobyl", 2019, 2019)
	list := s.newList("u1", "Miniseries")
	_, err := s.lists.AddTVShow(s.ctx, list.ID, show.ID, s.clock())
	s.Require().NoError(err)

	removed, err := s.catalog.DeleteTVShow(s.ctx, show.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), removed)

	shows, err := s.lists.TVShows(s.ctx, list.ID)
	s.Require().NoError(err)
	s.Empty(shows)

	_, err = s.catalog.DeleteTVShow(s.ctx, show.ID)
	s.True(errors.IsNotFound(err))
}

func (s *TrackingRepositoryTestSuite) TestTransactionRollback() {
	movie := testutil.CreateTestMovie(s.T(), s.catalog, "Inception", 2010)
	ref := testutil.MovieRef(s.T(), s.catalog, movie.ID)
	boom := stderrors.New("boom")

	err := s.tx.WithinTransaction(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.engagement.CreateReview(ctx, s.newReview("u1", ref, 9)))
		return boom
	})
	s.ErrorIs(err, boom)

	counts, err := s.stats.CountsFor(s.ctx, ref)
	s.Require().NoError(err)
	s.Equal(int64(0), counts.Reviews)
}

func (s *TrackingRepositoryTestSuite) TestListsByOwnerPagination() {
	for _, name := range []string{"a", "b", "c"} {
		s.newList("u1", name)
	}
	s.newList("u2", "other")

	page, err := s.lists.ListsByOwner(s.ctx, "u1", pagination.Window{Offset: 0, Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 3, "limit+1 rows signal another page")
	s.Equal("c", page[0].Name)

	page, err = s.lists.ListsByOwner(s.ctx, "u1", pagination.Window{Offset: 2, Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("a", page[0].Name)
}
