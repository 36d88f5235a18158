//go:build wireinject
// +build wireinject

package container

import (
	"github.com/google/wire"

	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/internal/tracking/repository"
	"github.com/reeltrack/reeltrack/internal/tracking/service"
	"github.com/reeltrack/reeltrack/pkg/config"
	"github.com/reeltrack/reeltrack/pkg/interfaces"
	"github.com/reeltrack/reeltrack/pkg/logger"
	pkgrepo "github.com/reeltrack/reeltrack/pkg/repository"
)

var storageSet = wire.NewSet(
	provideZap,
	provideDB,
	provideMigrator,
)

var repositorySet = wire.NewSet(
	pkgrepo.NewTransactor,
	wire.Bind(new(repository.Transactor), new(*pkgrepo.Transactor)),
	repository.NewCatalogRepository,
	wire.Bind(new(repository.CatalogRepository), new(*repository.GormCatalogRepository)),
	repository.NewEngagementRepository,
	repository.NewListRepository,
	wire.Bind(new(repository.ListRepository), new(*repository.GormListRepository)),
	repository.NewStatsRepository,
	wire.Bind(new(repository.StatsRepository), new(*repository.GormStatsRepository)),
)

// InitializeTracker wires the tracking services and their infrastructure.
func InitializeTracker(cfg *config.TrackerConfig, log *logger.ZapLogger) (*TrackerContainer, func(), error) {
	wire.Build(
		wire.Bind(new(interfaces.Logger), new(*logger.ZapLogger)),
		storageSet,
		repositorySet,

		// Catalog existence cache
		provideCache,
		provideCachedCatalog,
		wire.Bind(new(domain.CatalogReader), new(*service.CachedCatalog)),

		// Events
		provideEventBus,
		providePublisher,

		// Services
		providePaginator,
		provideServiceOptions,
		provideCatalogService,
		provideEngagementService,
		provideListService,

		wire.Struct(new(TrackerContainer), "*"),
	)
	return nil, nil, nil
}

// InitializeMigrations wires only the database and migrator.
func InitializeMigrations(cfg *config.TrackerConfig, log *logger.ZapLogger) (*MigrationContainer, func(), error) {
	wire.Build(
		storageSet,
		wire.Struct(new(MigrationContainer), "*"),
	)
	return nil, nil, nil
}
