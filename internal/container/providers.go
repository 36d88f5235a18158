package container

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	infraevents "github.com/reeltrack/reeltrack/internal/infrastructure/events"
	"github.com/reeltrack/reeltrack/internal/infrastructure/events/kafka"
	"github.com/reeltrack/reeltrack/internal/infrastructure/events/nats"
	"github.com/reeltrack/reeltrack/internal/tracking/constants"
	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/internal/tracking/repository"
	"github.com/reeltrack/reeltrack/internal/tracking/service"
	"github.com/reeltrack/reeltrack/pkg/cache"
	"github.com/reeltrack/reeltrack/pkg/config"
	"github.com/reeltrack/reeltrack/pkg/database"
	"github.com/reeltrack/reeltrack/pkg/events"
	"github.com/reeltrack/reeltrack/pkg/interfaces"
	"github.com/reeltrack/reeltrack/pkg/logger"
	"github.com/reeltrack/reeltrack/pkg/pagination"
)

// TrackerContainer holds the wired tracking services.
type TrackerContainer struct {
	Config     *config.TrackerConfig
	Logger     *logger.ZapLogger
	DB         *gorm.DB
	Migrator   *database.Migrator
	Bus        *events.InMemoryEventBus
	Catalog    *service.CatalogService
	Engagement *service.EngagementService
	Lists      *service.ListService
}

// MigrationContainer holds what the migrate command needs.
type MigrationContainer struct {
	DB       *gorm.DB
	Migrator *database.Migrator
}

func provideZap(log *logger.ZapLogger) *zap.Logger {
	return log.Zap()
}

func provideDB(cfg *config.TrackerConfig, log *zap.Logger) (*gorm.DB, func(), error) {
	return database.Open(cfg.Database, log)
}

func provideMigrator(db *gorm.DB, log *zap.Logger) *database.Migrator {
	return database.NewMigrator(db, repository.Migrations(), log)
}

func providePaginator(cfg *config.TrackerConfig) (*pagination.Paginator, error) {
	p, err := pagination.NewPaginator([]byte(cfg.Pagination.CursorEncryptionKey), cfg.Pagination.ToPaginatorOptions())
	if err != nil {
		return nil, fmt.Errorf("creating paginator: %w", err)
	}
	return p, nil
}

func provideCache() (*cache.InMemoryCache, func()) {
	c := cache.NewInMemoryCache(constants.CatalogCacheSweep)
	return c, c.Close
}

func provideCachedCatalog(cfg *config.TrackerConfig, repo *repository.GormCatalogRepository, c *cache.InMemoryCache) *service.CachedCatalog {
	ttl := cfg.Tracking.CatalogCacheTTL
	if ttl <= 0 {
		ttl = constants.CatalogCacheTTL
	}
	return service.NewCachedCatalog(repo, c, ttl)
}

func provideServiceOptions(cfg *config.TrackerConfig) []service.Option {
	return []service.Option{
		service.WithPolicy(domain.Policy{
			MinRating:         cfg.Tracking.MinRating,
			MaxRating:         cfg.Tracking.MaxRating,
			MaxCommentLength:  cfg.Tracking.MaxCommentLength,
			MaxListNameLength: cfg.Tracking.MaxListNameLength,
		}),
	}
}

func provideEventBus(log interfaces.Logger) *events.InMemoryEventBus {
	bus := events.NewInMemoryEventBus(log)
	SubscribeAuditLog(bus, log)
	return bus
}

// providePublisher picks where committed events go. Broker drivers also feed
// the in-process bus so local subscribers keep working.
func providePublisher(cfg *config.TrackerConfig, bus *events.InMemoryEventBus, log *zap.Logger) (interfaces.EventPublisher, func(), error) {
	switch cfg.Events.Driver {
	case config.EventsDriverNone, "":
		return events.Discard{}, func() {}, nil
	case config.EventsDriverMemory:
		return bus, func() {}, nil
	case config.EventsDriverNATS:
		client, cleanup, err := nats.NewClient(cfg.Events.NATS, log)
		if err != nil {
			return nil, nil, err
		}
		return infraevents.NewFanout(bus, nats.NewPublisher(client, log)), cleanup, nil
	case config.EventsDriverKafka:
		publisher, err := kafka.NewPublisher(cfg.Events.Kafka, log)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := publisher.Close(); err != nil {
				log.Warn("failed to close kafka producer", zap.Error(err))
			}
		}
		return infraevents.NewFanout(bus, publisher), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unsupported events driver %q", cfg.Events.Driver)
	}
}

func provideCatalogService(
	tx repository.Transactor,
	catalog repository.CatalogRepository,
	cached *service.CachedCatalog,
	publisher interfaces.EventPublisher,
	log interfaces.Logger,
	opts []service.Option,
) *service.CatalogService {
	return service.NewCatalogService(tx, catalog, cached, publisher, log, opts...)
}

func provideEngagementService(
	tx repository.Transactor,
	catalog domain.CatalogReader,
	engagement *repository.GormEngagementRepository,
	paginator *pagination.Paginator,
	publisher interfaces.EventPublisher,
	log interfaces.Logger,
	opts []service.Option,
) *service.EngagementService {
	return service.NewEngagementService(tx, catalog, engagement, engagement, engagement, paginator, publisher, log, opts...)
}

func provideListService(
	tx repository.Transactor,
	catalog domain.CatalogReader,
	lists repository.ListRepository,
	stats repository.StatsRepository,
	paginator *pagination.Paginator,
	publisher interfaces.EventPublisher,
	log interfaces.Logger,
	opts []service.Option,
) *service.ListService {
	return service.NewListService(tx, catalog, lists, stats, paginator, publisher, log, opts...)
}
