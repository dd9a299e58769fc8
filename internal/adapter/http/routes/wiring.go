package routes

import (
	"context"
	"fmt"
	"log"

	"product_estimator/internal/adapter/persistence/codec"
	"product_estimator/internal/adapter/persistence/repository"
	"product_estimator/internal/adapter/persistence/storage"
	"product_estimator/internal/infrastructure/ajax"
	"product_estimator/internal/infrastructure/cache"
	"product_estimator/internal/infrastructure/config"
	"product_estimator/internal/infrastructure/database"
	"product_estimator/internal/usecase"
	"product_estimator/internal/usecase/interfaces"
)

const syncQueueSize = 64

// App holds the wired estimator and whatever must be released on shutdown.
type App struct {
	UseCase  *usecase.EstimateDataUseCase
	Features *config.FeatureSwitches

	closers []func()
}

// Close stops background work and releases connections, newest first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Build connects the configured storage tiers and assembles the use case.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Features: config.NewFeatureSwitches(cfg.Features)}

	primary, err := buildTier(ctx, cfg.Storage.Primary, cfg.Storage, app)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("primary storage: %w", err)
	}
	secondary, err := buildTier(ctx, cfg.Storage.Secondary, cfg.Storage, app)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("secondary storage: %w", err)
	}
	log.Printf("[wiring][routes] storage primary=%s secondary=%s", cfg.Storage.Primary, cfg.Storage.Secondary)

	docs := codec.NewStorageCodec(primary, secondary, codec.WithKeys(cfg.Storage.EstimatesKey, cfg.Storage.CustomerKey))
	repo := repository.NewEstimateStorageRepository(docs, app.Features)

	client := ajax.NewClient(ajax.Config{
		URL:              cfg.Ajax.URL,
		Timeout:          cfg.Ajax.Timeout,
		MaxTries:         cfg.Ajax.MaxTries,
		RatePerSecond:    cfg.Ajax.RatePerSecond,
		Burst:            cfg.Ajax.Burst,
		CacheTTL:         cfg.Ajax.CacheTTL,
		CacheableActions: cfg.Ajax.CacheableActions,
	}, nil)

	bg := usecase.NewBackgroundSync(cfg.SyncWorkers, syncQueueSize, cfg.Ajax.Timeout)
	app.closers = append(app.closers, bg.Close)

	app.UseCase = usecase.NewEstimateDataUseCase(repo, client, app.Features,
		usecase.WithReadCache(cache.NewTTLCache(cfg.CacheTTL)),
		usecase.WithBackgroundSync(bg),
	)
	return app, nil
}

func buildTier(ctx context.Context, kind config.StorageKind, cfg config.StorageConfig, app *App) (interfaces.IStorage, error) {
	switch kind {
	case config.StorageNone, "":
		return nil, nil
	case config.StorageMemory:
		return storage.NewMemoryStorage(), nil
	case config.StorageFile:
		return storage.NewFileStorage(cfg.FileDir)
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureStorageTable(ctx, ddb, cfg.DynamoTable); err != nil {
			return nil, err
		}
		return storage.NewDynamoDBStorage(ddb, cfg.DynamoTable), nil
	case config.StorageRedis:
		rdb, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = rdb.Close() })
		return storage.NewRedisStorage(rdb, cfg.RedisPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q", kind)
	}
}
