package app

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"mangwale-cart/app/controller"
	"mangwale-cart/app/router"
	"mangwale-cart/cache"
	"mangwale-cart/config"
	"mangwale-cart/db"
	"mangwale-cart/repository"
	"mangwale-cart/search"
	"mangwale-cart/service"
)

// App owns the wired application: the Fiber server plus the shared resources
// it must close on shutdown. Pools and clients are injected into the
// components that use them, never reached through globals.
type App struct {
	Fiber *fiber.App

	pool  *sql.DB
	redis *redis.Client
}

// New wires the full application from config.
func New(cfg *config.Config) (*App, error) {
	pool, err := db.Connect(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	searchClient, err := search.NewClient(search.Config{
		Addresses:      cfg.SearchAddresses,
		Username:       cfg.SearchUser,
		Password:       cfg.SearchPassword,
		PrimaryIndex:   cfg.PrimaryIndex,
		SecondaryIndex: cfg.SecondaryIndex,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize search client: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	storeCache := cache.New(redisClient, 10*time.Minute)

	items := repository.NewItemRepository(pool)
	stores := repository.NewStoreRepository(pool)
	categories := repository.NewCategoryRepository(pool)

	syncService := service.NewSyncService(searchClient, stores, categories)
	resolverService := service.NewResolverService(searchClient, service.ResolverConfig{
		AcceptScore:   cfg.ResolverAcceptScore,
		FloorScore:    cfg.ResolverFloorScore,
		AmbiguityBand: cfg.ResolverAmbiguityBand,
		TopN:          cfg.ResolverTopN,
		FillerWords:   service.DefaultResolverConfig().FillerWords,
	})
	cartService := service.NewCartService(resolverService, items, stores, storeCache, cfg.CartMaxConcurrent)

	fiberApp := fiber.New(fiber.Config{AppName: "mangwale-cart"})
	router.Setup(fiberApp, &router.Controllers{
		Catalog: controller.NewCatalogController(items, stores, categories, syncService, storeCache),
		Cart:    controller.NewCartController(cartService, resolverService),
	})

	return &App{Fiber: fiberApp, pool: pool, redis: redisClient}, nil
}

// Close releases the shared resources.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		a.redis.Close()
	}
}
