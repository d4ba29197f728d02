package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecosmart-shop/catalog-api/internal/config"
	"github.com/ecosmart-shop/catalog-api/internal/repository"
	"github.com/redis/go-redis/v9"
)

// buildRepository opens the configured catalog source and wraps it with the
// configured snapshot cache. The returned cleanup releases any connections.
func buildRepository(ctx context.Context, cfg *config.Config, log *slog.Logger) (repository.ProductRepository, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("failed to release catalog resource", "error", err)
			}
		}
	}

	var repo repository.ProductRepository
	switch cfg.Catalog.Source {
	case config.SourceMemory:
		repo = repository.NewSeededProductRepository()

	case config.SourceYAML:
		r, err := repository.LoadYAMLCatalog(cfg.Catalog.Path)
		if err != nil {
			return nil, cleanup, err
		}
		repo = r

	case config.SourceSQLite:
		r, err := repository.NewSQLiteProductRepository(cfg.Catalog.Path)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, r.Close)

		existing, err := r.GetAll(ctx)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		if len(existing) == 0 {
			log.Info("seeding empty sqlite catalog")
			if err := r.Upsert(ctx, repository.SeedProducts()); err != nil {
				cleanup()
				return nil, func() {}, err
			}
		}
		repo = r

	case config.SourceFeed:
		log.Info("loading product feeds...", "feeds", len(cfg.Catalog.FeedURLs))
		products, err := repository.NewFeedLoader(nil).LoadFromURLs(ctx, cfg.Catalog.FeedURLs)
		if err != nil {
			return nil, cleanup, err
		}
		repo = repository.NewInMemoryProductRepository(products)

	default:
		return nil, cleanup, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}

	ttl := cfg.Cache.TTLDuration()
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		repo = repository.NewCachedProductRepository(repo, repository.NewMemorySnapshotStore(ttl), log)

	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddress,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		closers = append(closers, client.Close)

		if err := client.Ping(ctx).Err(); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store := repository.NewRedisSnapshotStore(client, cfg.Cache.RedisKey, ttl)
		repo = repository.NewCachedProductRepository(repo, store, log)
	}

	return repo, cleanup, nil
}
