package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ecosmart-shop/catalog-api/internal/models"
)

// DefaultSnapshotTTL is used when a snapshot store is created with a zero TTL.
const DefaultSnapshotTTL = 5 * time.Minute

// SnapshotStore holds a cached copy of the full catalog.
type SnapshotStore interface {
	Load(ctx context.Context) ([]models.Product, bool, error)
	Save(ctx context.Context, products []models.Product) error
	Clear(ctx context.Context) error
}

// MemorySnapshotStore keeps the snapshot in process until the TTL passes.
type MemorySnapshotStore struct {
	mu        sync.RWMutex
	ttl       time.Duration
	now       func() time.Time
	products  []models.Product
	fetchedAt time.Time
	loaded    bool
}

func NewMemorySnapshotStore(ttl time.Duration) *MemorySnapshotStore {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &MemorySnapshotStore{ttl: ttl, now: time.Now}
}

func (s *MemorySnapshotStore) Load(ctx context.Context) ([]models.Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loaded && s.now().Sub(s.fetchedAt) < s.ttl {
		return slices.Clone(s.products), true, nil
	}
	return nil, false, nil
}

func (s *MemorySnapshotStore) Save(ctx context.Context, products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = slices.Clone(products)
	s.fetchedAt = s.now()
	s.loaded = true
	return nil
}

func (s *MemorySnapshotStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = nil
	s.loaded = false
	return nil
}

// RedisSnapshotStore keeps the snapshot as a JSON value under a single key.
type RedisSnapshotStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisSnapshotStore(client *redis.Client, key string, ttl time.Duration) *RedisSnapshotStore {
	if key == "" {
		key = "catalog:products"
	}
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &RedisSnapshotStore{client: client, key: key, ttl: ttl}
}

func (s *RedisSnapshotStore) Load(ctx context.Context) ([]models.Product, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return products, true, nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func (s *RedisSnapshotStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// CachedProductRepository serves reads from a snapshot, refilling it from the
// underlying repository on a miss. Snapshot failures fall through to the
// underlying repository.
type CachedProductRepository struct {
	next   ProductRepository
	store  SnapshotStore
	logger *slog.Logger
}

func NewCachedProductRepository(next ProductRepository, store SnapshotStore, logger *slog.Logger) *CachedProductRepository {
	return &CachedProductRepository{next: next, store: store, logger: logger}
}

func (r *CachedProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products, ok, err := r.store.Load(ctx)
	if err != nil {
		r.logger.Warn("catalog snapshot unavailable", "error", err)
	}
	if ok {
		return products, nil
	}

	products, err = r.next.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.store.Save(ctx, products); err != nil {
		r.logger.Warn("failed to store catalog snapshot", "error", err)
	} else {
		r.logger.Debug("catalog snapshot refreshed", "products", len(products))
	}

	return products, nil
}

func (r *CachedProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	products, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// Invalidate drops the snapshot so the next read goes to the underlying repository.
func (r *CachedProductRepository) Invalidate(ctx context.Context) error {
	return r.store.Clear(ctx)
}
