package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"targ/internal/domain/entity"
	"targ/internal/domain/service"
	"targ/pkg/logger"
)

type entryState string

const (
	statePending   entryState = "pending"
	stateConfirmed entryState = "confirmed"
)

type entry struct {
	State   entryState      `json:"state"`
	Listing *entity.Listing `json:"listing"`
}

// store is the byte-level key/value surface the cache needs.
type store interface {
	get(ctx context.Context, key string) ([]byte, bool, error)
	set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	del(ctx context.Context, key string) error
}

type redisStore struct {
	client *redis.Client
}

func (s *redisStore) get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *redisStore) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

type ListingCache struct {
	store store
	ttl   time.Duration
}

func NewRedisListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return newListingCache(&redisStore{client: client}, ttl)
}

func newListingCache(s store, ttl time.Duration) *ListingCache {
	return &ListingCache{store: s, ttl: ttl}
}

// Connect opens a redis client and checks it with a ping.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func key(id string) string {
	return "listing:" + id
}

func (c *ListingCache) read(ctx context.Context, id string) (*entry, bool) {
	data, ok, err := c.store.get(ctx, key(id))
	if err != nil {
		logger.Warn("Listing cache read failed for %s: %v", id, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		logger.Warn("Dropping malformed cache entry for %s: %v", id, err)
		_ = c.store.del(ctx, key(id))
		return nil, false
	}
	return &e, true
}

func (c *ListingCache) write(ctx context.Context, state entryState, listing *entity.Listing) error {
	data, err := json.Marshal(entry{State: state, Listing: listing})
	if err != nil {
		return err
	}
	return c.store.set(ctx, key(listing.ID), data, c.ttl)
}

func (c *ListingCache) Get(ctx context.Context, id string) (*entity.Listing, bool) {
	e, ok := c.read(ctx, id)
	if !ok || e.State != stateConfirmed || e.Listing == nil {
		return nil, false
	}
	return e.Listing, true
}

func (c *ListingCache) Set(ctx context.Context, listing *entity.Listing) {
	if err := c.write(ctx, stateConfirmed, listing); err != nil {
		logger.Warn("Listing cache write failed for %s: %v", listing.ID, err)
	}
}

func (c *ListingCache) Optimistic(ctx context.Context, next *entity.Listing, write func(ctx context.Context) error) error {
	previous, hadPrevious := c.read(ctx, next.ID)

	if err := c.write(ctx, statePending, next); err != nil {
		logger.Warn("Listing cache pending write failed for %s: %v", next.ID, err)
	}

	if err := write(ctx); err != nil {
		c.restore(ctx, next.ID, previous, hadPrevious)
		return err
	}

	if err := c.write(ctx, stateConfirmed, next); err != nil {
		logger.Warn("Listing cache confirm failed for %s: %v", next.ID, err)
		c.Invalidate(ctx, next.ID)
	}
	return nil
}

func (c *ListingCache) restore(ctx context.Context, id string, previous *entry, hadPrevious bool) {
	if !hadPrevious || previous.Listing == nil {
		c.Invalidate(ctx, id)
		return
	}
	if err := c.write(ctx, previous.State, previous.Listing); err != nil {
		logger.Warn("Listing cache rollback failed for %s: %v", id, err)
		c.Invalidate(ctx, id)
	}
}

func (c *ListingCache) Invalidate(ctx context.Context, id string) {
	if err := c.store.del(ctx, key(id)); err != nil {
		logger.Warn("Listing cache delete failed for %s: %v", id, err)
	}
}

// NoopListingCache is used when no redis address is configured.
type NoopListingCache struct{}

func (NoopListingCache) Get(context.Context, string) (*entity.Listing, bool) { return nil, false }
func (NoopListingCache) Set(context.Context, *entity.Listing) {}
func (NoopListingCache) Invalidate(context.Context, string) {}

func (NoopListingCache) Optimistic(ctx context.Context, _ *entity.Listing, write func(ctx context.Context) error) error {
	return write(ctx)
}

var (
	_ service.ListingCache = (*ListingCache)(nil)
	_ service.ListingCache = NoopListingCache{}
)
