package repository

import (
	"github.com/chucky-1/fdbroker/internal/model"
	"github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"

	"context"
	"time"
)

const localCacheSize = 1000

// Cache keeps stocks by symbol
type Cache struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewCache is constructor
func NewCache(cache *cache.Cache, ttl time.Duration) *Cache {
	return &Cache{cache: cache, ttl: ttl}
}

// NewLocalCache builds a cache that lives only in the process memory.
// With a non-nil ring the redis tier is added behind the local one.
func NewLocalCache(ring *redis.Ring, ttl time.Duration) *Cache {
	opt := &cache.Options{
		LocalCache: cache.NewTinyLFU(localCacheSize, ttl),
	}
	if ring != nil {
		opt.Redis = ring
	}
	return NewCache(cache.New(opt), ttl)
}

func (c *Cache) Set(ctx context.Context, stock *model.Stock) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	err := c.cache.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key(stock.Symbol),
		Value: stock,
		TTL:   c.ttl,
	})
	if err != nil {
		return err
	}
	return nil
}

func (c *Cache) Get(ctx context.Context, symbol string) (*model.Stock, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	var stock model.Stock
	err := c.cache.Get(ctx, key(symbol), &stock)
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func key(symbol string) string {
	return "stock:" + symbol
}
