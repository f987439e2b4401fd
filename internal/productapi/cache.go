package productapi

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"nutrimatrix/internal/model"
	"nutrimatrix/internal/observability"
)

const cacheKeyPrefix = "product_data:"

// Cache keeps fetched payloads in Redis for a while so repeated render
// passes against the same search key skip the backend round-trip.
// Cache errors are swallowed; a cold or broken cache just means a fetch.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCache(redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &Cache{Client: redis.NewClient(opts), TTL: ttl}, nil
}

func (c *Cache) Get(ctx context.Context, key string) (*model.ProductData, bool) {
	val, err := c.Client.Get(ctx, cacheKeyPrefix+key).Result()
	if err != nil {
		return nil, false
	}
	var data model.ProductData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, false
	}
	observability.CacheHits.Inc()
	return &data, true
}

func (c *Cache) Put(ctx context.Context, key string, data *model.ProductData) {
	b, err := json.Marshal(data)
	if err != nil {
		return
	}
	c.Client.Set(ctx, cacheKeyPrefix+key, b, c.TTL)
}
