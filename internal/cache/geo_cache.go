package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"partyline/internal/model"
)

// GeoCache memoizes geocoder lookups by normalized place name. The
// geocoder budget is one request per second, so repeat place names
// (everyone's from somewhere popular) should never hit it twice.
type GeoCache interface {
	Get(ctx context.Context, place string) (*model.GeoPoint, error)
	Set(ctx context.Context, place string, point *model.GeoPoint) error
}

type geoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGeoCache creates a new geocode cache
func NewGeoCache(client *redis.Client) GeoCache {
	return &geoCache{
		client: client,
		ttl:    30 * 24 * time.Hour,
	}
}

func (c *geoCache) key(place string) string {
	return fmt.Sprintf("geo:%s", strings.ToLower(strings.TrimSpace(place)))
}

func (c *geoCache) Get(ctx context.Context, place string) (*model.GeoPoint, error) {
	data, err := c.client.Get(ctx, c.key(place)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var point model.GeoPoint
	if err := json.Unmarshal([]byte(data), &point); err != nil {
		return nil, err
	}
	return &point, nil
}

func (c *geoCache) Set(ctx context.Context, place string, point *model.GeoPoint) error {
	data, err := json.Marshal(point)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(place), data, c.ttl).Err()
}
