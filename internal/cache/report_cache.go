package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"partyline/internal/model"
)

// ReportCache holds recently computed party reports. Aggregation is pure,
// so a short TTL is only a cost saver; submits invalidate eagerly.
type ReportCache interface {
	Get(ctx context.Context, partyID string) (*model.PartyReport, error)
	Set(ctx context.Context, report *model.PartyReport) error
	Invalidate(ctx context.Context, partyID string) error
}

type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a new report cache
func NewReportCache(client *redis.Client) ReportCache {
	return &reportCache{
		client: client,
		ttl:    2 * time.Minute,
	}
}

func (c *reportCache) key(partyID string) string {
	return fmt.Sprintf("party:%s:report", partyID)
}

func (c *reportCache) Get(ctx context.Context, partyID string) (*model.PartyReport, error) {
	data, err := c.client.Get(ctx, c.key(partyID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.PartyReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *reportCache) Set(ctx context.Context, report *model.PartyReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(report.PartyID), data, c.ttl).Err()
}

func (c *reportCache) Invalidate(ctx context.Context, partyID string) error {
	return c.client.Del(ctx, c.key(partyID)).Err()
}
