package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "company:"

// NewRedisClient opens a go-redis client and checks the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// CompanyCache keeps company detail views in Redis as JSON
type CompanyCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCompanyCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *CompanyCache {
	return &CompanyCache{client: client, ttl: ttl, logger: logger}
}

func companyKey(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

// Get returns nil, nil when the company is not cached
func (c *CompanyCache) Get(ctx context.Context, id int64) (*model.CompanyDetail, error) {
	raw, err := c.client.Get(ctx, companyKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read company %d from cache: %w", id, err)
	}

	var detail model.CompanyDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		// drop the entry so the next read repopulates it
		c.client.Del(ctx, companyKey(id))
		return nil, fmt.Errorf("failed to decode cached company %d: %w", id, err)
	}
	return &detail, nil
}

func (c *CompanyCache) Set(ctx context.Context, detail *model.CompanyDetail) error {
	raw, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to encode company %d: %w", detail.ID, err)
	}

	if err := c.client.Set(ctx, companyKey(detail.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache company %d: %w", detail.ID, err)
	}

	c.logger.Debug("Company cached", slog.Int64("company_id", detail.ID), slog.Duration("ttl", c.ttl))
	return nil
}

func (c *CompanyCache) Invalidate(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, companyKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate company %d: %w", id, err)
	}
	return nil
}

// Noop is used when Redis is disabled: every read misses
type Noop struct{}

func (Noop) Get(context.Context, int64) (*model.CompanyDetail, error) { return nil, nil }
func (Noop) Set(context.Context, *model.CompanyDetail) error          { return nil }
func (Noop) Invalidate(context.Context, int64) error                  { return nil }
