package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stockpilot/backend-go/internal/config"
	"github.com/stockpilot/backend-go/internal/domain"
)

const (
	alertKeyPrefix     = "alerts:low_stock"
	alertScanBatchSize = 100
)

// AlertCache holds recently computed alert reports. The computation is a pure
// function of the snapshot, so a cached report is only ever a slightly stale
// re-run, never a different answer.
type AlertCache interface {
	Get(ctx context.Context, companyID int64, windowDays int) (*domain.AlertReport, bool, error)
	Set(ctx context.Context, companyID int64, windowDays int, report *domain.AlertReport) error
	Invalidate(ctx context.Context, companyID int64) error
	InvalidateAll(ctx context.Context) error
}

type redisAlertCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAlertCache struct{}

func NewAlertCache(cfg config.CacheConfig) (AlertCache, error) {
	if !cfg.Enabled {
		return &noopAlertCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAlertCache{client: client, ttl: ttl}, nil
}

func NewNoopAlertCache() AlertCache {
	return &noopAlertCache{}
}

func (c *redisAlertCache) Get(ctx context.Context, companyID int64, windowDays int) (*domain.AlertReport, bool, error) {
	payload, err := c.client.Get(ctx, alertKey(companyID, windowDays)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.AlertReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode alert report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisAlertCache) Set(ctx context.Context, companyID int64, windowDays int, report *domain.AlertReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode alert report cache: %w", err)
	}

	if err := c.client.Set(ctx, alertKey(companyID, windowDays), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAlertCache) Invalidate(ctx context.Context, companyID int64) error {
	prefix := fmt.Sprintf("%s:%d:", alertKeyPrefix, companyID)
	return deleteKeysWithPrefix(ctx, c.client, prefix, alertScanBatchSize)
}

func (c *redisAlertCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, alertKeyPrefix, alertScanBatchSize)
}

func (n *noopAlertCache) Get(ctx context.Context, companyID int64, windowDays int) (*domain.AlertReport, bool, error) {
	return nil, false, nil
}

func (n *noopAlertCache) Set(ctx context.Context, companyID int64, windowDays int, report *domain.AlertReport) error {
	return nil
}

func (n *noopAlertCache) Invalidate(ctx context.Context, companyID int64) error {
	return nil
}

func (n *noopAlertCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func alertKey(companyID int64, windowDays int) string {
	return fmt.Sprintf("%s:%d:%d", alertKeyPrefix, companyID, windowDays)
}
