package redis

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fastygo/teamtasks/domain"
	"github.com/fastygo/teamtasks/repository"
)

const (
	keyWorkload      = "workload"
	keyProjectHealth = "project-health"
	keyTaskHistory   = "task-history"
	keyGeneration    = "generation"
)

var errStaleRead = errors.New("report generation changed during read")

// ReportCache is a read-through Redis cache in front of a ReportRepository.
// Redis failures degrade to direct reads; they never fail a request.
type ReportCache struct {
	base   repository.ReportRepository
	client *redislib.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewReportCache wraps base. A non-positive ttl disables storing entries.
func NewReportCache(base repository.ReportRepository, client *redislib.Client, ttl time.Duration, logger *zap.Logger) *ReportCache {
	if base == nil {
		panic("redis.NewReportCache: base repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportCache{
		base:   base,
		client: client,
		prefix: "teamtasks:report:",
		ttl:    ttl,
		logger: logger,
	}
}

func (c *ReportCache) DeveloperWorkload(ctx context.Context) ([]domain.DeveloperWorkload, error) {
	return readThrough(ctx, c, keyWorkload, c.base.DeveloperWorkload)
}

func (c *ReportCache) ProjectHealth(ctx context.Context) ([]domain.ProjectHealth, error) {
	return readThrough(ctx, c, keyProjectHealth, c.base.ProjectHealth)
}

func (c *ReportCache) DeveloperTaskHistory(ctx context.Context) ([]domain.DeveloperTaskHistory, error) {
	return readThrough(ctx, c, keyTaskHistory, c.base.DeveloperTaskHistory)
}

// Invalidate drops every cached report and bumps the generation so reads
// that started earlier do not store their results.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redislib.Pipeliner) error {
		pipe.Incr(ctx, c.key(keyGeneration))
		pipe.Del(ctx, c.key(keyWorkload), c.key(keyProjectHealth), c.key(keyTaskHistory))
		return nil
	})
	return err
}

func (c *ReportCache) key(name string) string {
	return c.prefix + name
}

func readThrough[T any](ctx context.Context, c *ReportCache, name string, fetch func(context.Context) (T, error)) (T, error) {
	key := c.key(name)
	if cached, ok := load[T](ctx, c, key); ok {
		return cached, nil
	}

	gen, ok := c.generation(ctx)
	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}
	if ok {
		c.store(ctx, key, gen, value)
	}
	return value, nil
}

// generation returns the current invalidation counter; ok is false when
// nothing should be stored.
func (c *ReportCache) generation(ctx context.Context) (string, bool) {
	if c.client == nil || c.ttl <= 0 {
		return "", false
	}
	gen, err := c.client.Get(ctx, c.key(keyGeneration)).Result()
	switch {
	case errors.Is(err, redislib.Nil):
		return "0", true
	case err != nil:
		c.logger.Warn("report cache generation read failed", zap.Error(err))
		return "", false
	}
	return gen, true
}

func load[T any](ctx context.Context, c *ReportCache, key string) (T, bool) {
	var value T
	if c.client == nil {
		return value, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redislib.Nil) {
			c.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		}
		return value, false
	}
	if err := sonic.ConfigStd.Unmarshal(data, &value); err != nil {
		c.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key).Err()
		return value, false
	}
	return value, true
}

// store writes value only while the generation still equals gen.
func (c *ReportCache) store(ctx context.Context, key, gen string, value interface{}) {
	data, err := sonic.ConfigStd.Marshal(value)
	if err != nil {
		return
	}

	genKey := c.key(keyGeneration)
	err = c.client.Watch(ctx, func(tx *redislib.Tx) error {
		current, err := tx.Get(ctx, genKey).Result()
		switch {
		case errors.Is(err, redislib.Nil):
			current = "0"
		case err != nil:
			return err
		}
		if current != gen {
			return errStaleRead
		}
		_, err = tx.TxPipelined(ctx, func(pipe redislib.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleRead), errors.Is(err, redislib.TxFailedErr):
		c.logger.Debug("skipping stale report cache write", zap.String("key", key))
	default:
		c.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

var _ repository.ReportRepository = (*ReportCache)(nil)
