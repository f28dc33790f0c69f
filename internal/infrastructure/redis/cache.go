package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"cleanCalc/internal/ports"
)

// keyPrefix отделяет ключи калькулятора от прочих данных в той же базе.
const keyPrefix = "calc:"

var _ ports.ICache = (*Cache)(nil)

// Cache реализует ports.ICache через Redis. Ключ — выражение "10 + 5", значение — результат строкой.
type Cache struct {
	cli redis.Cmdable
	ttl time.Duration
	log *slog.Logger
}

// NewCache возвращает кэш результатов. ttl == 0 — ключи без срока жизни.
func NewCache(cli *Client, ttl time.Duration, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{cli: cli.Client, ttl: ttl, log: log}
}

// Get возвращает результат по ключу. Если ключа нет — found == false.
func (c *Cache) Get(ctx context.Context, key string) (value float64, found bool, err error) {
	s, err := c.cli.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		c.log.Debug("cache get failed", "key", key, "error", err)
		return 0, false, fmt.Errorf("cache get: %w", err)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.log.Debug("cache parse failed", "key", key, "error", err)
		return 0, false, fmt.Errorf("cache parse value: %w", err)
	}
	return v, true, nil
}

// Set сохраняет результат по ключу. Повторная запись перезаписывает значение.
// NaN и бесконечности хранятся текстом ("NaN", "+Inf") и читаются обратно.
func (c *Cache) Set(ctx context.Context, key string, value float64) error {
	s := strconv.FormatFloat(value, 'g', -1, 64)
	if err := c.cli.Set(ctx, keyPrefix+key, s, c.ttl).Err(); err != nil {
		c.log.Debug("cache set failed", "key", key, "error", err)
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
