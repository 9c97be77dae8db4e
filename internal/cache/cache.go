// Package cache — необязательный кеш результатов пересчёта, ключ — хеш
// снимка. Движок о нём не знает: кеш живёт снаружи чистых функций и при
// любой ошибке редиса просто пересчитываем.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type ResultCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New возвращает nil при пустом addr: вызывающий код работает без кеша.
func New(addr string, ttl time.Duration) *ResultCache {
	if addr == "" {
		return nil
	}
	return &ResultCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

func key(kind string, snapshotHash uint64) string {
	return fmt.Sprintf("compliance:%s:%x", kind, snapshotHash)
}

// Get декодирует закешированный результат в v. false = промах или ошибка,
// в обоих случаях считаем заново.
func (c *ResultCache) Get(ctx context.Context, kind string, snapshotHash uint64, v interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key(kind, snapshotHash)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("kind", kind).Msg("result cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("result cache payload is corrupt")
		return false
	}
	return true
}

func (c *ResultCache) Put(ctx context.Context, kind string, snapshotHash uint64, v interface{}) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(kind, snapshotHash), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("result cache write failed")
	}
}
