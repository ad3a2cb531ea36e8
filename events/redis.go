package events

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultPageKeyPrefix = "page:"

type redisDeleter interface {
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisPurger drops the rendered page cache entries ("page:<path>") of every invalidated path.
type RedisPurger struct {
	client redisDeleter
	prefix string
	logger zerolog.Logger
}

func NewRedisPurger(client redisDeleter, prefix string) *RedisPurger {
	if prefix == "" {
		prefix = DefaultPageKeyPrefix
	}
	return &RedisPurger{
		client: client,
		prefix: prefix,
		logger: log.With().Str("component", "redisPurger").Logger(),
	}
}

func (p *RedisPurger) Invalidate(ctx context.Context, inv Invalidation) {
	if len(inv.Paths) == 0 {
		return
	}

	keys := make([]string, 0, len(inv.Paths))
	for _, path := range inv.Paths {
		keys = append(keys, p.prefix+path)
	}

	removed, err := p.client.Del(context.WithoutCancel(ctx), keys...).Result()
	if err != nil {
		p.logger.Error().Err(err).Strs("keys", keys).Msg("failed to purge page cache")
		return
	}
	p.logger.Debug().Int64("removed", removed).Strs("keys", keys).Msg("purged page cache")
}
