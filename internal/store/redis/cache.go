package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lotwise/dealerd/internal/domain"
)

// ProfileCache stores resolved staff profiles as JSON under a caller-chosen
// key. Redis failures are swallowed: a Get error reads as a miss and a
// Set/Delete error is only logged, so a flaky cache degrades to extra
// database reads instead of failed requests.
type ProfileCache struct {
	client *Client
}

func NewProfileCache(client *Client) *ProfileCache {
	return &ProfileCache{client: client}
}

func (c *ProfileCache) Get(ctx context.Context, key string) (*domain.Profile, bool) {
	raw, err := c.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var p domain.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("profile cache entry is not valid JSON, dropping")
		_ = c.client.rdb.Del(ctx, key).Err()
		return nil, false
	}

	return &p, true
}

func (c *ProfileCache) Set(ctx context.Context, key string, p *domain.Profile, ttl time.Duration) {
	raw, err := json.Marshal(p)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("profile cache marshal failed")
		return
	}

	if err := c.client.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("profile cache set failed")
	}
}

func (c *ProfileCache) Delete(ctx context.Context, key string) {
	if err := c.client.rdb.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("profile cache delete failed")
	}
}
