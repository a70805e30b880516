// Package session stores per-user session state between requests.
package session

import (
	"context"
	"fmt"

	"github.com/markdave123-py/Lectio/internal/config"
	"github.com/markdave123-py/Lectio/internal/core"
)

// NewStore builds the store named by SESSION_STORE.
func NewStore(ctx context.Context, cfg *config.Config) (core.SessionStore, error) {
	switch cfg.SessionStore {
	case "", "memory":
		return NewMemoryStore(cfg.SessionTTL), nil
	case "redis":
		return NewRedisStore(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SessionTTL,
		})
	default:
		return nil, fmt.Errorf("unknown session store: %s", cfg.SessionStore)
	}
}
