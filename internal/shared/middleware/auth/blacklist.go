package auth

import (
	"context"
	"time"

	"qualite-pro-core/internal/infrastructure/database/redis"
)

// TokenBlacklist révocation des jetons à la déconnexion
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisTokenBlacklist conserve le jti révoqué jusqu'à l'expiration naturelle du jeton
type RedisTokenBlacklist struct {
	redis *redis.Client
}

func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{redis: client}
}

func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return b.redis.SetWithPatternTTL(ctx, "auth_blacklist", "1", ttl, jti)
}

func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return b.redis.ExistsWithPattern(ctx, "auth_blacklist", jti)
}
