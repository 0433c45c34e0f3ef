package queries

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"qualite-pro-core/internal/infrastructure/database/redis"
)

const patternTentatives = "auth_login_attempts"

// LoginAttempts compteur d'échecs de connexion par email, fenêtre portée par le TTL du pattern
type LoginAttempts interface {
	Count(ctx context.Context, email string) (int64, error)
	Increment(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}

type RedisLoginAttempts struct {
	redis *redis.Client
}

func NewRedisLoginAttempts(client *redis.Client) *RedisLoginAttempts {
	return &RedisLoginAttempts{redis: client}
}

// identifiant empreinte hexadécimale de l'email normalisé.
// Une adresse peut contenir "+", "'" ou des caractères non ASCII, refusés dans une clé.
func identifiant(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

func (a *RedisLoginAttempts) Count(ctx context.Context, email string) (int64, error) {
	val, err := a.redis.GetWithPattern(ctx, patternTentatives, identifiant(email))
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (a *RedisLoginAttempts) Increment(ctx context.Context, email string) (int64, error) {
	return a.redis.IncrWithPattern(ctx, patternTentatives, identifiant(email))
}

func (a *RedisLoginAttempts) Reset(ctx context.Context, email string) error {
	return a.redis.DelWithPattern(ctx, patternTentatives, identifiant(email))
}
