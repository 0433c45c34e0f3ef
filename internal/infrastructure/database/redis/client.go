package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Nil réexporté pour les appelants qui ne dépendent pas de go-redis
var Nil = redis.Nil

type Client struct {
	rdb          *redis.Client
	keyGenerator *RedisKeyGenerator
}

type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	Database    int
	MaxRetries  int
	PoolSize    int
	PoolTimeout time.Duration
}

func NewClient(config *RedisConfig, keyGenerator *RedisKeyGenerator) (*Client, error) {
	opts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password:     config.Password,
		DB:           config.Database,
		MaxRetries:   config.MaxRetries,
		PoolSize:     config.PoolSize,
		PoolTimeout:  config.PoolTimeout,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MinIdleConns: 2,
	}

	return &Client{
		rdb:          redis.NewClient(opts),
		keyGenerator: keyGenerator,
	}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return fmt.Errorf("client Redis nil")
	}

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

func (c *Client) Close() {
	if c.rdb != nil {
		c.rdb.Close()
	}
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	result := c.rdb.Get(ctx, key)
	if errors.Is(result.Err(), redis.Nil) {
		return "", redis.Nil // Conserver l'erreur redis.Nil native
	}
	return result.Val(), result.Err()
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	result := c.rdb.Exists(ctx, key)
	return result.Val() > 0, result.Err()
}

func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.Ping(ctx); err != nil {
		return err
	}

	stats := c.rdb.PoolStats()
	if stats.TotalConns == 0 {
		return fmt.Errorf("aucune connexion Redis disponible")
	}

	return nil
}

func (c *Client) Stats() *redis.PoolStats {
	return c.rdb.PoolStats()
}

// ============================================
// MÉTHODES AVEC GÉNÉRATION AUTOMATIQUE DE CLÉS
// ============================================

// SetWithPattern sauvegarde une valeur avec le TTL du pattern
func (c *Client) SetWithPattern(ctx context.Context, patternName string, value interface{}, identifier ...string) error {
	ttl, err := c.keyGenerator.GetTTL(patternName)
	if err != nil {
		return fmt.Errorf("erreur récupération TTL: %w", err)
	}
	return c.SetWithPatternTTL(ctx, patternName, value, time.Duration(ttl)*time.Second, identifier...)
}

// SetWithPatternTTL sauvegarde une valeur avec un TTL explicite (0 = pas d'expiration)
func (c *Client) SetWithPatternTTL(ctx context.Context, patternName string, value interface{}, ttl time.Duration, identifier ...string) error {
	key, err := c.keyGenerator.GenerateKey(patternName, identifier...)
	if err != nil {
		return fmt.Errorf("erreur génération clé: %w", err)
	}
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// GetWithPattern récupère une valeur, redis.Nil si absente
func (c *Client) GetWithPattern(ctx context.Context, patternName string, identifier ...string) (string, error) {
	key, err := c.keyGenerator.GenerateKey(patternName, identifier...)
	if err != nil {
		return "", fmt.Errorf("erreur génération clé: %w", err)
	}
	return c.Get(ctx, key)
}

func (c *Client) DelWithPattern(ctx context.Context, patternName string, identifier ...string) error {
	key, err := c.keyGenerator.GenerateKey(patternName, identifier...)
	if err != nil {
		return fmt.Errorf("erreur génération clé: %w", err)
	}
	return c.rdb.Del(ctx, key).Err()
}

func (c *Client) ExistsWithPattern(ctx context.Context, patternName string, identifier ...string) (bool, error) {
	key, err := c.keyGenerator.GenerateKey(patternName, identifier...)
	if err != nil {
		return false, fmt.Errorf("erreur génération clé: %w", err)
	}
	return c.Exists(ctx, key)
}

// IncrWithPattern incrémente un compteur ; le TTL du pattern est posé au premier incrément
func (c *Client) IncrWithPattern(ctx context.Context, patternName string, identifier ...string) (int64, error) {
	key, err := c.keyGenerator.GenerateKey(patternName, identifier...)
	if err != nil {
		return 0, fmt.Errorf("erreur génération clé: %w", err)
	}
	ttl, err := c.keyGenerator.GetTTL(patternName)
	if err != nil {
		return 0, fmt.Errorf("erreur récupération TTL: %w", err)
	}
	return incrAvecTTL(ctx, c.rdb, key, time.Duration(ttl)*time.Second)
}

// compteur sous-ensemble de redis.Cmdable utilisé par incrAvecTTL
type compteur interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// incrAvecTTL INCR puis EXPIRE quand la clé vient d'être créée (EXPIRE NX exige Redis 7).
// Sans TTL la clé ne disparaîtrait jamais : elle est supprimée si EXPIRE échoue.
func incrAvecTTL(ctx context.Context, rdb compteur, key string, ttl time.Duration) (int64, error) {
	n, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n != 1 || ttl <= 0 {
		return n, nil
	}
	if err := rdb.Expire(ctx, key, ttl).Err(); err != nil {
		_ = rdb.Del(ctx, key).Err()
		return 0, fmt.Errorf("expiration du compteur %s: %w", key, err)
	}
	return n, nil
}

// InvalidatePattern supprime toutes les clés d'un pattern
func (c *Client) InvalidatePattern(ctx context.Context, patternName string) error {
	pattern, err := c.keyGenerator.GenerateWildcardPattern(patternName)
	if err != nil {
		return err
	}

	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("erreur récupération clés pattern: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
