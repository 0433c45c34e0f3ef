package queries

import (
	"context"
	"fmt"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/infrastructure/database/redis"
)

// DatabaseStats extrait de la commande dbStats
type DatabaseStats struct {
	Nom          string
	Documents    int64
	TailleOctets int64
}

type DatabaseProbe interface {
	Ping(ctx context.Context) error
	Collections(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (*DatabaseStats, error)
}

type CacheProbe interface {
	Ping(ctx context.Context) error
	Connexions() (total, libres uint32)
}

type MongoProbe struct {
	client      *mongodb.Client
	collections *mongodb.CollectionManager
}

func NewMongoProbe(client *mongodb.Client, collections *mongodb.CollectionManager) *MongoProbe {
	return &MongoProbe{client: client, collections: collections}
}

func (p *MongoProbe) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

func (p *MongoProbe) Collections(ctx context.Context) ([]string, error) {
	return p.collections.ListCollections(ctx)
}

func (p *MongoProbe) Stats(ctx context.Context) (*DatabaseStats, error) {
	raw, err := p.client.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &DatabaseStats{
		Nom:          fmt.Sprint(raw["db"]),
		Documents:    asInt64(raw["objects"]),
		TailleOctets: asInt64(raw["dataSize"]),
	}, nil
}

// asInt64 dbStats renvoie int32, int64 ou double selon la version du serveur
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}

type RedisProbe struct {
	client *redis.Client
}

func NewRedisProbe(client *redis.Client) *RedisProbe {
	return &RedisProbe{client: client}
}

// Ping échoue aussi quand le pool n'a aucune connexion ouverte
func (p *RedisProbe) Ping(ctx context.Context) error {
	return p.client.HealthCheck(ctx)
}

func (p *RedisProbe) Connexions() (uint32, uint32) {
	stats := p.client.Stats()
	return stats.TotalConns, stats.IdleConns
}
