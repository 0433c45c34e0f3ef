package cache

import (
	"context"
	"encoding/json"
	"errors"

	"qualite-pro-core/internal/infrastructure/database/redis"
	"qualite-pro-core/internal/shared/models"
)

const (
	patternParType = "cache_nomenclatures"
	patternTypes   = "cache_nomenclature_types"
)

// NomenclatureCache cache des listes par type et de la liste des types
type NomenclatureCache interface {
	ParType(ctx context.Context, typ string) ([]models.Nomenclature, bool, error)
	StockerType(ctx context.Context, typ string, items []models.Nomenclature) error
	Types(ctx context.Context) ([]string, bool, error)
	StockerTypes(ctx context.Context, types []string) error
	Invalider(ctx context.Context, types ...string) error
	Vider(ctx context.Context) error
}

type RedisNomenclatureCache struct {
	redis *redis.Client
}

func NewRedisNomenclatureCache(client *redis.Client) *RedisNomenclatureCache {
	return &RedisNomenclatureCache{redis: client}
}

func (c *RedisNomenclatureCache) lire(ctx context.Context, pattern string, dest interface{}, identifier ...string) (bool, error) {
	raw, err := c.redis.GetWithPattern(ctx, pattern, identifier...)
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		// entrée corrompue : traitée comme absente, elle sera réécrite
		return false, nil
	}
	return true, nil
}

func (c *RedisNomenclatureCache) ecrire(ctx context.Context, pattern string, value interface{}, identifier ...string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.redis.SetWithPattern(ctx, pattern, data, identifier...)
}

func (c *RedisNomenclatureCache) ParType(ctx context.Context, typ string) ([]models.Nomenclature, bool, error) {
	var items []models.Nomenclature
	ok, err := c.lire(ctx, patternParType, &items, typ)
	return items, ok, err
}

func (c *RedisNomenclatureCache) StockerType(ctx context.Context, typ string, items []models.Nomenclature) error {
	return c.ecrire(ctx, patternParType, items, typ)
}

func (c *RedisNomenclatureCache) Types(ctx context.Context) ([]string, bool, error) {
	var types []string
	ok, err := c.lire(ctx, patternTypes, &types)
	return types, ok, err
}

func (c *RedisNomenclatureCache) StockerTypes(ctx context.Context, types []string) error {
	return c.ecrire(ctx, patternTypes, types)
}

// Invalider supprime les listes des types touchés et la liste des types
func (c *RedisNomenclatureCache) Invalider(ctx context.Context, types ...string) error {
	var errs []error
	for _, typ := range types {
		if typ == "" {
			continue
		}
		errs = append(errs, c.redis.DelWithPattern(ctx, patternParType, typ))
	}
	errs = append(errs, c.redis.DelWithPattern(ctx, patternTypes))
	return errors.Join(errs...)
}

// Vider supprime toutes les listes en cache, tous types confondus
func (c *RedisNomenclatureCache) Vider(ctx context.Context) error {
	return errors.Join(
		c.redis.InvalidatePattern(ctx, patternParType),
		c.redis.DelWithPattern(ctx, patternTypes),
	)
}
