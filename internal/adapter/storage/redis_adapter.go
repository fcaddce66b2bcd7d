package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/shopping-cart/internal/core/domain"
)

const (
	productKeyPrefix = "product:"
	productIndexKey  = "products"
)

// Returns the stored version, or -1 on a version conflict.
var saveProductScript = redis.NewScript(`
local key = KEYS[1]
local stock = ARGV[1]
local expected = tonumber(ARGV[2])

local current = redis.call('HGET', key, 'version')
local version = expected
if current then
	if tonumber(current) ~= expected then
		return -1
	end
	version = expected + 1
end

redis.call('HSET', key, 'stock', stock, 'version', version)
redis.call('SADD', KEYS[2], ARGV[3])
return version
`)

type productHash struct {
	Stock   int `redis:"stock"`
	Version int `redis:"version"`
}

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) Save(ctx context.Context, product *domain.Product) error {
	keys := []string{productKeyPrefix + product.Name(), productIndexKey}

	version, err := saveProductScript.Run(ctx, r.client, keys, product.Count(), product.Version(), product.Name()).Int()
	if err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	if version < 0 {
		return ErrOptimisticLock
	}

	product.SetVersion(version)
	return nil
}

func (r *RedisAdapter) GetAll(ctx context.Context) ([]*domain.Product, error) {
	names, err := r.client.SMembers(ctx, productIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	slices.Sort(names)

	cmds := make([]*redis.MapStringStringCmd, len(names))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, name := range names {
			cmds[i] = pipe.HGetAll(ctx, productKeyPrefix+name)
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load products: %w", err)
	}

	out := make([]*domain.Product, 0, len(names))
	for i, name := range names {
		p, err := restoreFromHash(name, cmds[i])
		if err != nil {
			return nil, err
		}
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *RedisAdapter) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	return restoreFromHash(name, r.client.HGetAll(ctx, productKeyPrefix+name))
}

func restoreFromHash(name string, cmd *redis.MapStringStringCmd) (*domain.Product, error) {
	fields, err := cmd.Result()
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", name, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	var h productHash
	if err := cmd.Scan(&h); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", name, err)
	}
	return domain.RestoreProduct(name, h.Stock, h.Version)
}
