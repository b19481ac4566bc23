package basket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"storefront/internal/domain"
)

type redisRepo struct {
	rdb *redis.Client
}

// NewRedis connects a Redis-backed repository and verifies connectivity
// with a ping.
func NewRedis(addr, password string, db int) (Repository, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisRepo{rdb: rdb}, nil
}

func (r *redisRepo) Load(ctx context.Context, sessionID string) (domain.Basket, error) {
	raw, err := r.rdb.Get(ctx, KeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Basket{}, nil
		}
		return nil, fmt.Errorf("load basket: %w", err)
	}
	return decode(raw), nil
}

func (r *redisRepo) Save(ctx context.Context, sessionID string, b domain.Basket) error {
	raw, err := encode(b)
	if err != nil {
		return fmt.Errorf("encode basket: %w", err)
	}
	if err := r.rdb.Set(ctx, KeyPrefix+sessionID, raw, 0).Err(); err != nil {
		return fmt.Errorf("save basket: %w", err)
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, KeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete basket: %w", err)
	}
	return nil
}

func (r *redisRepo) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
