package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"perfume-store/models"
)

const cartSnapshotTTL = 30 * 24 * time.Hour

type RedisCartRepository struct {
	client *redis.Client
}

func NewRedisCartRepository(client *redis.Client) *RedisCartRepository {
	return &RedisCartRepository{client: client}
}

func cartKey(key string) string {
	return "cart:" + key
}

func (r *RedisCartRepository) Load(ctx context.Context, key string) ([]models.CartLine, error) {
	raw, err := r.client.Get(ctx, cartKey(key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *RedisCartRepository) Save(ctx context.Context, key string, lines []models.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cartKey(key), raw, cartSnapshotTTL).Err()
}

func (r *RedisCartRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, cartKey(key)).Err()
}
