package cache

import (
	"context"
	"errors"

	"github.com/Domenick1991/spacetravel/config"
	"github.com/Domenick1991/spacetravel/internal/repository"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "spacetravel:"

// RedisKV keeps booking blobs in Redis with no expiry.
type RedisKV struct {
	client *redis.Client
	prefix string
}

func NewRedisKV(cfg config.RedisConfig) *RedisKV {
	return NewRedisKVFromClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		cfg.Prefix,
	)
}

func NewRedisKVFromClient(client *redis.Client, prefix string) *RedisKV {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisKV{client: client, prefix: prefix}
}

func (c *RedisKV) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.blobKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (c *RedisKV) Save(ctx context.Context, key string, blob []byte) error {
	return c.client.Set(ctx, c.blobKey(key), blob, 0).Err()
}

func (c *RedisKV) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisKV) Close() error {
	return c.client.Close()
}

func (c *RedisKV) blobKey(key string) string {
	return c.prefix + key
}

var _ repository.BlobKV = (*RedisKV)(nil)
