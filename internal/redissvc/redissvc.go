package redissvc

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

// Connect builds a client from a redis:// URL and checks it answers.
func Connect(ctx context.Context, url string) (*RedisService, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return NewRedisService(rdb, ctx), nil
}

func (a *RedisService) Rdb() *redis.Client {
	return a.rdb
}

func (a *RedisService) Ctx() context.Context {
	return a.ctx
}

func (a *RedisService) Close() error {
	return a.rdb.Close()
}
