package db

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

// FileKeyPrefix namespaces data files stored in Redis.
const FileKeyPrefix = "munsite:file:"

func ConnectRedis(redisURL string) error {
	if redisURL == "" {
		return errors.New("REDIS_URL is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// PutFileRedis stores one data file under FileKeyPrefix. Files never expire.
func PutFileRedis(path string, body []byte) error {
	return Redis.Set(Ctx, FileKeyPrefix+path, body, 0).Err()
}
