package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

// InitRedis connects and pings the server so callers can fall back to the
// in-process dedup set when Redis is unreachable.
func InitRedis(redisAddress string, redisUsername string, redisPassword string) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", redisAddress).Msg("redis unreachable")
		return err
	}
	log.Info().Str("addr", redisAddress).Msg("connected to redis")
	return nil
}

// SetNX records key once, with an expiry. Returns true when the key was newly set.
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	ok, err := Rdb.SetNX(ctx, key, value, expiration).Result()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("redis SETNX failed")
		return false, err
	}
	return ok, nil
}
