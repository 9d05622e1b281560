package redis

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects the shared client. Returns false when REDIS_ADDR is
// not set; callers run without the availability cache in that case.
func InitRedis() bool {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, availability cache disabled")
		return false
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	if _, err := Client.Ping(Ctx).Result(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	log.Info().Msg("✅ Connected to Redis")
	return true
}
