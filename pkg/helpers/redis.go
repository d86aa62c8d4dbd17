package helpers

import "github.com/redis/go-redis/v9"

// NewRedisClient initializes the shared redis client. JSON value handling
// lives in pkg/cache; this only owns connection settings.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
