package extraction

import (
	"time"

	"github.com/go-redis/redis"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
)

// RedisCache stores extraction results as raw JSON under their cache key.
type RedisCache struct {
	rc *redis.Client
}

// Get implements voice.Cache
func (r *RedisCache) Get(key string) ([]byte, bool, error) {
	raw, err := r.rc.Get(key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// Set implements voice.Cache
func (r *RedisCache) Set(key string, value []byte, ttl time.Duration) error {
	return r.rc.Set(key, value, ttl).Err()
}

func NewRedisCache(rc *redis.Client) voice.Cache {
	return &RedisCache{rc: rc}
}
