package conversation

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/xpanvictor/quickpost/internal/domains/conversation"
)

type RedisSessionRepo struct {
	rc  *redis.Client
	ttl time.Duration
}

// Save implements conversation.SessionRepository
func (r *RedisSessionRepo) Save(sessionID string, st conversation.State) error {
	var e SessionEntity
	e.FromDomain(sessionID, st)
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("can't marshal session: %w", err)
	}
	if err := r.rc.Set(e.Key(), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("storing session %s: %w", sessionID, err)
	}
	return nil
}

// Load implements conversation.SessionRepository
func (r *RedisSessionRepo) Load(sessionID string) (conversation.State, bool, error) {
	raw, err := r.rc.Get(SessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return conversation.State{}, false, nil
	}
	if err != nil {
		return conversation.State{}, false, fmt.Errorf("loading session %s: %w", sessionID, err)
	}
	var e SessionEntity
	if err := json.Unmarshal(raw, &e); err != nil {
		return conversation.State{}, false, fmt.Errorf("decoding session %s: %w", sessionID, err)
	}
	return e.ToDomain(), true, nil
}

// Delete implements conversation.SessionRepository
func (r *RedisSessionRepo) Delete(sessionID string) error {
	return r.rc.Del(SessionKey(sessionID)).Err()
}

func NewRedisSessionRepo(rc *redis.Client, ttl time.Duration) conversation.SessionRepository {
	return &RedisSessionRepo{rc: rc, ttl: ttl}
}
