package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage keys for the persisted auth state. The names carry over from the
// web client's localStorage so the contract in the session store reads the
// same: an absent authToken means logged out, whatever the other keys hold.
const (
	SessionKeyToken   = "authToken"
	SessionKeyUserID  = "userId"
	SessionKeyIsAdmin = "isAdmin"
)

// SessionStorage persists the auth triple for one browser session. Save
// replaces the whole record and Clear removes every key, so callers never
// observe a half-written login or logout.
type SessionStorage interface {
	Load(ctx context.Context, sessionID string) (map[string]string, error)
	Save(ctx context.Context, sessionID string, values map[string]string) error
	Clear(ctx context.Context, sessionID string) error
}

type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]map[string]string)}
}

func (r *MemorySessionRepository) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	values := make(map[string]string, len(stored))
	for k, v := range stored {
		values[k] = v
	}
	return values, nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, sessionID string, values map[string]string) error {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}

	r.mu.Lock()
	r.sessions[sessionID] = copied
	r.mu.Unlock()
	return nil
}

func (r *MemorySessionRepository) Clear(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
	return nil
}

const sessionTTL = 7 * 24 * time.Hour

type RedisSessionRepository struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func (r *RedisSessionRepository) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	values, err := r.client.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

func (r *RedisSessionRepository) Save(ctx context.Context, sessionID string, values map[string]string) error {
	key := sessionKey(sessionID)
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(values) > 0 {
		flat := make([]interface{}, 0, len(values)*2)
		for k, v := range values {
			flat = append(flat, k, v)
		}
		pipe.HSet(ctx, key, flat...)
		pipe.Expire(ctx, key, sessionTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisSessionRepository) Clear(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}
