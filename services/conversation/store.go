package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookwell/models"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound is returned when no session exists for the key or
// its TTL has elapsed.
var ErrSessionNotFound = errors.New("conversation session not found")

// SessionTTL is the idle expiry of a conversation session. Every write
// refreshes it.
const SessionTTL = 30 * time.Minute

// SessionStore holds one conversation session per (tenant, chat user).
// Keys are independent; there is no cross-key transactionality.
type SessionStore interface {
	Get(ctx context.Context, tenantID, chatUserID string) (*models.ConversationSession, error)
	Put(ctx context.Context, session *models.ConversationSession, ttl time.Duration) error
	Clear(ctx context.Context, tenantID, chatUserID string) error
}

// RedisSessionStore implements SessionStore on a dedicated Redis DB,
// storing sessions as JSON values under a per-chat-user key.
type RedisSessionStore struct {
	Client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

func sessionKey(tenantID, chatUserID string) string {
	return fmt.Sprintf("conv:%s:%s", tenantID, chatUserID)
}

func (s *RedisSessionStore) Get(ctx context.Context, tenantID, chatUserID string) (*models.ConversationSession, error) {
	data, err := s.Client.Get(ctx, sessionKey(tenantID, chatUserID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load conversation session: %w", err)
	}

	var session models.ConversationSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse conversation session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, session *models.ConversationSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation session: %w", err)
	}
	key := sessionKey(session.TenantID, session.ChatUserID)
	if err := s.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store conversation session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Clear(ctx context.Context, tenantID, chatUserID string) error {
	if err := s.Client.Del(ctx, sessionKey(tenantID, chatUserID)).Err(); err != nil {
		return fmt.Errorf("failed to clear conversation session: %w", err)
	}
	return nil
}
