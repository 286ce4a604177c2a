package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultSessionTTL is 7 days
	DefaultSessionTTL = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping
	UserSessionKeyPrefix = "user_session:"
)

// SessionStore maps bearer tokens to user ids. A user holds one session at a
// time; signing in again replaces it and restarts the expiry.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Create issues a new token for userID, invalidating any previous one.
func (s *SessionStore) Create(ctx context.Context, userID string) (string, error) {
	if err := s.InvalidateUser(ctx, userID); err != nil {
		return "", err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, SessionKeyPrefix+token, userID, s.ttl)
	pipe.Set(ctx, UserSessionKeyPrefix+userID, token, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Validate returns the user id behind token. An unknown or expired token is
// not an error.
func (s *SessionStore) Validate(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	userID, err := s.client.Get(ctx, SessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return userID, true, nil
}

// Invalidate removes a single session.
func (s *SessionStore) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sessionKey := SessionKeyPrefix + token

	userID, err := s.client.Get(ctx, sessionKey).Result()
	if err == nil && userID != "" {
		s.client.Del(ctx, UserSessionKeyPrefix+userID)
	}
	return s.client.Del(ctx, sessionKey).Err()
}

// InvalidateUser removes whatever session userID currently holds.
func (s *SessionStore) InvalidateUser(ctx context.Context, userID string) error {
	userSessionKey := UserSessionKeyPrefix + userID

	token, err := s.client.Get(ctx, userSessionKey).Result()
	if err == nil && token != "" {
		s.client.Del(ctx, SessionKeyPrefix+token)
	} else if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return s.client.Del(ctx, userSessionKey).Err()
}
