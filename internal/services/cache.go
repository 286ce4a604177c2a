package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// ProfileCacheKeyPrefix is the Redis key prefix for locally cached profiles
	ProfileCacheKeyPrefix = "profile_data_"
	// DefaultCacheTTL keeps an owner's working copy around between visits
	DefaultCacheTTL = 30 * 24 * time.Hour
)

// CacheService stores JSON values in Redis.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, ttl time.Duration) *CacheService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CacheService{client: client, ttl: ttl}
}

// Get retrieves a value from cache. A missing key is a miss, not an error.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a value with the service's TTL
func (c *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, c.ttl).Err()
}

// Delete removes a value from cache
func (c *CacheService) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// DocumentCache is the per-device working copy of a profile. Both operations
// are best effort: failures are logged and treated as misses.
type DocumentCache interface {
	Load(ctx context.Context, userID string) (*models.ProfileDocument, bool)
	Store(ctx context.Context, userID string, doc *models.ProfileDocument)
}

// ProfileCache is the Redis-backed DocumentCache.
type ProfileCache struct {
	cache *CacheService
}

func NewProfileCache(cache *CacheService) *ProfileCache {
	return &ProfileCache{cache: cache}
}

func ProfileCacheKey(userID string) string {
	return fmt.Sprintf("%s%s", ProfileCacheKeyPrefix, userID)
}

func (p *ProfileCache) Load(ctx context.Context, userID string) (*models.ProfileDocument, bool) {
	var doc models.ProfileDocument
	ok, err := p.cache.Get(ctx, ProfileCacheKey(userID), &doc)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("profile cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return &doc, true
}

func (p *ProfileCache) Store(ctx context.Context, userID string, doc *models.ProfileDocument) {
	if err := p.cache.Set(ctx, ProfileCacheKey(userID), doc); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("profile cache write failed")
	}
}
