package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/settings"
	"github.com/organizer/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SettingsCache caches per-user settings rows in Redis with a short TTL.
// Cache failures never fail the request; callers fall back to the database.
type SettingsCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// NewSettingsCache connects to Redis and returns a settings cache
func NewSettingsCache(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*SettingsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &SettingsCache{
		client:     client,
		ownsClient: true,
		ttl:        ttl,
		logger:     logger,
	}, nil
}

// NewSettingsCacheWithClient creates a cache around an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewSettingsCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SettingsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsCache{
		client:     client,
		ownsClient: false,
		ttl:        ttl,
		logger:     logger,
	}
}

func (c *SettingsCache) key(userID uuid.UUID) string {
	return fmt.Sprintf("settings:%s", userID.String())
}

// Get retrieves cached settings, returning nil on a miss
func (c *SettingsCache) Get(ctx context.Context, userID uuid.UUID) (*settings.UserSettings, error) {
	cacheKey := c.key(userID)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get settings from cache",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get settings from cache: %w", err)
	}

	var s settings.UserSettings
	if err := json.Unmarshal(data, &s); err != nil {
		c.logger.Error("Failed to unmarshal cached settings",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		// Drop the corrupted entry
		_ = c.client.Del(ctx, cacheKey)
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return &s, nil
}

// Set stores settings in cache
func (c *SettingsCache) Set(ctx context.Context, s *settings.UserSettings) error {
	if s == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := c.client.Set(ctx, c.key(s.UserID), data, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to set settings in cache",
			zap.String("user_id", s.UserID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to set settings in cache: %w", err)
	}
	return nil
}

// Invalidate removes a user's cached settings
func (c *SettingsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		c.logger.Error("Failed to invalidate settings cache",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to invalidate settings cache: %w", err)
	}
	return nil
}

// Close releases the Redis connection if this cache owns it
func (c *SettingsCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}
