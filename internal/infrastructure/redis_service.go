package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"notes-service/internal/domain/entities"
)

type RedisOptions struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

// RedisService holds revoked tokens and cached profiles. With a nil client
// it is disabled: nothing is revoked and every cache lookup misses.
type RedisService struct {
	client *redis.Client
}

func NewRedisService(ctx context.Context, opts RedisOptions, log zerolog.Logger) *RedisService {
	// REDIS_URL wins over the individual settings when it parses
	if opts.URL != "" {
		if opt, err := redis.ParseURL(opts.URL); err == nil {
			client := redis.NewClient(opt)
			if err := client.Ping(ctx).Err(); err == nil {
				log.Info().Msg("connected to redis using REDIS_URL")
				return &RedisService{client: client}
			}
			log.Warn().Err(err).Msg("redis connection failed with REDIS_URL")
			_ = client.Close()
		} else {
			log.Warn().Err(err).Msg("invalid REDIS_URL")
		}
	}

	addr := fmt.Sprintf("%s:%s", opts.Host, opts.Port)
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis unavailable, token revocation and profile cache disabled")
		_ = client.Close()
		return &RedisService{client: nil}
	}

	log.Info().Str("addr", addr).Msg("connected to redis")
	return &RedisService{client: client}
}

// NewRedisServiceWithClient wraps an existing client; nil yields a disabled service.
func NewRedisServiceWithClient(client *redis.Client) *RedisService {
	return &RedisService{client: client}
}

func (r *RedisService) Enabled() bool {
	return r.client != nil
}

func (r *RedisService) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if r.client == nil || ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, "revoked:"+tokenID, "1", ttl).Err()
}

func (r *RedisService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if r.client == nil {
		return false, nil
	}
	n, err := r.client.Exists(ctx, "revoked:"+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetProfile caches the user without its password hash.
func (r *RedisService) SetProfile(ctx context.Context, userID uint, user *entities.User, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	cached := *user
	cached.Password = ""
	userData, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, profileKey(userID), userData, ttl).Err()
}

// GetProfile returns (nil, nil) on a cache miss.
func (r *RedisService) GetProfile(ctx context.Context, userID uint) (*entities.User, error) {
	if r.client == nil {
		return nil, nil
	}
	userData, err := r.client.Get(ctx, profileKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var user entities.User
	if err := json.Unmarshal([]byte(userData), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *RedisService) DeleteProfile(ctx context.Context, userID uint) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, profileKey(userID)).Err()
}

func (r *RedisService) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

func profileKey(userID uint) string {
	return fmt.Sprintf("profile:%d", userID)
}
