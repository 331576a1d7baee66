package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
)

// ResetTokenStore keeps single-use password-reset tokens in Redis.
// Key format: pwreset:<token> → user id, expiring with the token's TTL.
type ResetTokenStore struct {
	client *redis.Client
}

// NewResetTokenStore creates a ResetTokenStore wrapping the given Redis client.
func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

func (s *ResetTokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// Lookup returns the user id bound to token; an unknown or expired token
// reports domain.ErrResetTokenInvalid.
func (s *ResetTokenStore) Lookup(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrResetTokenInvalid
		}
		return "", fmt.Errorf("lookup reset token: %w", err)
	}
	return userID, nil
}

func (s *ResetTokenStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

func (s *ResetTokenStore) key(token string) string {
	return "pwreset:" + token
}
