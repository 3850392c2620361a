package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "revoked_session:"

// RevocationList tracks logged-out session tokens by jti until their natural
// expiry. With no Redis client configured the list is inert: nothing can be
// revoked and nothing reads as revoked.
type RevocationList struct {
	Client *redis.Client
}

func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{Client: client}
}

// Revoke marks a token id as revoked for ttl (the token's remaining lifetime).
func (l *RevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if l.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	if ttl <= 0 {
		// Already expired, nothing to deny
		return nil
	}
	if err := l.Client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revocation in Redis: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token id has been revoked.
func (l *RevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if l.Client == nil || jti == "" {
		return false, nil
	}
	_, err := l.Client.Get(ctx, revokedKeyPrefix+jti).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to check revocation in Redis: %w", err)
	}
	return true, nil
}
