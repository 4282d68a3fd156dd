package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/hygienewatch/hygienewatch-backend/internal/database"
)

const (
	// TokenDuration is 7 days.
	TokenDuration = 7 * 24 * time.Hour
	// tokenKeyPrefix is the Redis key prefix for token -> account lookups.
	tokenKeyPrefix = "session:"
	// accountKeyPrefix is the Redis key prefix for account -> token lookups.
	accountKeyPrefix = "account_session:"
)

// CreateToken issues an opaque session token for an account and stores it
// in Redis. Any previous token for the account is invalidated first, so a
// fresh sign-in restarts the 7-day window and only one session is live.
func CreateToken(ctx context.Context, accountID string) (string, error) {
	_ = InvalidateAccount(ctx, accountID)

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(raw)

	if err := database.RedisClient.Set(ctx, tokenKeyPrefix+token, accountID, TokenDuration).Err(); err != nil {
		return "", err
	}
	if err := database.RedisClient.Set(ctx, accountKeyPrefix+accountID, token, TokenDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken resolves a token to its account id. A missing or expired
// token is not an error, just not valid.
func ValidateToken(ctx context.Context, token string) (string, bool) {
	if token == "" {
		return "", false
	}
	accountID, err := database.RedisClient.Get(ctx, tokenKeyPrefix+token).Result()
	if err != nil || accountID == "" {
		return "", false
	}
	return accountID, true
}

// InvalidateToken removes one session token.
func InvalidateToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	accountID, err := database.RedisClient.Get(ctx, tokenKeyPrefix+token).Result()
	if err == nil && accountID != "" {
		database.RedisClient.Del(ctx, accountKeyPrefix+accountID)
	}
	return database.RedisClient.Del(ctx, tokenKeyPrefix+token).Err()
}

// InvalidateAccount removes whatever session an account currently holds.
// Used on sign-in rotation and after a password reset.
func InvalidateAccount(ctx context.Context, accountID string) error {
	token, err := database.RedisClient.Get(ctx, accountKeyPrefix+accountID).Result()
	if err == nil && token != "" {
		database.RedisClient.Del(ctx, tokenKeyPrefix+token)
	}
	return database.RedisClient.Del(ctx, accountKeyPrefix+accountID).Err()
}
