// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/platform/constants"
)

// # Refresh Token Registry

// RedisRefreshTokenRegistry implements RefreshTokenRegistry using Redis.
//
// Keys follow the pattern auth:refresh_token:<userID>, one entry per user.
// A plain SET on login/signup overwrites whatever token was registered
// before, which is what enforces the single-valid-token rule.
type RedisRefreshTokenRegistry struct {
	client *redis.Client
}

// NewRefreshTokenRegistry creates a new Redis-backed RefreshTokenRegistry.
func NewRefreshTokenRegistry(client *redis.Client) *RedisRefreshTokenRegistry {
	return &RedisRefreshTokenRegistry{client: client}
}

/*
Store records the user's current refresh token with the session TTL.

Parameters:
  - context: context.Context
  - userID: string
  - token: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisRefreshTokenRegistry) Store(context context.Context, userID string, token string, ttl time.Duration) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixRefreshToken, userID)

	// Set the token with TTL, overwriting any previous entry
	if err := repository.client.Set(context, key, token, ttl).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_store_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Lookup retrieves the refresh token registered for the user.

Description: Returns apperr.NotFound if the record is absent or expired.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: Registered refresh token
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisRefreshTokenRegistry) Lookup(context context.Context, userID string) (string, error) {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixRefreshToken, userID)

	// Get the token from Redis
	token, err := repository.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Refresh token record is absent or expired")
		}
		return "", fmt.Errorf("redis_refresh_token_lookup_failed: %w", err)
	}

	// Return the token
	return token, nil
}

/*
Delete removes the user's refresh-token record.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisRefreshTokenRegistry) Delete(context context.Context, userID string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixRefreshToken, userID)

	// Delete the record from Redis
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
