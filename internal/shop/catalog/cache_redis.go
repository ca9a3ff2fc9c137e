// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/platform/constants"
)

// # Featured Cache

// RedisFeaturedCache implements FeaturedCache using Redis.
//
// The whole featured selection is stored under a single key as one JSON
// document with no TTL; it is rebuilt in place whenever an administrator
// toggles a product's featured flag.
type RedisFeaturedCache struct {
	client *redis.Client
}

// NewFeaturedCache creates a new Redis-backed FeaturedCache.
func NewFeaturedCache(client *redis.Client) *RedisFeaturedCache {
	return &RedisFeaturedCache{client: client}
}

/*
Get returns the cached featured selection.

Description: Returns apperr.NotFound on a cache miss so the service can fall
back to the database without inspecting Redis error identities.

Parameters:
  - context: context.Context

Returns:
  - []Product: Cached entities
  - error: apperr.NotFound or connectivity errors
*/
func (cache *RedisFeaturedCache) Get(context context.Context) ([]Product, error) {

	// Get the document from Redis
	payload, err := cache.client.Get(context, constants.RedisKeyFeaturedProducts).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Featured product cache entry")
		}
		return nil, fmt.Errorf("redis_featured_cache_get_failed: %w", err)
	}

	// Decode the JSON document
	var products []Product
	if err := json.Unmarshal([]byte(payload), &products); err != nil {
		return nil, fmt.Errorf("redis_featured_cache_decode_failed: %w", err)
	}

	// Return the selection
	return products, nil
}

/*
Set replaces the cached featured selection.

Parameters:
  - context: context.Context
  - products: []Product

Returns:
  - error: Encoding or persistence failures
*/
func (cache *RedisFeaturedCache) Set(context context.Context, products []Product) error {

	// Encode the selection as one JSON document
	payload, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("redis_featured_cache_encode_failed: %w", err)
	}

	// Store it under the single featured key, no TTL
	if err := cache.client.Set(context, constants.RedisKeyFeaturedProducts, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis_featured_cache_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}
