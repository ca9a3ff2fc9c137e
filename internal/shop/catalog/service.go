// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/selluna/pkg/pagination"
	"github.com/taibuivan/selluna/pkg/slug"
	"github.com/taibuivan/selluna/pkg/uuid"
)

// Service implements product catalogue use cases.
//
// # Caching Strategy
//
// The featured selection is read-through cached in Redis. A cache read or
// write failure is logged and the database answer is served instead; the
// cache is an accelerator here, never a source of truth.
type Service struct {
	productRepository ProductRepository
	featuredCache     FeaturedCache
	logger            *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(productRepo ProductRepository, cache FeaturedCache, logger *slog.Logger) *Service {
	return &Service{
		productRepository: productRepo,
		featuredCache:     cache,
		logger:            logger,
	}
}

// # Discovery

/*
GetFeatured returns the curated featured selection, cache first.

Description: On a cache miss (or any cache failure) the selection is loaded
from Postgres and, when possible, written back so the next reader hits.

Parameters:
  - context: context.Context

Returns:
  - []Product: Featured entities
  - error: Database retrieval failures
*/
func (service *Service) GetFeatured(context context.Context) ([]Product, error) {

	// Fast path: serve straight from the cache
	products, err := service.featuredCache.Get(context)
	if err == nil {
		return products, nil
	}

	// Any cache failure degrades to the database, never to an error response
	products, err = service.productRepository.FindFeatured(context)
	if err != nil {
		return nil, fmt.Errorf("catalog_service_featured_failed: %w", err)
	}

	// Write-through so subsequent readers hit the cache
	if err := service.featuredCache.Set(context, products); err != nil {
		service.logger.Warn("catalog_featured_cache_write_failed", slog.Any("error", err))
	}

	return products, nil
}

/*
GetRecommendations returns a small random sample of the catalogue.

Parameters:
  - context: context.Context

Returns:
  - []Product: Up to [RecommendationCount] random entities
  - error: Database retrieval failures
*/
func (service *Service) GetRecommendations(context context.Context) ([]Product, error) {
	products, err := service.productRepository.FindRandom(context, RecommendationCount)
	if err != nil {
		return nil, fmt.Errorf("catalog_service_recommendations_failed: %w", err)
	}
	return products, nil
}

/*
GetByCategory returns every product in the given category.

Parameters:
  - context: context.Context
  - category: string

Returns:
  - []Product: Matching entities
  - error: Database retrieval failures
*/
func (service *Service) GetByCategory(context context.Context, category string) ([]Product, error) {
	products, err := service.productRepository.FindByCategory(context, category)
	if err != nil {
		return nil, fmt.Errorf("catalog_service_category_failed: %w", err)
	}
	return products, nil
}

/*
List returns one page of the full catalogue for the admin console.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Product: Page of entities
  - int: Total product count
  - error: Database retrieval failures
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]Product, int, error) {
	return service.productRepository.List(context, params)
}

// # Administration

// CreateInput holds the data required to add a product to the catalogue.
type CreateInput struct {
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	Category    string
}

/*
Create persists a brand-new product.

Description: The URL slug is derived from the name; uniqueness is enforced by
the database constraint.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Product: Created entity
  - error: Persistence failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Product, error) {
	product := &Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
		PriceCents:  input.PriceCents,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		IsFeatured:  false,
	}

	if err := service.productRepository.Create(context, product); err != nil {
		return nil, fmt.Errorf("catalog_service_create_failed: %w", err)
	}

	return product, nil
}

/*
ToggleFeatured flips a product's featured flag and rebuilds the cache.

Description: The cache rebuild reads the post-toggle selection from Postgres.
A rebuild failure is logged, not surfaced; the next featured read falls back
to the database anyway.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Product: Updated entity
  - error: apperr.NotFound or persistence failures
*/
func (service *Service) ToggleFeatured(context context.Context, id string) (*Product, error) {
	product, err := service.productRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	product.IsFeatured = !product.IsFeatured
	if err := service.productRepository.SetFeatured(context, id, product.IsFeatured); err != nil {
		return nil, err
	}

	service.rebuildFeaturedCache(context)

	return product, nil
}

/*
Delete permanently removes a product and rebuilds the featured cache.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or deletion failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.productRepository.Delete(context, id); err != nil {
		return err
	}

	service.rebuildFeaturedCache(context)

	return nil
}

// rebuildFeaturedCache refreshes the cached selection from the database.
func (service *Service) rebuildFeaturedCache(context context.Context) {
	products, err := service.productRepository.FindFeatured(context)
	if err != nil {
		service.logger.Warn("catalog_featured_cache_rebuild_read_failed", slog.Any("error", err))
		return
	}

	if err := service.featuredCache.Set(context, products); err != nil {
		service.logger.Warn("catalog_featured_cache_rebuild_write_failed", slog.Any("error", err))
	}
}
