// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/shop/catalog"
	"github.com/taibuivan/selluna/pkg/pagination"
)

// # Test Doubles

type memoryProductRepository struct {
	products map[string]*catalog.Product
	order    []string
}

func newMemoryProductRepository() *memoryProductRepository {
	return &memoryProductRepository{products: map[string]*catalog.Product{}}
}

func (repository *memoryProductRepository) Create(_ context.Context, product *catalog.Product) error {
	repository.products[product.ID] = product
	repository.order = append(repository.order, product.ID)
	return nil
}

func (repository *memoryProductRepository) FindByID(_ context.Context, id string) (*catalog.Product, error) {
	product, ok := repository.products[id]
	if !ok {
		return nil, apperr.NotFound("Product")
	}
	return product, nil
}

func (repository *memoryProductRepository) FindByIDs(_ context.Context, ids []string) ([]catalog.Product, error) {
	found := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := repository.products[id]; ok {
			found = append(found, *product)
		}
	}
	return found, nil
}

func (repository *memoryProductRepository) List(_ context.Context, params pagination.Params) ([]catalog.Product, int, error) {
	all := make([]catalog.Product, 0, len(repository.order))
	for _, id := range repository.order {
		all = append(all, *repository.products[id])
	}

	start := params.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + params.Limit
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], len(all), nil
}

func (repository *memoryProductRepository) FindFeatured(_ context.Context) ([]catalog.Product, error) {
	featured := make([]catalog.Product, 0)
	for _, id := range repository.order {
		if repository.products[id].IsFeatured {
			featured = append(featured, *repository.products[id])
		}
	}
	return featured, nil
}

func (repository *memoryProductRepository) FindByCategory(_ context.Context, category string) ([]catalog.Product, error) {
	matching := make([]catalog.Product, 0)
	for _, id := range repository.order {
		if repository.products[id].Category == category {
			matching = append(matching, *repository.products[id])
		}
	}
	return matching, nil
}

func (repository *memoryProductRepository) FindRandom(_ context.Context, limit int) ([]catalog.Product, error) {
	sample := make([]catalog.Product, 0, limit)
	for _, id := range repository.order {
		if len(sample) == limit {
			break
		}
		sample = append(sample, *repository.products[id])
	}
	return sample, nil
}

func (repository *memoryProductRepository) SetFeatured(_ context.Context, id string, isFeatured bool) error {
	product, ok := repository.products[id]
	if !ok {
		return apperr.NotFound("Product")
	}
	product.IsFeatured = isFeatured
	return nil
}

func (repository *memoryProductRepository) Delete(_ context.Context, id string) error {
	if _, ok := repository.products[id]; !ok {
		return apperr.NotFound("Product")
	}
	delete(repository.products, id)
	for index, existing := range repository.order {
		if existing == id {
			repository.order = append(repository.order[:index], repository.order[index+1:]...)
			break
		}
	}
	return nil
}

// memoryFeaturedCache records reads and writes; getErr/setErr force failures.
type memoryFeaturedCache struct {
	entries  []catalog.Product
	hasEntry bool
	getErr   error
	setErr   error
	getCalls int
	setCalls int
}

func (cache *memoryFeaturedCache) Get(_ context.Context) ([]catalog.Product, error) {
	cache.getCalls++
	if cache.getErr != nil {
		return nil, cache.getErr
	}
	if !cache.hasEntry {
		return nil, apperr.NotFound("Featured product cache entry")
	}
	return cache.entries, nil
}

func (cache *memoryFeaturedCache) Set(_ context.Context, products []catalog.Product) error {
	cache.setCalls++
	if cache.setErr != nil {
		return cache.setErr
	}
	cache.entries = products
	cache.hasEntry = true
	return nil
}

// # Fixture

type catalogFixture struct {
	service  *catalog.Service
	products *memoryProductRepository
	cache    *memoryFeaturedCache
}

func newCatalogFixture() *catalogFixture {
	products := newMemoryProductRepository()
	cache := &memoryFeaturedCache{}
	return &catalogFixture{
		service:  catalog.NewService(products, cache, slog.Default()),
		products: products,
		cache:    cache,
	}
}

func (fixture *catalogFixture) create(t *testing.T, name, category string, priceCents int64) *catalog.Product {
	t.Helper()
	product, err := fixture.service.Create(context.Background(), catalog.CreateInput{
		Name:        name,
		Description: "A product",
		PriceCents:  priceCents,
		Category:    category,
	})
	require.NoError(t, err)
	return product
}

// # Creation

func TestService_Create(t *testing.T) {
	fixture := newCatalogFixture()

	product := fixture.create(t, "Leather Tote Bag", "bags", 12900)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "leather-tote-bag", product.Slug)
	assert.Equal(t, int64(12900), product.PriceCents)
	assert.False(t, product.IsFeatured)
}

// # Featured Selection

func TestService_GetFeatured_CacheHit(t *testing.T) {
	fixture := newCatalogFixture()
	fixture.cache.hasEntry = true
	fixture.cache.entries = []catalog.Product{{ID: "cached", Name: "Cached Product"}}

	products, err := fixture.service.GetFeatured(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "cached", products[0].ID)
}

func TestService_GetFeatured_CacheMissFillsCache(t *testing.T) {
	fixture := newCatalogFixture()
	product := fixture.create(t, "Featured Bag", "bags", 9900)
	_, err := fixture.service.ToggleFeatured(context.Background(), product.ID)
	require.NoError(t, err)

	// Simulate a cold cache after the toggle rebuild.
	fixture.cache.hasEntry = false
	fixture.cache.setCalls = 0

	products, err := fixture.service.GetFeatured(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, product.ID, products[0].ID)
	// The miss write-through repopulated the cache.
	assert.Equal(t, 1, fixture.cache.setCalls)
	assert.True(t, fixture.cache.hasEntry)
}

func TestService_GetFeatured_CacheFailureFallsBack(t *testing.T) {
	fixture := newCatalogFixture()
	product := fixture.create(t, "Featured Bag", "bags", 9900)
	require.NoError(t, fixture.products.SetFeatured(context.Background(), product.ID, true))

	fixture.cache.getErr = assert.AnError
	fixture.cache.setErr = assert.AnError

	// A broken cache must degrade to the database, never error out.
	products, err := fixture.service.GetFeatured(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, product.ID, products[0].ID)
}

func TestService_ToggleFeatured_RebuildsCache(t *testing.T) {
	fixture := newCatalogFixture()
	product := fixture.create(t, "Featured Bag", "bags", 9900)

	updated, err := fixture.service.ToggleFeatured(context.Background(), product.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, 1, fixture.cache.setCalls)
	require.Len(t, fixture.cache.entries, 1)

	// Toggling back empties the cached selection.
	updated, err = fixture.service.ToggleFeatured(context.Background(), product.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsFeatured)
	assert.Empty(t, fixture.cache.entries)
}

func TestService_ToggleFeatured_UnknownProduct(t *testing.T) {
	fixture := newCatalogFixture()

	_, err := fixture.service.ToggleFeatured(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// # Discovery

func TestService_GetByCategory(t *testing.T) {
	fixture := newCatalogFixture()
	fixture.create(t, "Leather Tote Bag", "bags", 12900)
	fixture.create(t, "Canvas Backpack", "bags", 8900)
	fixture.create(t, "Wool Scarf", "accessories", 4900)

	bags, err := fixture.service.GetByCategory(context.Background(), "bags")
	require.NoError(t, err)
	assert.Len(t, bags, 2)

	empty, err := fixture.service.GetByCategory(context.Background(), "shoes")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestService_GetRecommendations(t *testing.T) {
	fixture := newCatalogFixture()
	for _, name := range []string{"One", "Two", "Three", "Four", "Five"} {
		fixture.create(t, name, "misc", 1000)
	}

	products, err := fixture.service.GetRecommendations(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, catalog.RecommendationCount)
}

// # Deletion

func TestService_Delete(t *testing.T) {
	fixture := newCatalogFixture()
	product := fixture.create(t, "Leather Tote Bag", "bags", 12900)

	require.NoError(t, fixture.service.Delete(context.Background(), product.ID))

	err := fixture.service.Delete(context.Background(), product.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
