// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/taibuivan/selluna/pkg/pagination"
)

// # Product Data Access

// ProductRepository defines the data access contract for products.
type ProductRepository interface {

	/*
		FindByID returns the product with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Product: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Product, error)

	/*
		FindByIDs returns the products matching the given IDs, in no
		particular order. Unknown IDs are silently absent from the result.

		Parameters:
		  - context: context.Context
		  - ids: []string

		Returns:
		  - []Product: Hydrated entities
		  - error: Database retrieval failures
	*/
	FindByIDs(context context.Context, ids []string) ([]Product, error)

	/*
		List returns one page of products plus the total count.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []Product: Page of entities
		  - int: Total product count
		  - error: Database retrieval failures
	*/
	List(context context.Context, params pagination.Params) ([]Product, int, error)

	/*
		FindFeatured returns every product flagged as featured.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Product: Featured entities
		  - error: Database retrieval failures
	*/
	FindFeatured(context context.Context) ([]Product, error)

	/*
		FindByCategory returns every product in the given category.

		Parameters:
		  - context: context.Context
		  - category: string

		Returns:
		  - []Product: Matching entities
		  - error: Database retrieval failures
	*/
	FindByCategory(context context.Context, category string) ([]Product, error)

	/*
		FindRandom returns up to limit products sampled at random.

		Parameters:
		  - context: context.Context
		  - limit: int

		Returns:
		  - []Product: Random entities
		  - error: Database retrieval failures
	*/
	FindRandom(context context.Context, limit int) ([]Product, error)

	/*
		Create persists a brand-new product to the storage.

		Parameters:
		  - context: context.Context
		  - product: *Product

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, product *Product) error

	/*
		SetFeatured flips the featured flag on a product.

		Parameters:
		  - context: context.Context
		  - id: string
		  - isFeatured: bool

		Returns:
		  - error: Persistence failures
	*/
	SetFeatured(context context.Context, id string, isFeatured bool) error

	/*
		Delete permanently removes a product.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, id string) error
}

// # Featured Cache

// FeaturedCache defines the contract for the cached featured-product
// selection. Implementations report a miss as apperr.NotFound.
type FeaturedCache interface {

	/*
		Get returns the cached featured selection.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Product: Cached entities
		  - error: apperr.NotFound on miss, retrieval failures
	*/
	Get(context context.Context) ([]Product, error)

	/*
		Set replaces the cached featured selection.

		Parameters:
		  - context: context.Context
		  - products: []Product

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, products []Product) error
}
