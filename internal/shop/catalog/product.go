// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the product domain of the Selluna storefront.

It manages the lifecycle of sellable products including metadata, category
browsing, and the curated featured selection.

Core Responsibility:

  - Catalogue: Product CRUD for administrators.
  - Discovery: Category listings, random recommendations, featured products.
  - Caching: The featured selection is served from Redis with a database
    fallback, rebuilt whenever an administrator toggles a product.

This package acts as the source of truth for all product data models.
*/
package catalog

import "time"

// # Core Entities

// Product is the central aggregate of the Selluna catalogue.
//
// Prices are stored in integer cents. All arithmetic downstream (cart
// subtotals, checkout totals, discounts) stays in cents; nothing in the
// backend ever handles a floating-point amount.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"` // URL-safe identifier
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation in the catalog domain.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPriceCents  = "price_cents"
	FieldImageURL    = "image_url"
	FieldCategory    = "category"
)

// RecommendationCount is the number of random products served by the
// recommendations endpoint.
const RecommendationCount = 3
