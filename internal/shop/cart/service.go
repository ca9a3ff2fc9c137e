// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import (
	"context"
	"fmt"

	"github.com/taibuivan/selluna/internal/shop/catalog"
)

// # Contracts & Types

// ProductFinder is the slice of the catalogue the cart needs: existence
// checks on add and bulk hydration on read.
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*catalog.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]catalog.Product, error)
}

// Service implements shopping cart use cases.
type Service struct {
	cartRepository CartRepository
	products       ProductFinder
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(cartRepo CartRepository, products ProductFinder) *Service {
	return &Service{
		cartRepository: cartRepo,
		products:       products,
	}
}

// # Cart Operations

/*
Get returns the user's cart hydrated with live product data.

Description: Lines whose product has since been deleted are dropped from the
view rather than erroring the whole cart.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []Line: Hydrated cart lines
  - error: Database retrieval failures
*/
func (service *Service) Get(context context.Context, userID string) ([]Line, error) {
	items, err := service.cartRepository.FindByUser(context, userID)
	if err != nil {
		return nil, fmt.Errorf("cart_service_get_failed: %w", err)
	}

	if len(items) == 0 {
		return []Line{}, nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := service.products.FindByIDs(context, ids)
	if err != nil {
		return nil, fmt.Errorf("cart_service_hydrate_failed: %w", err)
	}

	productsByID := make(map[string]catalog.Product, len(products))
	for _, product := range products {
		productsByID[product.ID] = product
	}

	lines := make([]Line, 0, len(items))
	for _, item := range items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, Line{Product: product, Quantity: item.Quantity})
	}

	return lines, nil
}

/*
Add puts one unit of a product into the cart.

Description: Adding a product already in the cart bumps its quantity; the
cart never grows a duplicate line for the same product.

Parameters:
  - context: context.Context
  - userID: string
  - productID: string

Returns:
  - []Line: Hydrated cart after the add
  - error: apperr.NotFound for unknown products, persistence failures
*/
func (service *Service) Add(context context.Context, userID, productID string) ([]Line, error) {

	// The product must exist before it can be carted
	if _, err := service.products.FindByID(context, productID); err != nil {
		return nil, err
	}

	if err := service.cartRepository.Upsert(context, userID, productID); err != nil {
		return nil, fmt.Errorf("cart_service_add_failed: %w", err)
	}

	return service.Get(context, userID)
}

/*
SetQuantity overwrites the quantity of a cart line.

Description: Zero means "remove the line". Negative quantities are rejected
by the handler's validation before reaching this point.

Parameters:
  - context: context.Context
  - userID: string
  - productID: string
  - quantity: int

Returns:
  - []Line: Hydrated cart after the update
  - error: apperr.NotFound for absent lines, persistence failures
*/
func (service *Service) SetQuantity(context context.Context, userID, productID string, quantity int) ([]Line, error) {
	if quantity == 0 {
		if err := service.cartRepository.Remove(context, userID, productID); err != nil {
			return nil, err
		}
		return service.Get(context, userID)
	}

	if err := service.cartRepository.SetQuantity(context, userID, productID, quantity); err != nil {
		return nil, err
	}

	return service.Get(context, userID)
}

/*
Remove deletes one line, or empties the whole cart when productID is blank.

Parameters:
  - context: context.Context
  - userID: string
  - productID: string ("" clears the cart)

Returns:
  - []Line: Hydrated cart after the removal
  - error: apperr.NotFound for absent lines, persistence failures
*/
func (service *Service) Remove(context context.Context, userID, productID string) ([]Line, error) {
	if productID == "" {
		if err := service.cartRepository.Clear(context, userID); err != nil {
			return nil, fmt.Errorf("cart_service_clear_failed: %w", err)
		}
		return []Line{}, nil
	}

	if err := service.cartRepository.Remove(context, userID, productID); err != nil {
		return nil, err
	}

	return service.Get(context, userID)
}

/*
Clear empties the user's cart, typically after a completed checkout.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Deletion failures
*/
func (service *Service) Clear(context context.Context, userID string) error {
	if err := service.cartRepository.Clear(context, userID); err != nil {
		return fmt.Errorf("cart_service_clear_failed: %w", err)
	}
	return nil
}
