// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import "context"

// # Cart Data Access

// CartRepository defines the data access contract for cart lines.
type CartRepository interface {

	/*
		FindByUser returns every cart line belonging to the user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []Item: Stored lines
		  - error: Database retrieval failures
	*/
	FindByUser(context context.Context, userID string) ([]Item, error)

	/*
		Upsert adds a product to the cart, or bumps its quantity by one if
		the line already exists.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - productID: string

		Returns:
		  - error: Persistence failures
	*/
	Upsert(context context.Context, userID, productID string) error

	/*
		SetQuantity overwrites the quantity of an existing line. Quantity
		must be at least 1; removal goes through Remove.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - productID: string
		  - quantity: int

		Returns:
		  - error: apperr.NotFound when the line is absent, persistence failures
	*/
	SetQuantity(context context.Context, userID, productID string, quantity int) error

	/*
		Remove deletes one line from the cart.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - productID: string

		Returns:
		  - error: apperr.NotFound when the line is absent, deletion failures
	*/
	Remove(context context.Context, userID, productID string) error

	/*
		Clear deletes every line in the user's cart.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Deletion failures
	*/
	Clear(context context.Context, userID string) error
}
