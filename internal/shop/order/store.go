// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import "context"

// # Order Data Access

// OrderRepository defines the data access contract for orders.
type OrderRepository interface {

	/*
		Create persists an order together with its line items in one
		transaction.

		Parameters:
		  - context: context.Context
		  - order: *Order

		Returns:
		  - error: Persistence failures, including the unique-session
		    constraint violation
	*/
	Create(context context.Context, order *Order) error

	/*
		FindByProviderSession returns the order recorded for a payment
		session, if any.

		Parameters:
		  - context: context.Context
		  - providerSessionID: string

		Returns:
		  - *Order: Hydrated entity with items
		  - error: apperr.NotFound when absent, retrieval failures
	*/
	FindByProviderSession(context context.Context, providerSessionID string) (*Order, error)
}
