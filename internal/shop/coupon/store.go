// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package coupon

import "context"

// # Coupon Data Access

// CouponRepository defines the data access contract for coupons.
type CouponRepository interface {

	/*
		FindActiveByUser returns the user's active coupon, if any.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *Coupon: Hydrated entity
		  - error: apperr.NotFound when the user holds no active coupon,
		    retrieval failures
	*/
	FindActiveByUser(context context.Context, userID string) (*Coupon, error)

	/*
		FindActiveByCode returns the user's active coupon with the given code.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - code: string

		Returns:
		  - *Coupon: Hydrated entity
		  - error: apperr.NotFound when absent, retrieval failures
	*/
	FindActiveByCode(context context.Context, userID, code string) (*Coupon, error)

	/*
		Create persists a brand-new coupon.

		Parameters:
		  - context: context.Context
		  - coupon: *Coupon

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, coupon *Coupon) error

	/*
		Deactivate marks the coupon with the given code inactive.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - code: string

		Returns:
		  - error: Persistence failures
	*/
	Deactivate(context context.Context, userID, code string) error

	/*
		DeleteByUser removes every coupon belonging to the user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Deletion failures
	*/
	DeleteByUser(context context.Context, userID string) error
}
