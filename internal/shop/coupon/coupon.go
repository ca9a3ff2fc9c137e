// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package coupon implements per-customer discount coupons.

A coupon belongs to exactly one customer and carries a percentage discount
with an expiry date. Validation is lazy: an expired coupon is deactivated the
first time someone tries to use it, so a later validation of the same code
fails the same way an unknown code does.

Core Responsibility:

  - Ownership: Coupons are looked up by (user, code), never globally.
  - Redemption: Checkout success deactivates the used coupon.
  - Loyalty: Large orders earn a fresh GIFT coupon, replacing older ones.
*/
package coupon

import "time"

// # Core Entities

// Coupon is a single-customer percentage discount.
type Coupon struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	UserID          string    `json:"user_id"`
	DiscountPercent int       `json:"discount_percent"`
	ExpiresAt       time.Time `json:"expires_at"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// IsExpired reports whether the coupon's expiry has passed.
func (coupon *Coupon) IsExpired() bool {
	return time.Now().After(coupon.ExpiresAt)
}

// # Loyalty Constants

const (
	// LoyaltyCodePrefix prefixes every loyalty coupon code.
	LoyaltyCodePrefix = "GIFT"

	// LoyaltyDiscountPercent is the discount carried by loyalty coupons.
	LoyaltyDiscountPercent = 10

	// LoyaltyCouponTTL is how long a loyalty coupon stays redeemable.
	LoyaltyCouponTTL = 30 * 24 * time.Hour
)

// # Field Identifiers

// Global field names for validation in the coupon domain.
const (
	FieldCode = "code"
)
