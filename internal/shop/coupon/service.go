// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package coupon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/platform/sec"
	"github.com/taibuivan/selluna/pkg/uuid"
)

// Service implements coupon use cases.
type Service struct {
	couponRepository CouponRepository
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(couponRepo CouponRepository) *Service {
	return &Service{couponRepository: couponRepo}
}

// # Lookup & Validation

/*
GetActive returns the caller's active coupon, or nil when they hold none.

Description: A missing coupon is a normal state, not an error; the handler
serializes nil as null.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Coupon: Active coupon or nil
  - error: Database retrieval failures
*/
func (service *Service) GetActive(context context.Context, userID string) (*Coupon, error) {
	coupon, err := service.couponRepository.FindActiveByUser(context, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("coupon_service_get_active_failed: %w", err)
	}
	return coupon, nil
}

/*
Validate checks whether the caller may redeem the given code.

Description: Expiry is enforced lazily. The first validation past the expiry
deactivates the coupon, so a second attempt fails the unknown-code way.

Parameters:
  - context: context.Context
  - userID: string
  - code: string

Returns:
  - *Coupon: Redeemable coupon
  - error: BadRequest for unknown or expired codes, retrieval failures
*/
func (service *Service) Validate(context context.Context, userID, code string) (*Coupon, error) {
	coupon, err := service.couponRepository.FindActiveByCode(context, userID, code)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.BadRequest("Coupon not found")
		}
		return nil, fmt.Errorf("coupon_service_validate_failed: %w", err)
	}

	if coupon.IsExpired() {
		if err := service.couponRepository.Deactivate(context, userID, code); err != nil {
			return nil, fmt.Errorf("coupon_service_expire_failed: %w", err)
		}
		return nil, apperr.BadRequest("Coupon expired")
	}

	return coupon, nil
}

// # Redemption & Loyalty

/*
Deactivate marks a redeemed coupon inactive.

Parameters:
  - context: context.Context
  - userID: string
  - code: string

Returns:
  - error: Persistence failures
*/
func (service *Service) Deactivate(context context.Context, userID, code string) error {
	if err := service.couponRepository.Deactivate(context, userID, code); err != nil {
		return fmt.Errorf("coupon_service_deactivate_failed: %w", err)
	}
	return nil
}

/*
AwardLoyaltyCoupon grants a fresh GIFT coupon for a qualifying order.

Description: Any coupons the customer still holds are removed first; loyalty
rewards replace, never stack. Idempotency is the caller's job: the checkout
flow invokes this only when the payment session produced a brand-new order.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Coupon: Freshly minted coupon
  - error: Persistence failures
*/
func (service *Service) AwardLoyaltyCoupon(context context.Context, userID string) (*Coupon, error) {

	// Replace, never stack
	if err := service.couponRepository.DeleteByUser(context, userID); err != nil {
		return nil, fmt.Errorf("coupon_service_award_cleanup_failed: %w", err)
	}

	suffix, err := sec.GenerateSecureToken(4)
	if err != nil {
		return nil, fmt.Errorf("coupon_service_award_code_failed: %w", err)
	}

	coupon := &Coupon{
		ID:              uuid.New(),
		Code:            LoyaltyCodePrefix + strings.ToUpper(suffix),
		UserID:          userID,
		DiscountPercent: LoyaltyDiscountPercent,
		ExpiresAt:       time.Now().Add(LoyaltyCouponTTL),
		IsActive:        true,
	}

	if err := service.couponRepository.Create(context, coupon); err != nil {
		return nil, fmt.Errorf("coupon_service_award_create_failed: %w", err)
	}

	return coupon, nil
}
