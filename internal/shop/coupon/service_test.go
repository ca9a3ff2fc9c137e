// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package coupon_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/shop/coupon"
)

// # Test Doubles

type memoryCouponRepository struct {
	coupons []*coupon.Coupon
}

func (repository *memoryCouponRepository) Create(_ context.Context, entity *coupon.Coupon) error {
	clone := *entity
	repository.coupons = append(repository.coupons, &clone)
	return nil
}

func (repository *memoryCouponRepository) FindActiveByUser(_ context.Context, userID string) (*coupon.Coupon, error) {
	for index := len(repository.coupons) - 1; index >= 0; index-- {
		candidate := repository.coupons[index]
		if candidate.UserID == userID && candidate.IsActive {
			clone := *candidate
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Coupon")
}

func (repository *memoryCouponRepository) FindActiveByCode(_ context.Context, userID, code string) (*coupon.Coupon, error) {
	for _, candidate := range repository.coupons {
		if candidate.UserID == userID && candidate.Code == code && candidate.IsActive {
			clone := *candidate
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Coupon")
}

func (repository *memoryCouponRepository) Deactivate(_ context.Context, userID, code string) error {
	for _, candidate := range repository.coupons {
		if candidate.UserID == userID && candidate.Code == code {
			candidate.IsActive = false
		}
	}
	return nil
}

func (repository *memoryCouponRepository) DeleteByUser(_ context.Context, userID string) error {
	kept := repository.coupons[:0]
	for _, candidate := range repository.coupons {
		if candidate.UserID != userID {
			kept = append(kept, candidate)
		}
	}
	repository.coupons = kept
	return nil
}

// # Fixture

const testUserID = "user-1"

func seedCoupon(repository *memoryCouponRepository, code string, expiresAt time.Time) {
	repository.coupons = append(repository.coupons, &coupon.Coupon{
		ID:              "c-" + code,
		Code:            code,
		UserID:          testUserID,
		DiscountPercent: 20,
		ExpiresAt:       expiresAt,
		IsActive:        true,
		CreatedAt:       time.Now(),
	})
}

// # Lookup

func TestService_GetActive(t *testing.T) {
	repository := &memoryCouponRepository{}
	service := coupon.NewService(repository)

	t.Run("no_coupon_is_nil_not_error", func(t *testing.T) {
		active, err := service.GetActive(context.Background(), testUserID)
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("active_coupon", func(t *testing.T) {
		seedCoupon(repository, "SPRING20", time.Now().Add(time.Hour))

		active, err := service.GetActive(context.Background(), testUserID)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, "SPRING20", active.Code)
	})
}

// # Validation

func TestService_Validate(t *testing.T) {
	repository := &memoryCouponRepository{}
	service := coupon.NewService(repository)
	seedCoupon(repository, "SPRING20", time.Now().Add(time.Hour))

	valid, err := service.Validate(context.Background(), testUserID, "SPRING20")
	require.NoError(t, err)
	assert.Equal(t, 20, valid.DiscountPercent)

	_, err = service.Validate(context.Background(), testUserID, "UNKNOWN")
	require.Error(t, err)
	assert.Equal(t, 400, apperr.As(err).HTTPStatus)

	// Another user's coupon is invisible to this caller.
	repository.coupons = append(repository.coupons, &coupon.Coupon{
		ID: "c-other", Code: "OTHER10", UserID: "user-2",
		DiscountPercent: 10, ExpiresAt: time.Now().Add(time.Hour), IsActive: true,
	})
	_, err = service.Validate(context.Background(), testUserID, "OTHER10")
	assert.Error(t, err)
}

func TestService_Validate_ExpiredDeactivates(t *testing.T) {
	repository := &memoryCouponRepository{}
	service := coupon.NewService(repository)
	seedCoupon(repository, "STALE", time.Now().Add(-time.Hour))

	// First validation sees the expiry, deactivates, and rejects.
	_, err := service.Validate(context.Background(), testUserID, "STALE")
	require.Error(t, err)
	assert.Equal(t, "Coupon expired", apperr.As(err).Message)
	assert.False(t, repository.coupons[0].IsActive)

	// Second validation fails the unknown-code way, still a 400.
	_, err = service.Validate(context.Background(), testUserID, "STALE")
	require.Error(t, err)
	assert.Equal(t, 400, apperr.As(err).HTTPStatus)
}

// # Loyalty

func TestService_AwardLoyaltyCoupon(t *testing.T) {
	repository := &memoryCouponRepository{}
	service := coupon.NewService(repository)
	seedCoupon(repository, "SPRING20", time.Now().Add(time.Hour))

	awarded, err := service.AwardLoyaltyCoupon(context.Background(), testUserID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(awarded.Code, coupon.LoyaltyCodePrefix))
	assert.Equal(t, coupon.LoyaltyDiscountPercent, awarded.DiscountPercent)
	assert.True(t, awarded.IsActive)
	assert.True(t, awarded.ExpiresAt.After(time.Now()))

	// The old coupon is gone; the gift replaced it.
	require.Len(t, repository.coupons, 1)
	assert.Equal(t, awarded.Code, repository.coupons[0].Code)

	// Codes are unique across awards.
	again, err := service.AwardLoyaltyCoupon(context.Background(), testUserID)
	require.NoError(t, err)
	assert.NotEqual(t, awarded.Code, again.Code)
}
