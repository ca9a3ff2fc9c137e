// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/shop/catalog"
	"github.com/taibuivan/selluna/internal/shop/coupon"
	"github.com/taibuivan/selluna/internal/shop/order"
	"github.com/taibuivan/selluna/pkg/uuid"
)

// # Contracts & Types

// LoyaltyThresholdCents is the order total (in cents) from which a completed
// checkout earns the customer a loyalty coupon.
const LoyaltyThresholdCents = 20000

// Session metadata keys. The completion flow reconstructs the order purely
// from this metadata, so the keys are part of the provider contract.
const (
	metadataUserID     = "userId"
	metadataCouponCode = "couponCode"
	metadataProducts   = "products"
)

// ProductFinder is the slice of the catalogue checkout needs for pricing.
type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]catalog.Product, error)
}

// CouponManager is the slice of the coupon domain checkout needs.
type CouponManager interface {
	Validate(ctx context.Context, userID, code string) (*coupon.Coupon, error)
	Deactivate(ctx context.Context, userID, code string) error
	AwardLoyaltyCoupon(ctx context.Context, userID string) (*coupon.Coupon, error)
}

// Service implements checkout use cases.
type Service struct {
	provider        Provider
	products        ProductFinder
	coupons         CouponManager
	orderRepository order.OrderRepository
	logger          *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	provider Provider,
	products ProductFinder,
	coupons CouponManager,
	orderRepo order.OrderRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		provider:        provider,
		products:        products,
		coupons:         coupons,
		orderRepository: orderRepo,
		logger:          logger,
	}
}

// CheckoutProduct is one requested checkout line: product plus quantity.
type CheckoutProduct struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// CheckoutSession is the priced session handed back to the client.
type CheckoutSession struct {
	ID               string `json:"id"`
	TotalAmountCents int64  `json:"total_amount_cents"`
}

// metadataLine is the per-product record serialized into session metadata.
type metadataLine struct {
	ID         string `json:"id"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

// # Checkout Session

/*
CreateCheckoutSession prices the requested products and opens a provider
session.

Description: Prices come from the live catalogue, never from the request.
When a coupon code is supplied it must be the caller's own valid coupon; its
discount is applied provider-side and the total returned here reflects it.
No loyalty award happens at session creation; rewards are granted only once
the payment settles.

Parameters:
  - context: context.Context
  - userID: string
  - requested: []CheckoutProduct
  - couponCode: string (optional)

Returns:
  - *CheckoutSession: Session ID plus discounted total
  - error: BadRequest for empty or unknown products, coupon failures,
    gateway failures
*/
func (service *Service) CreateCheckoutSession(context context.Context, userID string, requested []CheckoutProduct, couponCode string) (*CheckoutSession, error) {
	if len(requested) == 0 {
		return nil, apperr.BadRequest("Invalid or empty products array")
	}

	ids := make([]string, 0, len(requested))
	for _, item := range requested {
		if item.Quantity < 1 {
			return nil, apperr.BadRequest("Product quantity must be at least 1")
		}
		ids = append(ids, item.ID)
	}

	products, err := service.products.FindByIDs(context, ids)
	if err != nil {
		return nil, fmt.Errorf("payment_service_price_lookup_failed: %w", err)
	}

	productsByID := make(map[string]catalog.Product, len(products))
	for _, product := range products {
		productsByID[product.ID] = product
	}

	// Price every line from the catalogue; totals stay in integer cents.
	var totalCents int64
	lines := make([]CheckoutLine, 0, len(requested))
	metadataLines := make([]metadataLine, 0, len(requested))
	for _, item := range requested {
		product, ok := productsByID[item.ID]
		if !ok {
			return nil, apperr.BadRequest("Unknown product in checkout")
		}

		totalCents += product.PriceCents * int64(item.Quantity)
		lines = append(lines, CheckoutLine{
			Name:            product.Name,
			ImageURL:        product.ImageURL,
			UnitAmountCents: product.PriceCents,
			Quantity:        item.Quantity,
		})
		metadataLines = append(metadataLines, metadataLine{
			ID:         product.ID,
			Quantity:   item.Quantity,
			PriceCents: product.PriceCents,
		})
	}

	discountPercent := 0
	if couponCode != "" {
		validCoupon, err := service.coupons.Validate(context, userID, couponCode)
		if err != nil {
			return nil, err
		}
		discountPercent = validCoupon.DiscountPercent
		totalCents -= totalCents * int64(discountPercent) / 100
	}

	encodedProducts, err := json.Marshal(metadataLines)
	if err != nil {
		return nil, fmt.Errorf("payment_service_metadata_encode_failed: %w", err)
	}

	sessionID, err := service.provider.CreateSession(context, CreateSessionInput{
		Lines:           lines,
		DiscountPercent: discountPercent,
		Metadata: map[string]string{
			metadataUserID:     userID,
			metadataCouponCode: couponCode,
			metadataProducts:   string(encodedProducts),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("payment_service_create_session_failed: %w", err)
	}

	return &CheckoutSession{
		ID:               sessionID,
		TotalAmountCents: totalCents,
	}, nil
}

// # Checkout Completion

/*
CompleteCheckout finalizes a paid session into an order.

Description: Idempotent by provider session ID. The first completion
deactivates the used coupon, records the order from session metadata, and
awards the loyalty coupon when the total qualifies. Replays return the
already-recorded order and trigger no side effects.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *order.Order: Recorded order
  - error: BadRequest for unpaid sessions, gateway or storage failures
*/
func (service *Service) CompleteCheckout(context context.Context, sessionID string) (*order.Order, error) {
	session, err := service.provider.RetrieveSession(context, sessionID)
	if err != nil {
		return nil, fmt.Errorf("payment_service_retrieve_session_failed: %w", err)
	}

	if !session.Paid {
		return nil, apperr.BadRequest("Payment not completed")
	}

	// Replay: the order already exists, return it without side effects.
	existing, err := service.orderRepository.FindByProviderSession(context, session.ID)
	if err == nil {
		return existing, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("payment_service_order_lookup_failed: %w", err)
	}

	userID := session.Metadata[metadataUserID]
	if userID == "" {
		return nil, apperr.BadRequest("Session carries no user")
	}

	// A redeemed coupon is spent the moment its session settles.
	if couponCode := session.Metadata[metadataCouponCode]; couponCode != "" {
		if err := service.coupons.Deactivate(context, userID, couponCode); err != nil {
			return nil, err
		}
	}

	var metadataLines []metadataLine
	if err := json.Unmarshal([]byte(session.Metadata[metadataProducts]), &metadataLines); err != nil {
		return nil, fmt.Errorf("payment_service_metadata_decode_failed: %w", err)
	}

	items := make([]order.Item, 0, len(metadataLines))
	for _, line := range metadataLines {
		items = append(items, order.Item{
			ProductID:      line.ID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.PriceCents,
		})
	}

	newOrder := &order.Order{
		ID:                uuid.New(),
		UserID:            userID,
		TotalCents:        session.AmountTotalCents,
		ProviderSessionID: session.ID,
		Items:             items,
	}

	if err := service.orderRepository.Create(context, newOrder); err != nil {
		return nil, fmt.Errorf("payment_service_order_create_failed: %w", err)
	}

	// Loyalty reward rides on the freshly created order only; a failure here
	// must not undo a recorded purchase.
	if newOrder.TotalCents >= LoyaltyThresholdCents {
		if _, err := service.coupons.AwardLoyaltyCoupon(context, userID); err != nil {
			service.logger.Warn("payment_loyalty_award_failed",
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
		}
	}

	return newOrder, nil
}
