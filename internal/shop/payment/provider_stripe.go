// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// # Stripe Provider

// StripeProvider implements the Provider interface against Stripe Checkout.
type StripeProvider struct {
	api        *client.API
	successURL string
	cancelURL  string
}

// NewStripeProvider creates a Stripe-backed Provider.
//
// The secret key is configuration; it is handed straight to the Stripe
// client and never logged.
func NewStripeProvider(secretKey, successURL, cancelURL string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeProvider{
		api:        api,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

/*
CreateSession opens a hosted Stripe Checkout session.

Description: Line items are priced inline (no pre-registered Stripe
products). A positive DiscountPercent first mints a single-use percent-off
coupon, then attaches it to the session.

Parameters:
  - context: context.Context
  - input: CreateSessionInput

Returns:
  - string: Stripe session ID
  - error: Gateway failures
*/
func (provider *StripeProvider) CreateSession(context context.Context, input CreateSessionInput) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(input.Lines))
	for _, line := range input.Lines {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(line.Name),
		}
		if line.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{line.ImageURL})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount:  stripe.Int64(line.UnitAmountCents),
				ProductData: productData,
			},
			Quantity: stripe.Int64(int64(line.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(provider.successURL),
		CancelURL:          stripe.String(provider.cancelURL),
		LineItems:          lineItems,
	}
	params.Context = context

	if input.DiscountPercent > 0 {
		couponID, err := provider.createPercentCoupon(context, input.DiscountPercent)
		if err != nil {
			return "", err
		}
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{
			{Coupon: stripe.String(couponID)},
		}
	}

	for key, value := range input.Metadata {
		params.AddMetadata(key, value)
	}

	session, err := provider.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe_provider_create_session_failed: %w", err)
	}

	return session.ID, nil
}

/*
RetrieveSession loads the current state of a Stripe Checkout session.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *SessionDetails: Payment status, amount total, and metadata
  - error: Gateway failures
*/
func (provider *StripeProvider) RetrieveSession(context context.Context, sessionID string) (*SessionDetails, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = context

	session, err := provider.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe_provider_retrieve_session_failed: %w", err)
	}

	return &SessionDetails{
		ID:               session.ID,
		Paid:             session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotalCents: session.AmountTotal,
		Metadata:         session.Metadata,
	}, nil
}

// createPercentCoupon mints a single-use Stripe coupon for the discount.
func (provider *StripeProvider) createPercentCoupon(context context.Context, percentOff int) (string, error) {
	params := &stripe.CouponParams{
		PercentOff: stripe.Float64(float64(percentOff)),
		Duration:   stripe.String(string(stripe.CouponDurationOnce)),
	}
	params.Context = context

	stripeCoupon, err := provider.api.Coupons.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe_provider_create_coupon_failed: %w", err)
	}

	return stripeCoupon.ID, nil
}
