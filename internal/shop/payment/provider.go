// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package payment orchestrates checkout through a third-party payment provider.

The provider sits behind the [Provider] interface: the service layer prices
the checkout, applies coupon discounts, and records orders, while everything
gateway-specific (hosted session creation, payment status, provider-side
coupons) stays inside the Stripe implementation.

Core Responsibility:

  - Checkout: Priced sessions with optional percent-off discounts.
  - Completion: Idempotent order creation keyed by the provider session ID.
  - Loyalty: Large orders earn a GIFT coupon on first completion only.
*/
package payment

import "context"

// # Provider Boundary

// CheckoutLine is one priced line handed to the provider.
type CheckoutLine struct {
	Name            string
	ImageURL        string
	UnitAmountCents int64
	Quantity        int
}

// CreateSessionInput describes a hosted checkout session to open.
type CreateSessionInput struct {
	Lines []CheckoutLine

	// DiscountPercent applies a provider-side percent-off coupon when > 0.
	DiscountPercent int

	// Metadata rides on the session and comes back on retrieval. It is the
	// only state the completion flow can rely on.
	Metadata map[string]string

	SuccessURL string
	CancelURL  string
}

// SessionDetails is the provider's view of a checkout session.
type SessionDetails struct {
	ID               string
	Paid             bool
	AmountTotalCents int64
	Metadata         map[string]string
}

// Provider defines the payment gateway contract.
type Provider interface {

	/*
		CreateSession opens a hosted checkout session.

		Parameters:
		  - context: context.Context
		  - input: CreateSessionInput

		Returns:
		  - string: Provider session ID
		  - error: Gateway failures
	*/
	CreateSession(context context.Context, input CreateSessionInput) (string, error)

	/*
		RetrieveSession loads the current state of a checkout session.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - *SessionDetails: Payment status, amount, and metadata
		  - error: Gateway failures
	*/
	RetrieveSession(context context.Context, sessionID string) (*SessionDetails, error)
}
