// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package order persists completed purchases.

An order is written exactly once per successful payment session. The provider
session ID carries a unique constraint, which is what makes checkout-success
processing idempotent: replays find the existing order instead of creating a
second one.
*/
package order

import "time"

// # Core Entities

// Order is one completed purchase.
type Order struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	TotalCents        int64     `json:"total_cents"`
	ProviderSessionID string    `json:"provider_session_id"`
	CreatedAt         time.Time `json:"created_at"`
	Items             []Item    `json:"items"`
}

// Item is one purchased line, priced at checkout time.
type Item struct {
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}
