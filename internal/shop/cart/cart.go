// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cart implements each customer's shopping cart.

The cart is a mapping from product ID to quantity, keyed per user. A product
appears at most once; adding it again bumps the quantity instead of creating
a duplicate line. Quantities are at least 1 by construction: setting a line
to zero removes it.

Core Responsibility:

  - State: One (userID, productID) -> quantity row per cart line.
  - Hydration: Cart reads join live product data so prices are never stale.
  - Checkout: The payment flow reads the cart to price a checkout session.
*/
package cart

import (
	"time"

	"github.com/taibuivan/selluna/internal/shop/catalog"
)

// # Core Entities

// Item is one stored cart line.
type Item struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Line is a cart line hydrated with its live product.
//
// Products deleted from the catalogue after being carted simply drop out of
// the hydrated view.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// # Field Identifiers

// Global field names for validation in the cart domain.
const (
	FieldProductID = "product_id"
	FieldQuantity  = "quantity"
)
