// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apiclient is the Go client for the Selluna storefront API.

It wraps net/http with a cookie jar so the session cookies issued by the
server flow automatically, and it hides the session refresh cycle: when a
call comes back 401 the client refreshes the session once and replays the
original request, with concurrent expiries coalesced into a single refresh.

Usage:

	client, err := apiclient.New("https://api.selluna.app")
	if err != nil { ... }

	user, err := client.Login(ctx, "ada@selluna.app", "s3cret")
	products, err := client.FeaturedProducts(ctx)

Application code never sees the 401 → refresh → retry cycle.
*/
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// # Wire Types
//
// Mirrors of the server's JSON payloads. The client deliberately redeclares
// them so importing it never drags in server internals.

// User is an authenticated account as the API exposes it.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Product is one catalogue entry.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CartLine is one hydrated cart entry.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Coupon is a per-user discount coupon.
type Coupon struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	ExpiresAt       time.Time `json:"expires_at"`
	IsActive        bool      `json:"is_active"`
}

// CheckoutProduct is one requested checkout line.
type CheckoutProduct struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// CheckoutSession is a priced provider session awaiting payment.
type CheckoutSession struct {
	ID               string `json:"id"`
	TotalAmountCents int64  `json:"total_amount_cents"`
}

// OrderItem is one line of a recorded order.
type OrderItem struct {
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// Order is a settled purchase.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	TotalCents int64       `json:"total_cents"`
	CreatedAt  time.Time   `json:"created_at"`
	Items      []OrderItem `json:"items"`
}

// # Errors

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (apiError *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", apiError.Status, apiError.Code, apiError.Message)
}

// IsAuthError reports whether err is an [APIError] carrying a 401.
func IsAuthError(err error) bool {
	apiError, ok := err.(*APIError)
	return ok && apiError.Status == http.StatusUnauthorized
}

// # Client

const defaultRequestTimeout = 30 * time.Second

// Client talks to the Selluna API on behalf of one session.
//
// Not a zero value type: construct with [New] so the cookie jar and the
// session manager are wired.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *SessionManager
}

/*
New constructs a [Client] against the given base URL.

Parameters:
  - baseURL: string, scheme and host of the API (no trailing slash needed)

Returns:
  - *Client: Ready-to-use client with its own cookie jar
  - error: Cookie jar construction failures
*/
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("apiclient_jar_init_failed: %w", err)
	}

	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: defaultRequestTimeout,
		},
	}
	client.session = NewSessionManager(client.refreshSession)

	return client, nil
}

// # Request Cycle

/*
do executes one API call with the automatic refresh-and-replay cycle.

Description: A 401 on a not-yet-retried request triggers exactly one
session refresh through the [SessionManager]; on refresh success the
original request is replayed once, marked retried. On refresh failure the
local session state is cleared and the ORIGINAL 401 propagates — the caller
sees the failure that started the cycle, not the refresh's.

Parameters:
  - ctx: context.Context
  - method: string
  - path: string, API path starting with /
  - body: any, JSON-encoded when non-nil
  - out: any, destination for the data envelope, ignored when nil

Returns:
  - error: *APIError for non-2xx responses, transport errors otherwise
*/
func (client *Client) do(ctx context.Context, method, path string, body, out any) error {
	apiError, err := client.send(ctx, method, path, body, out)
	if err != nil {
		return err
	}
	if apiError == nil {
		return nil
	}
	if apiError.Status != http.StatusUnauthorized {
		return apiError
	}

	// ── 401: refresh once, then replay once ───────────────────────────────
	if refreshErr := client.session.EnsureFreshSession(ctx); refreshErr != nil {
		client.clearSession()
		return apiError
	}

	replayError, err := client.send(ctx, method, path, body, out)
	if err != nil {
		return err
	}
	if replayError != nil {
		return replayError
	}
	return nil
}

// send performs a single round trip. A non-2xx status is returned as an
// *APIError value, not as the error result, so do can branch on it.
func (client *Client) send(ctx context.Context, method, path string, body, out any) (*APIError, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient_encode_failed: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("apiclient_request_build_failed: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("apiclient_round_trip_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		var envelope struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		_ = json.NewDecoder(response.Body).Decode(&envelope)
		return &APIError{
			Status:  response.StatusCode,
			Code:    envelope.Code,
			Message: envelope.Error,
		}, nil
	}

	if out != nil {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
			return nil, fmt.Errorf("apiclient_decode_failed: %w", err)
		}
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return nil, fmt.Errorf("apiclient_decode_failed: %w", err)
		}
	}

	return nil, nil
}

// refreshSession is the single refresh round trip behind the session
// manager. It bypasses do so a failed refresh can never recurse.
func (client *Client) refreshSession(ctx context.Context) error {
	apiError, err := client.send(ctx, http.MethodPost, "/api/v1/auth/refresh-token", nil, nil)
	if err != nil {
		return err
	}
	if apiError != nil {
		return apiError
	}
	return nil
}

// clearSession discards all local session state by replacing the cookie jar.
func (client *Client) clearSession() {
	if jar, err := cookiejar.New(nil); err == nil {
		client.httpClient.Jar = jar
	}
}

// # Account

// sessionResponse is the body of signup and login.
type sessionResponse struct {
	User    User   `json:"user"`
	Message string `json:"message"`
}

// Signup registers a new account and starts its session.
func (client *Client) Signup(ctx context.Context, name, email, password string) (*User, error) {
	payload := map[string]string{"name": name, "email": email, "password": password}

	var body sessionResponse
	if err := client.do(ctx, http.MethodPost, "/api/v1/auth/signup", payload, &body); err != nil {
		return nil, err
	}
	return &body.User, nil
}

// Login authenticates with email and password.
func (client *Client) Login(ctx context.Context, email, password string) (*User, error) {
	payload := map[string]string{"email": email, "password": password}

	var body sessionResponse
	if err := client.do(ctx, http.MethodPost, "/api/v1/auth/login", payload, &body); err != nil {
		return nil, err
	}
	return &body.User, nil
}

// Logout revokes the session server-side and clears local state.
func (client *Client) Logout(ctx context.Context) error {
	err := client.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	client.clearSession()
	return err
}

// Profile returns the authenticated account.
func (client *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := client.do(ctx, http.MethodGet, "/api/v1/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// # Catalogue

// FeaturedProducts returns the featured selection.
func (client *Client) FeaturedProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := client.do(ctx, http.MethodGet, "/api/v1/products/featured", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// RecommendedProducts returns a small random selection.
func (client *Client) RecommendedProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := client.do(ctx, http.MethodGet, "/api/v1/products/recommended", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductsByCategory returns the products of one category.
func (client *Client) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	var products []Product
	if err := client.do(ctx, http.MethodGet, "/api/v1/products/category/"+category, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// # Cart

// Cart returns the caller's hydrated cart.
func (client *Client) Cart(ctx context.Context) ([]CartLine, error) {
	var lines []CartLine
	if err := client.do(ctx, http.MethodGet, "/api/v1/cart", nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddToCart adds one unit of a product, incrementing an existing line.
func (client *Client) AddToCart(ctx context.Context, productID string) ([]CartLine, error) {
	payload := map[string]string{"product_id": productID}

	var lines []CartLine
	if err := client.do(ctx, http.MethodPost, "/api/v1/cart", payload, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// SetCartQuantity sets a line's quantity; zero removes the line.
func (client *Client) SetCartQuantity(ctx context.Context, productID string, quantity int) ([]CartLine, error) {
	payload := map[string]int{"quantity": quantity}

	var lines []CartLine
	if err := client.do(ctx, http.MethodPut, "/api/v1/cart/"+productID, payload, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// RemoveFromCart removes one product line; an empty ID clears the cart.
func (client *Client) RemoveFromCart(ctx context.Context, productID string) ([]CartLine, error) {
	payload := map[string]string{"product_id": productID}

	var lines []CartLine
	if err := client.do(ctx, http.MethodDelete, "/api/v1/cart", payload, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// # Coupons

// ActiveCoupon returns the caller's active coupon, or nil when none exists.
func (client *Client) ActiveCoupon(ctx context.Context) (*Coupon, error) {
	var active *Coupon
	if err := client.do(ctx, http.MethodGet, "/api/v1/coupons", nil, &active); err != nil {
		return nil, err
	}
	return active, nil
}

// CouponValidation is the outcome of a successful validation.
type CouponValidation struct {
	Message         string `json:"message"`
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
}

// ValidateCoupon checks a code against the caller's coupons.
func (client *Client) ValidateCoupon(ctx context.Context, code string) (*CouponValidation, error) {
	payload := map[string]string{"code": code}

	var validation CouponValidation
	if err := client.do(ctx, http.MethodPost, "/api/v1/coupons/validate", payload, &validation); err != nil {
		return nil, err
	}
	return &validation, nil
}

// # Checkout

// CreateCheckoutSession opens a priced provider session.
func (client *Client) CreateCheckoutSession(ctx context.Context, products []CheckoutProduct, couponCode string) (*CheckoutSession, error) {
	payload := map[string]any{"products": products, "coupon_code": couponCode}

	var session CheckoutSession
	if err := client.do(ctx, http.MethodPost, "/api/v1/payments/checkout-session", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// checkoutSuccessResponse is the body of a completed checkout.
type checkoutSuccessResponse struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

// CompleteCheckout finalizes a paid session into an order.
func (client *Client) CompleteCheckout(ctx context.Context, sessionID string) (*Order, error) {
	payload := map[string]string{"session_id": sessionID}

	var body checkoutSuccessResponse
	if err := client.do(ctx, http.MethodPost, "/api/v1/payments/checkout-success", payload, &body); err != nil {
		return nil, err
	}
	return &body.Order, nil
}
