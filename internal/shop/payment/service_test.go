// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/shop/catalog"
	"github.com/taibuivan/selluna/internal/shop/coupon"
	"github.com/taibuivan/selluna/internal/shop/order"
	"github.com/taibuivan/selluna/internal/shop/payment"
)

// # Test Doubles

// fakeProvider records created sessions and serves canned retrievals.
type fakeProvider struct {
	created   []payment.CreateSessionInput
	sessions  map[string]*payment.SessionDetails
	createErr error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: map[string]*payment.SessionDetails{}}
}

func (provider *fakeProvider) CreateSession(_ context.Context, input payment.CreateSessionInput) (string, error) {
	if provider.createErr != nil {
		return "", provider.createErr
	}
	provider.created = append(provider.created, input)
	return "sess_test_1", nil
}

func (provider *fakeProvider) RetrieveSession(_ context.Context, sessionID string) (*payment.SessionDetails, error) {
	details, ok := provider.sessions[sessionID]
	if !ok {
		return nil, assert.AnError
	}
	return details, nil
}

type fakeProductFinder struct {
	products map[string]catalog.Product
}

func (finder *fakeProductFinder) FindByIDs(_ context.Context, ids []string) ([]catalog.Product, error) {
	found := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := finder.products[id]; ok {
			found = append(found, product)
		}
	}
	return found, nil
}

// fakeCouponManager serves one valid coupon and records lifecycle calls.
type fakeCouponManager struct {
	valid       *coupon.Coupon
	deactivated []string
	awarded     []string
}

func (manager *fakeCouponManager) Validate(_ context.Context, userID, code string) (*coupon.Coupon, error) {
	if manager.valid != nil && manager.valid.UserID == userID && manager.valid.Code == code {
		return manager.valid, nil
	}
	return nil, apperr.BadRequest("Coupon not found")
}

func (manager *fakeCouponManager) Deactivate(_ context.Context, userID, code string) error {
	manager.deactivated = append(manager.deactivated, code)
	return nil
}

func (manager *fakeCouponManager) AwardLoyaltyCoupon(_ context.Context, userID string) (*coupon.Coupon, error) {
	manager.awarded = append(manager.awarded, userID)
	return &coupon.Coupon{Code: "GIFTTEST", UserID: userID, DiscountPercent: 10}, nil
}

type memoryOrderRepository struct {
	orders map[string]*order.Order
}

func newMemoryOrderRepository() *memoryOrderRepository {
	return &memoryOrderRepository{orders: map[string]*order.Order{}}
}

func (repository *memoryOrderRepository) Create(_ context.Context, entity *order.Order) error {
	if _, exists := repository.orders[entity.ProviderSessionID]; exists {
		return assert.AnError
	}
	clone := *entity
	repository.orders[entity.ProviderSessionID] = &clone
	return nil
}

func (repository *memoryOrderRepository) FindByProviderSession(_ context.Context, providerSessionID string) (*order.Order, error) {
	entity, ok := repository.orders[providerSessionID]
	if !ok {
		return nil, apperr.NotFound("Order")
	}
	clone := *entity
	return &clone, nil
}

// # Fixture

const testUserID = "user-1"

type paymentFixture struct {
	service  *payment.Service
	provider *fakeProvider
	coupons  *fakeCouponManager
	orders   *memoryOrderRepository
}

func newPaymentFixture() *paymentFixture {
	provider := newFakeProvider()
	coupons := &fakeCouponManager{}
	orders := newMemoryOrderRepository()
	finder := &fakeProductFinder{products: map[string]catalog.Product{
		"p1": {ID: "p1", Name: "Leather Tote Bag", PriceCents: 12900, ImageURL: "https://img.selluna.app/p1.jpg"},
		"p2": {ID: "p2", Name: "Wool Scarf", PriceCents: 4900},
	}}

	return &paymentFixture{
		service:  payment.NewService(provider, finder, coupons, orders, slog.Default()),
		provider: provider,
		coupons:  coupons,
		orders:   orders,
	}
}

// # Session Creation

func TestService_CreateCheckoutSession(t *testing.T) {
	fixture := newPaymentFixture()

	session, err := fixture.service.CreateCheckoutSession(context.Background(), testUserID,
		[]payment.CheckoutProduct{{ID: "p1", Quantity: 2}, {ID: "p2", Quantity: 1}}, "")

	require.NoError(t, err)
	assert.Equal(t, "sess_test_1", session.ID)
	// 2 * 12900 + 4900, priced from the catalogue.
	assert.Equal(t, int64(30700), session.TotalAmountCents)

	require.Len(t, fixture.provider.created, 1)
	input := fixture.provider.created[0]
	assert.Len(t, input.Lines, 2)
	assert.Zero(t, input.DiscountPercent)
	assert.Equal(t, testUserID, input.Metadata["userId"])
	assert.Contains(t, input.Metadata["products"], `"id":"p1"`)

	// No loyalty award at session creation time.
	assert.Empty(t, fixture.coupons.awarded)
}

func TestService_CreateCheckoutSession_WithCoupon(t *testing.T) {
	fixture := newPaymentFixture()
	fixture.coupons.valid = &coupon.Coupon{
		Code: "SPRING20", UserID: testUserID, DiscountPercent: 20,
		ExpiresAt: time.Now().Add(time.Hour), IsActive: true,
	}

	session, err := fixture.service.CreateCheckoutSession(context.Background(), testUserID,
		[]payment.CheckoutProduct{{ID: "p1", Quantity: 1}}, "SPRING20")

	require.NoError(t, err)
	// 12900 minus 20%.
	assert.Equal(t, int64(10320), session.TotalAmountCents)
	assert.Equal(t, 20, fixture.provider.created[0].DiscountPercent)
	assert.Equal(t, "SPRING20", fixture.provider.created[0].Metadata["couponCode"])
}

func TestService_CreateCheckoutSession_Rejections(t *testing.T) {
	fixture := newPaymentFixture()

	tests := []struct {
		name       string
		products   []payment.CheckoutProduct
		couponCode string
	}{
		{"empty_products", nil, ""},
		{"zero_quantity", []payment.CheckoutProduct{{ID: "p1", Quantity: 0}}, ""},
		{"unknown_product", []payment.CheckoutProduct{{ID: "ghost", Quantity: 1}}, ""},
		{"unknown_coupon", []payment.CheckoutProduct{{ID: "p1", Quantity: 1}}, "NOPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.service.CreateCheckoutSession(context.Background(), testUserID, tt.products, tt.couponCode)
			require.Error(t, err)
			assert.Equal(t, 400, apperr.As(err).HTTPStatus)
		})
	}
}

// # Completion

func paidSession(totalCents int64, couponCode string) *payment.SessionDetails {
	return &payment.SessionDetails{
		ID:               "sess_test_1",
		Paid:             true,
		AmountTotalCents: totalCents,
		Metadata: map[string]string{
			"userId":     testUserID,
			"couponCode": couponCode,
			"products":   `[{"id":"p1","quantity":2,"price_cents":12900}]`,
		},
	}
}

func TestService_CompleteCheckout(t *testing.T) {
	fixture := newPaymentFixture()
	fixture.provider.sessions["sess_test_1"] = paidSession(25800, "SPRING20")

	completed, err := fixture.service.CompleteCheckout(context.Background(), "sess_test_1")

	require.NoError(t, err)
	assert.Equal(t, testUserID, completed.UserID)
	assert.Equal(t, int64(25800), completed.TotalCents)
	assert.Equal(t, "sess_test_1", completed.ProviderSessionID)
	require.Len(t, completed.Items, 1)
	assert.Equal(t, 2, completed.Items[0].Quantity)

	// The used coupon is spent, and the total qualifies for loyalty.
	assert.Equal(t, []string{"SPRING20"}, fixture.coupons.deactivated)
	assert.Equal(t, []string{testUserID}, fixture.coupons.awarded)
}

func TestService_CompleteCheckout_Unpaid(t *testing.T) {
	fixture := newPaymentFixture()
	session := paidSession(25800, "")
	session.Paid = false
	fixture.provider.sessions["sess_test_1"] = session

	_, err := fixture.service.CompleteCheckout(context.Background(), "sess_test_1")

	require.Error(t, err)
	assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	assert.Empty(t, fixture.orders.orders)
}

func TestService_CompleteCheckout_Idempotent(t *testing.T) {
	fixture := newPaymentFixture()
	fixture.provider.sessions["sess_test_1"] = paidSession(25800, "SPRING20")

	first, err := fixture.service.CompleteCheckout(context.Background(), "sess_test_1")
	require.NoError(t, err)

	second, err := fixture.service.CompleteCheckout(context.Background(), "sess_test_1")
	require.NoError(t, err)

	// Exactly one order, and the replay triggered no further side effects.
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, fixture.orders.orders, 1)
	assert.Len(t, fixture.coupons.deactivated, 1)
	assert.Len(t, fixture.coupons.awarded, 1)
}

func TestService_CompleteCheckout_BelowLoyaltyThreshold(t *testing.T) {
	fixture := newPaymentFixture()
	fixture.provider.sessions["sess_test_1"] = paidSession(payment.LoyaltyThresholdCents-1, "")

	_, err := fixture.service.CompleteCheckout(context.Background(), "sess_test_1")

	require.NoError(t, err)
	assert.Empty(t, fixture.coupons.awarded)
}
