// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/shop/cart"
	"github.com/taibuivan/selluna/internal/shop/catalog"
)

// # Test Doubles

// memoryCartRepository keys lines by userID then productID, preserving
// insertion order per user.
type memoryCartRepository struct {
	lines map[string]map[string]*cart.Item
	order map[string][]string
}

func newMemoryCartRepository() *memoryCartRepository {
	return &memoryCartRepository{
		lines: map[string]map[string]*cart.Item{},
		order: map[string][]string{},
	}
}

func (repository *memoryCartRepository) FindByUser(_ context.Context, userID string) ([]cart.Item, error) {
	items := make([]cart.Item, 0)
	for _, productID := range repository.order[userID] {
		items = append(items, *repository.lines[userID][productID])
	}
	return items, nil
}

func (repository *memoryCartRepository) Upsert(_ context.Context, userID, productID string) error {
	if repository.lines[userID] == nil {
		repository.lines[userID] = map[string]*cart.Item{}
	}
	if item, ok := repository.lines[userID][productID]; ok {
		item.Quantity++
		item.UpdatedAt = time.Now()
		return nil
	}
	repository.lines[userID][productID] = &cart.Item{ProductID: productID, Quantity: 1, UpdatedAt: time.Now()}
	repository.order[userID] = append(repository.order[userID], productID)
	return nil
}

func (repository *memoryCartRepository) SetQuantity(_ context.Context, userID, productID string, quantity int) error {
	item, ok := repository.lines[userID][productID]
	if !ok {
		return apperr.NotFound("Cart item")
	}
	item.Quantity = quantity
	return nil
}

func (repository *memoryCartRepository) Remove(_ context.Context, userID, productID string) error {
	if _, ok := repository.lines[userID][productID]; !ok {
		return apperr.NotFound("Cart item")
	}
	delete(repository.lines[userID], productID)
	for index, existing := range repository.order[userID] {
		if existing == productID {
			repository.order[userID] = append(repository.order[userID][:index], repository.order[userID][index+1:]...)
			break
		}
	}
	return nil
}

func (repository *memoryCartRepository) Clear(_ context.Context, userID string) error {
	delete(repository.lines, userID)
	delete(repository.order, userID)
	return nil
}

// fakeProductFinder serves a fixed product set.
type fakeProductFinder struct {
	products map[string]catalog.Product
}

func (finder *fakeProductFinder) FindByID(_ context.Context, id string) (*catalog.Product, error) {
	product, ok := finder.products[id]
	if !ok {
		return nil, apperr.NotFound("Product")
	}
	return &product, nil
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

// # Fixture

const testUserID = "user-1"

func newCartService() (*cart.Service, *fakeProductFinder) {
	finder := &fakeProductFinder{products: map[string]catalog.Product{
		"p1": {ID: "p1", Name: "Leather Tote Bag", PriceCents: 12900},
		"p2": {ID: "p2", Name: "Wool Scarf", PriceCents: 4900},
	}}
	return cart.NewService(newMemoryCartRepository(), finder), finder
}

// # Adding

func TestService_Add(t *testing.T) {
	service, _ := newCartService()

	lines, err := service.Add(context.Background(), testUserID, "p1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "Leather Tote Bag", lines[0].Product.Name)
}

func TestService_Add_SameProductBumpsQuantity(t *testing.T) {
	service, _ := newCartService()

	_, err := service.Add(context.Background(), testUserID, "p1")
	require.NoError(t, err)
	lines, err := service.Add(context.Background(), testUserID, "p1")
	require.NoError(t, err)

	// Still one line: the cart is a product -> quantity mapping.
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestService_Add_UnknownProduct(t *testing.T) {
	service, _ := newCartService()

	_, err := service.Add(context.Background(), testUserID, "missing")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// # Quantity Updates

func TestService_SetQuantity(t *testing.T) {
	service, _ := newCartService()
	_, err := service.Add(context.Background(), testUserID, "p1")
	require.NoError(t, err)

	lines, err := service.SetQuantity(context.Background(), testUserID, "p1", 5)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestService_SetQuantity_ZeroRemovesLine(t *testing.T) {
	service, _ := newCartService()
	_, err := service.Add(context.Background(), testUserID, "p1")
	require.NoError(t, err)
	_, err = service.Add(context.Background(), testUserID, "p2")
	require.NoError(t, err)

	lines, err := service.SetQuantity(context.Background(), testUserID, "p1", 0)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].Product.ID)
}

func TestService_SetQuantity_AbsentLine(t *testing.T) {
	service, _ := newCartService()

	for _, quantity := range []int{0, 3} {
		_, err := service.SetQuantity(context.Background(), testUserID, "p1", quantity)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	}
}

// # Reading

func TestService_Get_EmptyCart(t *testing.T) {
	service, _ := newCartService()

	lines, err := service.Get(context.Background(), testUserID)

	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestService_Get_DropsDeletedProducts(t *testing.T) {
	service, finder := newCartService()
	_, err := service.Add(context.Background(), testUserID, "p1")
	require.NoError(t, err)
	_, err = service.Add(context.Background(), testUserID, "p2")
	require.NoError(t, err)

	// Simulate the product disappearing from the catalogue.
	delete(finder.products, "p1")

	lines, err := service.Get(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].Product.ID)
}

// # Removal

func TestService_Remove(t *testing.T) {
	service, _ := newCartService()
	_, err := service.Add(context.Background(), testUserID, "p1")
	require.NoError(t, err)
	_, err = service.Add(context.Background(), testUserID, "p2")
	require.NoError(t, err)

	t.Run("single_line", func(t *testing.T) {
		lines, err := service.Remove(context.Background(), testUserID, "p1")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "p2", lines[0].Product.ID)
	})

	t.Run("absent_line", func(t *testing.T) {
		_, err := service.Remove(context.Background(), testUserID, "p1")
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("clear_all", func(t *testing.T) {
		lines, err := service.Remove(context.Background(), testUserID, "")
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}
