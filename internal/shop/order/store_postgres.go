// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/platform/database/schema"
	"github.com/taibuivan/selluna/internal/platform/dberr"
)

// # Order Repository

// PostgresOrderRepository implements the OrderRepository interface using pgx.
type PostgresOrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new PostgreSQL implementation of the OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{pool: pool}
}

/*
Create persists an order and its line items atomically.

Description: Runs in a single transaction so a failed item insert never
leaves a headless order behind.

Parameters:
  - context: context.Context
  - order: *Order

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresOrderRepository) Create(context context.Context, order *Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_order_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	orderQuery := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)",
		schema.ShopOrder.Table,
		schema.ShopOrder.ID, schema.ShopOrder.UserID, schema.ShopOrder.TotalCents,
		schema.ShopOrder.ProviderSessionID, schema.ShopOrder.CreatedAt,
	)

	_, err = transaction.Exec(context, orderQuery,
		order.ID,
		order.UserID,
		order.TotalCents,
		order.ProviderSessionID,
		order.CreatedAt,
	)
	if err != nil {
		// The unique providersessionid turns a replayed completion into a
		// conflict instead of a duplicate order.
		return dberr.Wrap(err, "order_create")
	}

	itemQuery := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)",
		schema.ShopOrderItem.Table,
		schema.ShopOrderItem.OrderID, schema.ShopOrderItem.ProductID,
		schema.ShopOrderItem.Quantity, schema.ShopOrderItem.UnitPriceCents,
	)

	for _, item := range order.Items {
		_, err = transaction.Exec(context, itemQuery,
			order.ID,
			item.ProductID,
			item.Quantity,
			item.UnitPriceCents,
		)
		if err != nil {
			return fmt.Errorf("postgres_order_repo_create_item_failed: %w", err)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_order_repo_commit_failed: %w", err)
	}

	return nil
}

/*
FindByProviderSession retrieves the order recorded for a payment session.

Parameters:
  - context: context.Context
  - providerSessionID: string

Returns:
  - *Order: Hydrated entity with items
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresOrderRepository) FindByProviderSession(context context.Context, providerSessionID string) (*Order, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1",
		schema.ShopOrder.ID, schema.ShopOrder.UserID, schema.ShopOrder.TotalCents,
		schema.ShopOrder.ProviderSessionID, schema.ShopOrder.CreatedAt,
		schema.ShopOrder.Table, schema.ShopOrder.ProviderSessionID,
	)

	order := &Order{}
	err := repository.pool.QueryRow(context, query, providerSessionID).Scan(
		&order.ID,
		&order.UserID,
		&order.TotalCents,
		&order.ProviderSessionID,
		&order.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Order")
		}
		return nil, fmt.Errorf("postgres_order_repo_find_failed: %w", err)
	}

	itemQuery := fmt.Sprintf(
		"SELECT %s, %s, %s FROM %s WHERE %s = $1",
		schema.ShopOrderItem.ProductID, schema.ShopOrderItem.Quantity,
		schema.ShopOrderItem.UnitPriceCents,
		schema.ShopOrderItem.Table, schema.ShopOrderItem.OrderID,
	)

	rows, err := repository.pool.Query(context, itemQuery, order.ID)
	if err != nil {
		return nil, fmt.Errorf("postgres_order_repo_find_items_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, fmt.Errorf("postgres_order_repo_scan_item_failed: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	return order, rows.Err()
}
