// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/platform/database/schema"
)

// # Cart Repository

// PostgresCartRepository implements the CartRepository interface using pgx.
type PostgresCartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository creates a new PostgreSQL implementation of the CartRepository.
func NewCartRepository(pool *pgxpool.Pool) *PostgresCartRepository {
	return &PostgresCartRepository{pool: pool}
}

/*
FindByUser retrieves every cart line belonging to the user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []Item: Stored lines, oldest first
  - error: Execution errors
*/
func (repository *PostgresCartRepository) FindByUser(context context.Context, userID string) ([]Item, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC`,
		schema.ShopCartItem.ProductID, schema.ShopCartItem.Quantity, schema.ShopCartItem.UpdatedAt,
		schema.ShopCartItem.Table,
		schema.ShopCartItem.UserID,
		schema.ShopCartItem.UpdatedAt)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_cart_repo_find_failed: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres_cart_repo_scan_failed: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

/*
Upsert adds a product to the cart, bumping the quantity by one on conflict.

Description: The (userid, productid) primary key makes the keyed-mapping
shape a database guarantee, not just a convention.

Parameters:
  - context: context.Context
  - userID: string
  - productID: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresCartRepository) Upsert(context context.Context, userID, productID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (%[2]s, %[3]s)
		DO UPDATE SET %[4]s = %[1]s.%[4]s + 1, %[5]s = $3`,
		schema.ShopCartItem.Table,
		schema.ShopCartItem.UserID, schema.ShopCartItem.ProductID,
		schema.ShopCartItem.Quantity, schema.ShopCartItem.UpdatedAt)

	_, err := repository.pool.Exec(context, query, userID, productID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_cart_repo_upsert_failed: %w", err)
	}

	return nil
}

/*
SetQuantity overwrites the quantity of an existing line.

Parameters:
  - context: context.Context
  - userID: string
  - productID: string
  - quantity: int

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresCartRepository) SetQuantity(context context.Context, userID, productID string, quantity int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4
		WHERE %s = $1 AND %s = $2`,
		schema.ShopCartItem.Table,
		schema.ShopCartItem.Quantity, schema.ShopCartItem.UpdatedAt,
		schema.ShopCartItem.UserID, schema.ShopCartItem.ProductID)

	tag, err := repository.pool.Exec(context, query, userID, productID, quantity, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_cart_repo_set_quantity_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Cart item")
	}

	return nil
}

/*
Remove deletes one line from the cart.

Parameters:
  - context: context.Context
  - userID: string
  - productID: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresCartRepository) Remove(context context.Context, userID, productID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.ShopCartItem.Table, schema.ShopCartItem.UserID, schema.ShopCartItem.ProductID)

	tag, err := repository.pool.Exec(context, query, userID, productID)
	if err != nil {
		return fmt.Errorf("postgres_cart_repo_remove_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Cart item")
	}

	return nil
}

/*
Clear deletes every line in the user's cart.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresCartRepository) Clear(context context.Context, userID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.ShopCartItem.Table, schema.ShopCartItem.UserID)

	_, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_cart_repo_clear_failed: %w", err)
	}

	return nil
}
