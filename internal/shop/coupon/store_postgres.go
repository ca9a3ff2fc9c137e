// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/platform/database/schema"
)

// # Coupon Repository

// PostgresCouponRepository implements the CouponRepository interface using pgx.
type PostgresCouponRepository struct {
	pool *pgxpool.Pool
}

// NewCouponRepository creates a new PostgreSQL implementation of the CouponRepository.
func NewCouponRepository(pool *pgxpool.Pool) *PostgresCouponRepository {
	return &PostgresCouponRepository{pool: pool}
}

var couponColumns = strings.Join(schema.ShopCoupon.Columns(), ", ")

// scanCoupon hydrates one coupon from the current row.
func scanCoupon(row pgx.Row) (*Coupon, error) {
	coupon := &Coupon{}
	err := row.Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.UserID,
		&coupon.DiscountPercent,
		&coupon.ExpiresAt,
		&coupon.IsActive,
		&coupon.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return coupon, nil
}

/*
Create persists a new coupon record into the shop.coupon table.

Parameters:
  - context: context.Context
  - coupon: *Coupon (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresCouponRepository) Create(context context.Context, coupon *Coupon) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		schema.ShopCoupon.Table, couponColumns,
	)

	if coupon.CreatedAt.IsZero() {
		coupon.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		coupon.ID,
		coupon.Code,
		coupon.UserID,
		coupon.DiscountPercent,
		coupon.ExpiresAt,
		coupon.IsActive,
		coupon.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_coupon_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindActiveByUser retrieves the user's active coupon.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Coupon: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresCouponRepository) FindActiveByUser(context context.Context, userID string) (*Coupon, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = TRUE
		ORDER BY %s DESC
		LIMIT 1`,
		couponColumns, schema.ShopCoupon.Table,
		schema.ShopCoupon.UserID, schema.ShopCoupon.IsActive,
		schema.ShopCoupon.CreatedAt)

	coupon, err := scanCoupon(repository.pool.QueryRow(context, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Coupon")
		}
		return nil, fmt.Errorf("postgres_coupon_repo_find_active_failed: %w", err)
	}

	return coupon, nil
}

/*
FindActiveByCode retrieves the user's active coupon with the given code.

Parameters:
  - context: context.Context
  - userID: string
  - code: string

Returns:
  - *Coupon: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresCouponRepository) FindActiveByCode(context context.Context, userID, code string) (*Coupon, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = TRUE`,
		couponColumns, schema.ShopCoupon.Table,
		schema.ShopCoupon.UserID, schema.ShopCoupon.Code, schema.ShopCoupon.IsActive)

	coupon, err := scanCoupon(repository.pool.QueryRow(context, query, userID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Coupon")
		}
		return nil, fmt.Errorf("postgres_coupon_repo_find_by_code_failed: %w", err)
	}

	return coupon, nil
}

/*
Deactivate marks the coupon with the given code inactive.

Parameters:
  - context: context.Context
  - userID: string
  - code: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresCouponRepository) Deactivate(context context.Context, userID, code string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = FALSE WHERE %s = $1 AND %s = $2",
		schema.ShopCoupon.Table, schema.ShopCoupon.IsActive,
		schema.ShopCoupon.UserID, schema.ShopCoupon.Code)

	_, err := repository.pool.Exec(context, query, userID, code)
	if err != nil {
		return fmt.Errorf("postgres_coupon_repo_deactivate_failed: %w", err)
	}

	return nil
}

/*
DeleteByUser removes every coupon belonging to the user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresCouponRepository) DeleteByUser(context context.Context, userID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.ShopCoupon.Table, schema.ShopCoupon.UserID)

	_, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_coupon_repo_delete_by_user_failed: %w", err)
	}

	return nil
}
