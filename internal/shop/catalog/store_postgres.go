// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

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
	"github.com/taibuivan/selluna/pkg/pagination"
)

// # Product Repository

// PostgresProductRepository implements the ProductRepository interface using pgx.
type PostgresProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new PostgreSQL implementation of the ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *PostgresProductRepository {
	return &PostgresProductRepository{pool: pool}
}

var productColumns = strings.Join(schema.ShopProduct.Columns(), ", ")

// scanProduct hydrates one product from the current row.
func scanProduct(row pgx.Row) (*Product, error) {
	product := &Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.PriceCents,
		&product.ImageURL,
		&product.Category,
		&product.IsFeatured,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// collectProducts drains a result set into a slice.
func collectProducts(rows pgx.Rows) ([]Product, error) {
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	return products, rows.Err()
}

/*
Create persists a new product record into the shop.product table.

Parameters:
  - context: context.Context
  - product: *Product (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresProductRepository) Create(context context.Context, product *Product) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)",
		schema.ShopProduct.Table, productColumns,
	)

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.PriceCents,
		product.ImageURL,
		product.Category,
		product.IsFeatured,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_product_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a product record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Product: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresProductRepository) FindByID(context context.Context, id string) (*Product, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		productColumns, schema.ShopProduct.Table, schema.ShopProduct.ID)

	product, err := scanProduct(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Product")
		}
		return nil, fmt.Errorf("postgres_product_repo_find_by_id_failed: %w", err)
	}

	return product, nil
}

/*
FindByIDs retrieves every product matching the given IDs.

Parameters:
  - context: context.Context
  - ids: []string

Returns:
  - []Product: Hydrated entities (unknown IDs are absent)
  - error: Execution errors
*/
func (repository *PostgresProductRepository) FindByIDs(context context.Context, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ANY($1)",
		productColumns, schema.ShopProduct.Table, schema.ShopProduct.ID)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, fmt.Errorf("postgres_product_repo_find_by_ids_failed: %w", err)
	}

	return collectProducts(rows)
}

/*
List retrieves one page of products ordered by newest first.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Product: Page of entities
  - int: Total product count
  - error: Execution errors
*/
func (repository *PostgresProductRepository) List(context context.Context, params pagination.Params) ([]Product, int, error) {
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.ShopProduct.Table)
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s DESC LIMIT $1 OFFSET $2",
		productColumns, schema.ShopProduct.Table, schema.ShopProduct.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_list_failed: %w", err)
	}

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_list_scan_failed: %w", err)
	}

	return products, total, nil
}

/*
FindFeatured retrieves every product flagged as featured.

Parameters:
  - context: context.Context

Returns:
  - []Product: Featured entities
  - error: Execution errors
*/
func (repository *PostgresProductRepository) FindFeatured(context context.Context) ([]Product, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = TRUE ORDER BY %s DESC",
		productColumns, schema.ShopProduct.Table, schema.ShopProduct.IsFeatured, schema.ShopProduct.CreatedAt)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_product_repo_find_featured_failed: %w", err)
	}

	return collectProducts(rows)
}

/*
FindByCategory retrieves every product in the given category.

Parameters:
  - context: context.Context
  - category: string

Returns:
  - []Product: Matching entities
  - error: Execution errors
*/
func (repository *PostgresProductRepository) FindByCategory(context context.Context, category string) ([]Product, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC",
		productColumns, schema.ShopProduct.Table, schema.ShopProduct.Category, schema.ShopProduct.CreatedAt)

	rows, err := repository.pool.Query(context, query, category)
	if err != nil {
		return nil, fmt.Errorf("postgres_product_repo_find_by_category_failed: %w", err)
	}

	return collectProducts(rows)
}

/*
FindRandom samples up to limit products at random.

Description: TABLESAMPLE is not used because the catalogue is small enough
that ORDER BY random() stays cheap.

Parameters:
  - context: context.Context
  - limit: int

Returns:
  - []Product: Random entities
  - error: Execution errors
*/
func (repository *PostgresProductRepository) FindRandom(context context.Context, limit int) ([]Product, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY random() LIMIT $1",
		productColumns, schema.ShopProduct.Table)

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_product_repo_find_random_failed: %w", err)
	}

	return collectProducts(rows)
}

/*
SetFeatured flips the featured flag on a product.

Parameters:
  - context: context.Context
  - id: string
  - isFeatured: bool

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresProductRepository) SetFeatured(context context.Context, id string, isFeatured bool) error {
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1",
		schema.ShopProduct.Table, schema.ShopProduct.IsFeatured, schema.ShopProduct.UpdatedAt, schema.ShopProduct.ID)

	tag, err := repository.pool.Exec(context, query, id, isFeatured, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_product_repo_set_featured_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Product")
	}

	return nil
}

/*
Delete permanently removes a product record.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresProductRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.ShopProduct.Table, schema.ShopProduct.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_product_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Product")
	}

	return nil
}
