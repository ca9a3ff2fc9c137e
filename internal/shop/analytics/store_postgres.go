// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/selluna/internal/platform/database/schema"
)

// # Analytics Repository

// PostgresAnalyticsRepository implements the AnalyticsRepository using pgx.
type PostgresAnalyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository creates a new PostgreSQL implementation of the AnalyticsRepository.
func NewAnalyticsRepository(pool *pgxpool.Pool) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{pool: pool}
}

/*
Overview computes the headline totals in one round trip.

Parameters:
  - context: context.Context

Returns:
  - *Overview: Counts and revenue
  - error: Execution errors
*/
func (repository *PostgresAnalyticsRepository) Overview(context context.Context) (*Overview, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %[3]s),
			(SELECT COALESCE(SUM(%[4]s), 0) FROM %[3]s)`,
		schema.UserAccount.Table, schema.ShopProduct.Table,
		schema.ShopOrder.Table, schema.ShopOrder.TotalCents)

	overview := &Overview{}
	err := repository.pool.QueryRow(context, query).Scan(
		&overview.Users,
		&overview.Products,
		&overview.TotalSales,
		&overview.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_analytics_repo_overview_failed: %w", err)
	}

	return overview, nil
}

/*
DailySales groups orders by calendar day over [from, to).

Parameters:
  - context: context.Context
  - from: time.Time
  - to: time.Time

Returns:
  - []DailySales: Days with at least one order, ascending
  - error: Execution errors
*/
func (repository *PostgresAnalyticsRepository) DailySales(context context.Context, from, to time.Time) ([]DailySales, error) {
	query := fmt.Sprintf(`
		SELECT
			TO_CHAR(%[1]s, 'YYYY-MM-DD') AS day,
			COUNT(*),
			COALESCE(SUM(%[2]s), 0)
		FROM %[3]s
		WHERE %[1]s >= $1 AND %[1]s < $2
		GROUP BY day
		ORDER BY day ASC`,
		schema.ShopOrder.CreatedAt, schema.ShopOrder.TotalCents, schema.ShopOrder.Table)

	rows, err := repository.pool.Query(context, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres_analytics_repo_daily_failed: %w", err)
	}
	defer rows.Close()

	days := make([]DailySales, 0)
	for rows.Next() {
		var day DailySales
		if err := rows.Scan(&day.Date, &day.Sales, &day.RevenueCents); err != nil {
			return nil, fmt.Errorf("postgres_analytics_repo_daily_scan_failed: %w", err)
		}
		days = append(days, day)
	}

	return days, rows.Err()
}
