// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package analytics serves the admin dashboard's sales overview.

It is a thin aggregation layer: headline counts plus a per-day breakdown of
the trailing week, all computed by SQL over the orders table.
*/
package analytics

import (
	"context"
	"time"
)

// # Core Entities

// Overview is the headline totals block.
type Overview struct {
	Users        int64 `json:"users"`
	Products     int64 `json:"products"`
	TotalSales   int64 `json:"total_sales"`
	TotalRevenue int64 `json:"total_revenue_cents"`
}

// DailySales is one day of the trailing-week breakdown.
type DailySales struct {
	Date         string `json:"date"` // YYYY-MM-DD
	Sales        int64  `json:"sales"`
	RevenueCents int64  `json:"revenue_cents"`
}

// # Data Access

// AnalyticsRepository defines the aggregate queries behind the dashboard.
type AnalyticsRepository interface {

	/*
		Overview returns the headline totals.

		Parameters:
		  - context: context.Context

		Returns:
		  - *Overview: Counts and revenue
		  - error: Database retrieval failures
	*/
	Overview(context context.Context) (*Overview, error)

	/*
		DailySales returns per-day order counts and revenue for [from, to).

		Parameters:
		  - context: context.Context
		  - from: time.Time
		  - to: time.Time

		Returns:
		  - []DailySales: Days with at least one order, ascending
		  - error: Database retrieval failures
	*/
	DailySales(context context.Context, from, to time.Time) ([]DailySales, error)
}
