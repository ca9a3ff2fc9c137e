// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"fmt"
	"time"
)

// # Definitions & Constructors

// DashboardWindowDays is how many trailing days the daily breakdown covers,
// today included.
const DashboardWindowDays = 7

// Dashboard is the full admin dashboard payload.
type Dashboard struct {
	Overview   Overview     `json:"overview"`
	DailySales []DailySales `json:"daily_sales"`
}

// Service implements analytics use cases.
type Service struct {
	repository AnalyticsRepository
	now        func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repository AnalyticsRepository) *Service {
	return NewServiceAt(repository, time.Now)
}

// NewServiceAt constructs a [Service] with an injected clock.
func NewServiceAt(repository AnalyticsRepository, now func() time.Time) *Service {
	return &Service{repository: repository, now: now}
}

// # Dashboard

/*
GetDashboard assembles the admin dashboard: headline totals plus a per-day
breakdown of the trailing week.

Description: The breakdown always contains exactly [DashboardWindowDays]
entries in ascending date order; days without orders are zero-filled so the
chart on the dashboard never has gaps.

Parameters:
  - context: context.Context

Returns:
  - *Dashboard: Totals and daily breakdown
  - error: Database retrieval failures
*/
func (service *Service) GetDashboard(context context.Context) (*Dashboard, error) {
	overview, err := service.repository.Overview(context)
	if err != nil {
		return nil, fmt.Errorf("analytics_service_overview_failed: %w", err)
	}

	now := service.now().UTC()
	to := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	from := to.AddDate(0, 0, -DashboardWindowDays)

	days, err := service.repository.DailySales(context, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics_service_daily_failed: %w", err)
	}

	byDate := make(map[string]DailySales, len(days))
	for _, day := range days {
		byDate[day.Date] = day
	}

	filled := make([]DailySales, 0, DashboardWindowDays)
	for offset := 0; offset < DashboardWindowDays; offset++ {
		date := from.AddDate(0, 0, offset).Format(time.DateOnly)
		if day, ok := byDate[date]; ok {
			filled = append(filled, day)
			continue
		}
		filled = append(filled, DailySales{Date: date})
	}

	return &Dashboard{Overview: *overview, DailySales: filled}, nil
}
