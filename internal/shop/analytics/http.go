// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/selluna/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements analytics HTTP endpoints.
type Handler struct {
	analyticsService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{analyticsService: service}
}

// Routes returns a [chi.Router] configured with analytics routes. The whole
// surface is admin-only.
//
// # Endpoints
//   - GET / : Dashboard totals plus trailing-week daily sales.
func (handler *Handler) Routes(session, admin func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Use(session, admin)
	router.Get("/", handler.getDashboard)

	return router
}

// # Endpoints

/*
GetDashboard serves the admin sales dashboard.

GET /api/v1/analytics

Response:
  - 200: Dashboard
  - 401/403: Missing session or non-admin caller
*/
func (handler *Handler) getDashboard(writer http.ResponseWriter, request *http.Request) {
	dashboard, err := handler.analyticsService.GetDashboard(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, dashboard)
}
