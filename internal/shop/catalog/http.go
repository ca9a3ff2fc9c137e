// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/selluna/internal/platform/request"
	"github.com/taibuivan/selluna/internal/platform/respond"
	"github.com/taibuivan/selluna/internal/platform/validate"
	"github.com/taibuivan/selluna/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements product catalogue HTTP endpoints.
//
// # Scope
//
// Public discovery endpoints plus the admin console's product management.
type Handler struct {
	catalogService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{catalogService: service}
}

// Routes returns a [chi.Router] configured with catalogue routes.
//
// The session and admin guards are injected by the composition root.
//
// # Endpoints
//   - GET    /featured            : Curated featured selection (cached).
//   - GET    /recommended         : Random product sample.
//   - GET    /category/{category} : Category listing.
//   - GET    /                    : Paginated full catalogue (admin).
//   - POST   /                    : Create a product (admin).
//   - PATCH  /{id}/feature        : Toggle the featured flag (admin).
//   - DELETE /{id}                : Remove a product (admin).
func (handler *Handler) Routes(session, admin func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/featured", handler.featured)
	router.Get("/recommended", handler.recommendations)
	router.Get("/category/{category}", handler.byCategory)

	// Admin endpoints
	router.Group(func(r chi.Router) {
		r.Use(session, admin)
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Patch("/{id}/feature", handler.toggleFeatured)
		r.Delete("/{id}", handler.remove)
	})

	return router
}

// # Request Payloads

type createProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

// # Endpoints

/*
Featured serves the curated featured selection.

GET /api/v1/products/featured

Response:
  - 200: []Product
*/
func (handler *Handler) featured(writer http.ResponseWriter, request *http.Request) {
	products, err := handler.catalogService.GetFeatured(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, products)
}

/*
Recommendations serves a random product sample.

GET /api/v1/products/recommended

Response:
  - 200: []Product
*/
func (handler *Handler) recommendations(writer http.ResponseWriter, request *http.Request) {
	products, err := handler.catalogService.GetRecommendations(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, products)
}

/*
ByCategory serves the products of one category.

GET /api/v1/products/category/{category}

Response:
  - 200: []Product
*/
func (handler *Handler) byCategory(writer http.ResponseWriter, request *http.Request) {
	category := requestutil.Param(request, "category")

	products, err := handler.catalogService.GetByCategory(request.Context(), category)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, products)
}

/*
List serves one page of the full catalogue for the admin console.

GET /api/v1/products?page=&limit=

Response:
  - 200: []Product with pagination metadata
  - 401/403: Authentication or authorization failure
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	products, total, err := handler.catalogService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Create adds a product to the catalogue.

POST /api/v1/products

Request:
  - Body: createProductRequest

Response:
  - 201: Product: Created entity
  - 400: ErrInvalidJSON or validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createProductRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Required(FieldCategory, input.Category).
		Custom(FieldPriceCents, input.PriceCents <= 0, "must be a positive amount in cents")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.catalogService.Create(request.Context(), CreateInput{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, product)
}

/*
ToggleFeatured flips the featured flag on a product.

PATCH /api/v1/products/{id}/feature

Response:
  - 200: Product: Updated entity
  - 404: Unknown product
*/
func (handler *Handler) toggleFeatured(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	product, err := handler.catalogService.ToggleFeatured(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

/*
Remove deletes a product from the catalogue.

DELETE /api/v1/products/{id}

Response:
  - 204: No Content
  - 404: Unknown product
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.catalogService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
