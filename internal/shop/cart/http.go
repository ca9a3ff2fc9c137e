// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/selluna/internal/platform/request"
	"github.com/taibuivan/selluna/internal/platform/respond"
	"github.com/taibuivan/selluna/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements shopping cart HTTP endpoints.
//
// Every route requires an authenticated session; the guard is injected by
// the composition root.
type Handler struct {
	cartService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{cartService: service}
}

// Routes returns a [chi.Router] configured with cart routes.
//
// # Endpoints
//   - GET    /     : Hydrated cart contents.
//   - POST   /     : Add one unit of a product.
//   - PUT    /{id} : Overwrite a line's quantity (0 removes it).
//   - DELETE /     : Remove one line, or empty the cart.
func (handler *Handler) Routes(session func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Use(session)
	router.Get("/", handler.get)
	router.Post("/", handler.add)
	router.Put("/{id}", handler.setQuantity)
	router.Delete("/", handler.remove)

	return router
}

// # Request Payloads

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type removeItemRequest struct {
	ProductID string `json:"product_id"`
}

// # Endpoints

/*
Get serves the authenticated user's hydrated cart.

GET /api/v1/cart

Response:
  - 200: []Line
  - 401: Authentication failure
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lines, err := handler.cartService.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lines)
}

/*
Add puts one unit of a product into the cart.

POST /api/v1/cart

Request:
  - Body: addItemRequest (ProductID)

Response:
  - 200: []Line: Cart after the add
  - 404: Unknown product
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addItemRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldProductID, input.ProductID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lines, err := handler.cartService.Add(request.Context(), userID, input.ProductID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lines)
}

/*
SetQuantity overwrites the quantity of a cart line.

PUT /api/v1/cart/{id}

Request:
  - Body: setQuantityRequest (Quantity; 0 removes the line)

Response:
  - 200: []Line: Cart after the update
  - 400: Negative quantity
  - 404: Line not present in the cart
*/
func (handler *Handler) setQuantity(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	productID := requestutil.ID(request, "id")

	var input setQuantityRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Custom(FieldQuantity, input.Quantity < 0, "must not be negative")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lines, err := handler.cartService.SetQuantity(request.Context(), userID, productID, input.Quantity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lines)
}

/*
Remove deletes one line, or empties the cart when no product is named.

DELETE /api/v1/cart

Request:
  - Body: removeItemRequest (ProductID; empty clears the cart)

Response:
  - 200: []Line: Cart after the removal
  - 404: Line not present in the cart
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// An empty body means "empty the cart"; tolerate both shapes.
	var input removeItemRequest
	_ = requestutil.DecodeJSON(request, &input)

	lines, err := handler.cartService.Remove(request.Context(), userID, input.ProductID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lines)
}
