// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package coupon

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/selluna/internal/platform/request"
	"github.com/taibuivan/selluna/internal/platform/respond"
	"github.com/taibuivan/selluna/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements coupon HTTP endpoints.
type Handler struct {
	couponService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{couponService: service}
}

// Routes returns a [chi.Router] configured with coupon routes.
//
// # Endpoints
//   - GET  /         : The caller's active coupon, or null.
//   - POST /validate : Check a code for redeemability.
func (handler *Handler) Routes(session func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Use(session)
	router.Get("/", handler.getActive)
	router.Post("/validate", handler.validateCode)

	return router
}

// # Request Payloads

type validateRequest struct {
	Code string `json:"code"`
}

// # Endpoints

/*
GetActive serves the caller's active coupon.

GET /api/v1/coupons

Response:
  - 200: Coupon or null
  - 401: Authentication failure
*/
func (handler *Handler) getActive(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	coupon, err := handler.couponService.GetActive(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, coupon)
}

/*
ValidateCode checks a coupon code for redeemability.

POST /api/v1/coupons/validate

Request:
  - Body: validateRequest (Code)

Response:
  - 200: {message, code, discount_percent}
  - 400: Unknown or expired code
*/
func (handler *Handler) validateCode(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input validateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCode, input.Code)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	coupon, err := handler.couponService.Validate(request.Context(), userID, input.Code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message":          "Coupon is valid",
		"code":             coupon.Code,
		"discount_percent": coupon.DiscountPercent,
	})
}
