// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/selluna/internal/platform/request"
	"github.com/taibuivan/selluna/internal/platform/respond"
	"github.com/taibuivan/selluna/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements checkout HTTP endpoints.
type Handler struct {
	paymentService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{paymentService: service}
}

// Routes returns a [chi.Router] configured with checkout routes.
//
// # Endpoints
//   - POST /checkout-session : Open a priced provider session.
//   - POST /checkout-success : Finalize a paid session into an order.
func (handler *Handler) Routes(session func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Use(session)
	router.Post("/checkout-session", handler.createSession)
	router.Post("/checkout-success", handler.completeCheckout)

	return router
}

// # Request Payloads

type createSessionRequest struct {
	Products   []CheckoutProduct `json:"products"`
	CouponCode string            `json:"coupon_code"`
}

type checkoutSuccessRequest struct {
	SessionID string `json:"session_id"`
}

// # Endpoints

/*
CreateSession opens a priced checkout session with the payment provider.

POST /api/v1/payments/checkout-session

Request:
  - Body: createSessionRequest (Products, optional CouponCode)

Response:
  - 200: CheckoutSession {id, total_amount_cents}
  - 400: Empty products, unknown product, or coupon failure
*/
func (handler *Handler) createSession(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createSessionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	session, err := handler.paymentService.CreateCheckoutSession(
		request.Context(),
		userID,
		input.Products,
		input.CouponCode,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
CompleteCheckout finalizes a paid session into an order.

POST /api/v1/payments/checkout-success

Request:
  - Body: checkoutSuccessRequest (SessionID)

Response:
  - 200: {message, order}
  - 400: Unpaid session or missing session ID
*/
func (handler *Handler) completeCheckout(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredUserID(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input checkoutSuccessRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("session_id", input.SessionID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	completedOrder, err := handler.paymentService.CompleteCheckout(request.Context(), input.SessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message": "Payment successful and order created",
		"order":   completedOrder,
	})
}
