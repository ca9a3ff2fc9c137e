// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/platform/constants"
	requestutil "github.com/taibuivan/selluna/internal/platform/request"
	"github.com/taibuivan/selluna/internal/platform/respond"
	"github.com/taibuivan/selluna/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the session lifecycle entry points (Signup, Login,
// Refresh, Logout) and the authenticated profile endpoint. Both tokens
// travel as http-only cookies; the handler is the only place that writes or
// clears them.
type Handler struct {
	authService   *Service
	secureCookies bool
}

// NewHandler constructs a new [Handler] with its service dependency.
// secureCookies should be true in production so cookies are HTTPS-only.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// The session middleware guarding /profile is injected by the composition
// root rather than imported here, keeping the handler free of a dependency
// on its own guard.
//
// # Endpoints
//   - POST /signup        : Creates a new account and signs it in.
//   - POST /login         : Authenticates and opens a session.
//   - POST /logout        : Tears down the session and clears cookies.
//   - POST /refresh-token : Exchanges the refresh cookie for a new access token.
//   - GET  /profile       : Returns the authenticated user's identity.
func (handler *Handler) Routes(session func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Post("/refresh-token", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(session)
		r.Get("/profile", handler.profile)
	})

	return router
}

// # Request Payloads

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// # Cookie Plumbing

/*
setSessionCookies writes the token pair as http-only cookies.

Description: SameSite=Strict keeps the cookies off cross-site requests, and
MaxAge mirrors each token's TTL so the browser discards them in lockstep with
their cryptographic expiry.

Parameters:
  - writer: http.ResponseWriter
  - accessToken: string
  - refreshToken: string
*/
func (handler *Handler) setSessionCookies(writer http.ResponseWriter, accessToken, refreshToken string) {
	handler.setAccessCookie(writer, accessToken)
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    refreshToken,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(RefreshTokenTTL.Seconds()),
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// setAccessCookie writes only the access-token cookie, used by the refresh
// endpoint where the refresh token stays untouched.
func (handler *Handler) setAccessCookie(writer http.ResponseWriter, accessToken string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    accessToken,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(AccessTokenTTL.Seconds()),
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookies expires both token cookies unconditionally.
func (handler *Handler) clearSessionCookies(writer http.ResponseWriter) {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     constants.SessionCookiePath,
			MaxAge:   -1,
			Secure:   handler.secureCookies,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// # Endpoints

/*
Signup handles the creation of a new customer account.

POST /api/v1/auth/signup

Description: Validates input, persists the new account, and immediately opens
a session so the customer lands signed in.

Request:
  - Body: signupRequest (Name, Email, Password)

Response:
  - 201: User profile plus confirmation message
  - 400: ErrInvalidJSON, validation failure, or email already registered
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Signup(request.Context(), SignupInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session.AccessToken, session.RefreshToken)

	respond.Created(writer, map[string]any{
		FieldUser:    session.User,
		FieldMessage: "Account created successfully",
	})
}

/*
Login authenticates a customer and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials and injects both session cookies. A
successful login displaces any session the user held before.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: User profile plus confirmation message
  - 400: ErrInvalidJSON or invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session.AccessToken, session.RefreshToken)

	respond.OK(writer, map[string]any{
		FieldUser:    session.User,
		FieldMessage: "Logged in successfully",
	})
}

/*
Logout terminates the current session.

POST /api/v1/auth/logout

Description: Best-effort removal of the server-side session record, then the
cookies are cleared regardless of the outcome so the client always ends up
signed out.

Response:
  - 200: Confirmation message
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)

	if err == nil && cookie != nil && cookie.Value != "" {
		_ = handler.authService.Logout(request.Context(), cookie.Value)
	}

	handler.clearSessionCookies(writer)

	respond.OK(writer, map[string]string{
		FieldMessage: "Logged out successfully",
	})
}

/*
Refresh issues a new access token using the refresh cookie.

POST /api/v1/auth/refresh-token

Description: Validates the refresh token against the server-side registry and
mints a fresh access token. The refresh token is not rotated. Each failure
branch responds and returns immediately.

Response:
  - 200: New access token plus confirmation message
  - 401: AUTH_MISSING (no cookie), AUTH_EXPIRED, or AUTH_INVALID
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.AuthMissing("No refresh token provided"))
		return
	}

	accessToken, err := handler.authService.Refresh(request.Context(), cookie.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setAccessCookie(writer, accessToken)

	respond.OK(writer, map[string]any{
		FieldMessage:     "Token refreshed successfully",
		FieldAccessToken: accessToken,
	})
}

/*
Profile returns the authenticated user's identity.

GET /api/v1/auth/profile

Description: Reads the resolved identity attached by the session middleware.

Response:
  - 200: AuthUser identity
  - 401: AUTH_MISSING, AUTH_EXPIRED, or AUTH_INVALID
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
