// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/platform/ctxutil"
	"github.com/taibuivan/selluna/internal/platform/sec"
	"github.com/taibuivan/selluna/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
User extracts the resolved authenticated user from the request context.

Returns nil if the request did not pass through the session middleware.
*/
func User(request *http.Request) *sec.AuthUser {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredUser ensures the request is authenticated and returns the resolved user.

Returns:
  - *sec.AuthUser: The resolved authenticated user
  - error: apperr.AuthMissing if the request is not authenticated
*/
func RequiredUser(request *http.Request) (*sec.AuthUser, error) {

	// Get the resolved user
	user := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if user == nil {
		return nil, apperr.AuthMissing("Authentication required")
	}

	return user, nil
}

/*
RequiredUserID returns the user ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.AuthMissing if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {

	// Get the resolved user
	user, err := RequiredUser(request)

	// If the user is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return user.ID, nil
}
