// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/platform/constants"
	"github.com/taibuivan/selluna/internal/platform/ctxutil"
	"github.com/taibuivan/selluna/internal/platform/respond"
	"github.com/taibuivan/selluna/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify access tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to inject mocks during unit testing.
type TokenVerifier interface {
	VerifyAccessToken(tokenStr string) (*sec.SessionClaims, error)
}

// SessionUserResolver resolves the account referenced by a verified token.
//
// The returned [sec.AuthUser] never contains the password hash. Resolution
// runs on every request so that deleted accounts and role changes take
// effect without waiting for token expiry.
type SessionUserResolver interface {
	ResolveUser(ctx context.Context, userID string) (*sec.AuthUser, error)
}

// SessionGuard authenticates a request from its accessToken cookie.
//
// # Flow
//
//  1. Read the accessToken cookie. Absent -> 401 AUTH_MISSING.
//  2. Verify signature and expiry. Expired -> 401 AUTH_EXPIRED (the client
//     knows a refresh may help). Any other failure -> 401 AUTH_INVALID.
//  3. Resolve the embedded user from the credential store, password hash
//     excluded. Unknown user -> 401 AUTH_INVALID.
//  4. Attach the resolved [sec.AuthUser] to the request context.
//
// Every rejection branch terminates the request immediately; there is no
// fall-through past a failed check.
func SessionGuard(verifier TokenVerifier, resolver SessionUserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Cookie Extraction ──────────────────────────────────────────
			cookie, err := request.Cookie(constants.AccessTokenCookieName)
			if err != nil || cookie.Value == "" {
				respond.Error(writer, request, apperr.AuthMissing("Access token not found"))
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyAccessToken(cookie.Value)
			if err != nil {
				if errors.Is(err, sec.ErrTokenExpired) {
					respond.Error(writer, request, apperr.AuthExpired("Access token expired"))
					return
				}
				respond.Error(writer, request, apperr.AuthInvalid("Invalid access token"))
				return
			}

			// ── 3. Identity Resolution ────────────────────────────────────────
			user, err := resolver.ResolveUser(request.Context(), claims.UserID)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), user)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAdmin blocks requests whose resolved user lacks the admin role.
//
// # Precondition
//
// Must be mounted AFTER [SessionGuard]: it reads the resolved user from the
// request context and cannot perform identity resolution itself. Mounted
// standalone it rejects every request as unauthenticated.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		user := GetUser(request.Context())

		// ── 1. Authentication Check ───────────────────────────────────────
		if user == nil {
			respond.Error(writer, request, apperr.AuthMissing("Authentication required"))
			return
		}

		// ── 2. Authorization Check ────────────────────────────────────────
		if !user.Role.AtLeast(sec.RoleAdmin) {
			respond.Error(writer, request, apperr.Forbidden("Admin access required"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}

// GetUser retrieves the resolved [*sec.AuthUser] from the [context.Context].
//
// # Returns
//   - The resolved user if the request passed [SessionGuard].
//   - nil if the request is anonymous.
func GetUser(ctx context.Context) *sec.AuthUser {
	return ctxutil.GetAuthUser(ctx)
}
