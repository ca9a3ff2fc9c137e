// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/platform/sec"
	"github.com/taibuivan/selluna/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating and verifying session tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed short-lived JWT for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID string, timeToLive time.Duration) (string, error)

	// GenerateRefreshToken creates a signed long-lived JWT for the given user.
	GenerateRefreshToken(userID string, timeToLive time.Duration) (string, error)

	// VerifyRefreshToken validates a refresh JWT and returns its claims.
	// Failures are reported as sec.ErrTokenExpired or sec.ErrTokenInvalid.
	VerifyRefreshToken(token string) (*sec.SessionClaims, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or session logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenRegistry  RefreshTokenRegistry
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	registry RefreshTokenRegistry,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository: userRepo,
		tokenRegistry:  registry,
		tokenProvider:  tokenProv,
	}
}

// Session represents a successfully established user session.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

// # Registration Flow

// SignupInput holds the data required to enroll a new customer.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

/*
Signup validates, hashes, and persists a brand new customer account, then
opens a session so the customer lands signed in.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *Session: Tokens plus the created entity
  - error: BadRequest (if email exists) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*Session, error) {

	// Verify email uniqueness. Return a client-safe err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.BadRequest("User already exists")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleCustomer,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	return service.issueSession(context, user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates customer credentials and issues a fresh session.

Description: Verifies identity, performs constant-time password comparison,
and registers the new refresh token, displacing any earlier session.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Transport-ready session identifiers
  - error: BadRequest or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {

	// Look up the account by email
	user, err := service.userRepository.FindByEmail(context, input.Email)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.BadRequest("Invalid email or password")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.BadRequest("Invalid email or password")
	}

	return service.issueSession(context, user)
}

/*
issueSession generates the access/refresh token pair and registers the refresh
token as the user's single valid session record.

Description: The registry write must succeed before the tokens are handed out;
a refresh token the server does not remember would be unusable anyway.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - *Session: Freshly minted pair
  - error: Token generation or registry failures
*/
func (service *Service) issueSession(context context.Context, user *User) (*Session, error) {

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	// Generate long-lived Refresh Token
	refreshToken, err := service.tokenProvider.GenerateRefreshToken(user.ID, RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Register the refresh token, overwriting any previous session record
	if err := service.tokenRegistry.Store(context, user.ID, refreshToken, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_registration_failed: %w", err)
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// # Session Management

/*
Refresh exchanges a valid refresh token for a brand new access token.

Description: The refresh token itself is NOT rotated; it stays valid until its
original expiry or until a newer login displaces it. Every rejection path
returns immediately with a precise 401 kind so the client can distinguish a
stale session from a forged one.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - string: Fresh access token
  - error: AuthExpired, AuthInvalid, or internal failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (string, error) {

	// Cryptographic check first: signature and expiry
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, sec.ErrTokenExpired) {
			return "", apperr.AuthExpired("Refresh token has expired")
		}
		return "", apperr.AuthInvalid("Invalid refresh token")
	}

	// Registry check: the token must still be the user's registered session
	storedToken, err := service.tokenRegistry.Lookup(context, claims.UserID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.AuthInvalid("Session has been revoked")
		}
		return "", fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
	}

	// A well-formed token that is not the registered one has been displaced
	// by a newer login (or was never issued by us).
	if storedToken != refreshToken {
		return "", apperr.AuthInvalid("Refresh token is no longer active")
	}

	// Confirm the account still exists before minting a new access token
	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		return "", apperr.AuthInvalid("User no longer exists")
	}

	// Mint a fresh access token only
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	return accessToken, nil
}

/*
Logout removes the user's refresh-token record.

Description: Best-effort and idempotent. An unverifiable token means there is
no session to tear down, so logout still succeeds; the handler clears the
cookies regardless.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Always nil
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {

	// Resolve the owner from the token. Garbage tokens have no session.
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil
	}

	// Delete the registry record. Failure must not block the logout response.
	if err := service.tokenRegistry.Delete(context, claims.UserID); err != nil {
		slog.Warn("auth_logout_registry_delete_failed", "error", err)
	}

	return nil
}

/*
ResolveUser loads the live account behind a verified access token.

Description: Satisfies the session middleware's resolver contract. A token
whose subject no longer exists is treated as invalid credentials rather than
a missing resource.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *sec.AuthUser: Slim identity for the request context
  - error: AuthInvalid or database failures
*/
func (service *Service) ResolveUser(context context.Context, userID string) (*sec.AuthUser, error) {

	// Fetch user by ID
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.AuthInvalid("User no longer exists")
		}
		return nil, fmt.Errorf("auth_service_resolve_user_failed: %w", err)
	}

	return user.AuthUser(), nil
}
