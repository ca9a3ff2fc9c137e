// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces defined at the point of use.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// # Verification Outcomes
//
// Verification failures carry an explicit kind instead of relying on the
// caller inspecting library error identities. Expired is separated from
// Invalid because an expired access token is the one failure a client can
// recover from by refreshing.
var (
	// ErrTokenExpired marks a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid marks a malformed token or a signature mismatch.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// SessionClaims is the payload embedded inside Selluna session JWTs.
//
// Only the user ID travels in the token. The session middleware resolves the
// full account (role included) from the credential store on every request, so
// a role change or account deletion takes effect without waiting for expiry.
type SessionClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"uid"`
}

// TokenService mints and verifies the access/refresh token pair using HS256.
//
// Access and refresh tokens are signed with two independent secrets so the
// two lifecycles can never be confused: an access token presented to the
// refresh endpoint fails signature verification outright.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
}

// NewTokenService creates a new TokenService from the two process-wide
// signing secrets. Secrets are configuration, never hard-coded and never
// logged; rotating one invalidates all outstanding tokens of that kind.
func NewTokenService(accessSecret, refreshSecret, issuer string) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("sec: token secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("sec: access and refresh secrets must differ")
	}

	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
	}, nil
}

// GenerateAccessToken creates a short-lived access token for a user.
func (service *TokenService) GenerateAccessToken(userID string, timeToLive time.Duration) (string, error) {
	return service.generate(userID, timeToLive, service.accessSecret)
}

// GenerateRefreshToken creates a long-lived refresh token for a user.
//
// Two successive calls for the same user always return distinct tokens (the
// 'jti' claim is a fresh UUID), which is what allows the refresh-token
// registry to supersede an older token by overwriting it.
func (service *TokenService) GenerateRefreshToken(userID string, timeToLive time.Duration) (string, error) {
	return service.generate(userID, timeToLive, service.refreshSecret)
}

// VerifyAccessToken checks signature and expiry against the access secret.
func (service *TokenService) VerifyAccessToken(tokenString string) (*SessionClaims, error) {
	return service.verify(tokenString, service.accessSecret)
}

// VerifyRefreshToken checks signature and expiry against the refresh secret.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*SessionClaims, error) {
	return service.verify(tokenString, service.refreshSecret)
}

// generate signs a [SessionClaims] payload with the given secret.
func (service *TokenService) generate(userID string, timeToLive time.Duration, secret []byte) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// verify parses a token and maps every failure onto the explicit kinds.
func (service *TokenService) verify(tokenString string, secret []byte) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		// Expired is the only recoverable outcome; everything else collapses
		// into Invalid so callers never branch on library error identities.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
