// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It owns the session lifecycle of the storefront: signup, login, access-token
refresh, and logout, built on a dual-token design (short-lived access JWT,
long-lived refresh JWT) with a Redis-backed refresh-token registry as the
single source of truth for refresh validity.

# Architecture

  - Service: Orchestrates the lifecycle (Signup, Login, Refresh, Logout).
  - UserRepository: Postgres-backed credential store.
  - RefreshTokenRegistry: Redis-backed user -> refresh token mapping.
  - Delivery: Cookie-based; both tokens travel as http-only cookies.
*/
package auth

import (
	"time"

	"github.com/taibuivan/selluna/internal/platform/sec"
)

// # Domain Entities

// User represents a registered Selluna shopper or administrator.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// AuthUser projects the account into the identity shape carried by the
// request context and returned from the profile endpoint.
func (user *User) AuthUser() *sec.AuthUser {
	return &sec.AuthUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldUser        = "user"
	FieldMessage     = "message"
	FieldAccessToken = "accessToken"
)
