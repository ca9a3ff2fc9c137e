// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Refresh Token Registry

// RefreshTokenRegistry defines the contract for the server-side refresh-token
// record. Each user holds at most one valid refresh token at a time: Store
// fully overwrites any previous entry, so issuing a new session invalidates
// every earlier refresh token for that user.
type RefreshTokenRegistry interface {

	/*
		Store records the user's current refresh token for a limited duration.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - token: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Store(context context.Context, userID string, token string, ttl time.Duration) error

	/*
		Lookup retrieves the refresh token currently registered for the user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - string: Registered refresh token
		  - error: apperr.NotFound when absent or expired, retrieval failures
	*/
	Lookup(context context.Context, userID string) (string, error)

	/*
		Delete removes the user's refresh-token record on logout.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, userID string) error
}
