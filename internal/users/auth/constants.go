// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a refresh token remains valid. The
	// registry entry carries exactly the same TTL, so a token can never
	// outlive its server-side record.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// MinPasswordLength is the minimum accepted password length at signup.
	MinPasswordLength = 6
)
