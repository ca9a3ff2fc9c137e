// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/selluna/internal/platform/sec"
)

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("access-secret-for-tests", "refresh-secret-for-tests", "selluna.test")
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_RejectsBadSecrets checks constructor preconditions.
*/
func TestNewTokenService_RejectsBadSecrets(t *testing.T) {
	tests := []struct {
		name          string
		accessSecret  string
		refreshSecret string
	}{
		{"empty_access", "", "refresh"},
		{"empty_refresh", "access", ""},
		{"identical_secrets", "same", "same"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.NewTokenService(tt.accessSecret, tt.refreshSecret, "selluna.test")
			assert.Error(t, err)
		})
	}
}

/*
TestTokenService_RoundTrip verifies that a freshly minted token carries the
user ID back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	accessToken, err := service.GenerateAccessToken("user-123", time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "selluna.test", claims.Issuer)
}

/*
TestTokenService_SecretsAreIndependent ensures an access token never passes
refresh verification and vice versa.
*/
func TestTokenService_SecretsAreIndependent(t *testing.T) {
	service := newTestTokenService(t)

	accessToken, err := service.GenerateAccessToken("user-123", time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)

	refreshToken, err := service.GenerateRefreshToken("user-123", time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestTokenService_ExpiredIsDistinctFromInvalid checks that expiry surfaces as
its own kind, never collapsed into the generic invalid outcome.
*/
func TestTokenService_ExpiredIsDistinctFromInvalid(t *testing.T) {
	service := newTestTokenService(t)

	expiredToken, err := service.GenerateAccessToken("user-123", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(expiredToken)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
	assert.NotErrorIs(t, err, sec.ErrTokenInvalid)

	_, err = service.VerifyAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	assert.NotErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_SuccessiveTokensDiffer guarantees two logins in the same
instant still mint distinct refresh tokens, so the newer one can displace the
older one in the registry.
*/
func TestTokenService_SuccessiveTokensDiffer(t *testing.T) {
	service := newTestTokenService(t)

	first, err := service.GenerateRefreshToken("user-123", time.Hour)
	require.NoError(t, err)

	second, err := service.GenerateRefreshToken("user-123", time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
