// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/selluna/internal/platform/apperr"
	"github.com/taibuivan/selluna/internal/platform/sec"
	"github.com/taibuivan/selluna/internal/users/auth"
)

// # Test Doubles

// memoryUserRepository is an in-memory UserRepository keyed by ID and email.
type memoryUserRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{
		byID:    map[string]*auth.User{},
		byEmail: map[string]*auth.User{},
	}
}

func (repository *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repository.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repository *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := repository.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repository *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	repository.byID[user.ID] = user
	repository.byEmail[user.Email] = user
	return nil
}

// memoryRegistry is an in-memory RefreshTokenRegistry. storeErr forces the
// next Store call to fail; storeCalls counts writes.
type memoryRegistry struct {
	tokens     map[string]string
	storeErr   error
	storeCalls int
}

func newMemoryRegistry() *memoryRegistry {
	return &memoryRegistry{tokens: map[string]string{}}
}

func (registry *memoryRegistry) Store(_ context.Context, userID, token string, _ time.Duration) error {
	registry.storeCalls++
	if registry.storeErr != nil {
		return registry.storeErr
	}
	registry.tokens[userID] = token
	return nil
}

func (registry *memoryRegistry) Lookup(_ context.Context, userID string) (string, error) {
	token, ok := registry.tokens[userID]
	if !ok {
		return "", apperr.NotFound("Refresh token record")
	}
	return token, nil
}

func (registry *memoryRegistry) Delete(_ context.Context, userID string) error {
	delete(registry.tokens, userID)
	return nil
}

// # Fixture

type serviceFixture struct {
	service  *auth.Service
	users    *memoryUserRepository
	registry *memoryRegistry
	tokens   *sec.TokenService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	tokens, err := sec.NewTokenService("access-secret-for-tests", "refresh-secret-for-tests", "selluna.test")
	require.NoError(t, err)

	users := newMemoryUserRepository()
	registry := newMemoryRegistry()

	return &serviceFixture{
		service:  auth.NewService(users, registry, tokens),
		users:    users,
		registry: registry,
		tokens:   tokens,
	}
}

func (fixture *serviceFixture) signup(t *testing.T, email string) *auth.Session {
	t.Helper()
	session, err := fixture.service.Signup(context.Background(), auth.SignupInput{
		Name:     "Test Shopper",
		Email:    email,
		Password: "hunter22",
	})
	require.NoError(t, err)
	return session
}

// # Registration

func TestService_Signup(t *testing.T) {
	fixture := newServiceFixture(t)

	session := fixture.signup(t, "shopper@example.com")

	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, sec.RoleCustomer, session.User.Role)
	assert.NotEqual(t, "hunter22", session.User.PasswordHash)

	// The refresh token must land in the registry at signup time.
	stored, err := fixture.registry.Lookup(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, session.RefreshToken, stored)
}

func TestService_Signup_DuplicateEmail(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.signup(t, "shopper@example.com")

	_, err := fixture.service.Signup(context.Background(), auth.SignupInput{
		Name:     "Second Shopper",
		Email:    "shopper@example.com",
		Password: "hunter22",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 400, ae.HTTPStatus)
	assert.Equal(t, "BAD_REQUEST", ae.Code)
}

func TestService_Signup_RegistryFailureAborts(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.registry.storeErr = assert.AnError

	_, err := fixture.service.Signup(context.Background(), auth.SignupInput{
		Name:     "Test Shopper",
		Email:    "shopper@example.com",
		Password: "hunter22",
	})

	// No token pair may be handed out when the registry write fails.
	assert.Error(t, err)
}

// # Authentication

func TestService_Login(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.signup(t, "shopper@example.com")

	session, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Email:    "shopper@example.com",
		Password: "hunter22",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)

	claims, err := fixture.tokens.VerifyRefreshToken(session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
}

func TestService_Login_BadCredentials(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.signup(t, "shopper@example.com")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown_email", "nobody@example.com", "hunter22"},
		{"wrong_password", "shopper@example.com", "wrong-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.service.Login(context.Background(), auth.LoginInput{
				Email:    tt.email,
				Password: tt.password,
			})

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			// Same generic 400 either way, so callers cannot probe for accounts.
			assert.Equal(t, 400, ae.HTTPStatus)
			assert.Equal(t, "Invalid email or password", ae.Message)
		})
	}
}

func TestService_Login_DisplacesPreviousSession(t *testing.T) {
	fixture := newServiceFixture(t)
	first := fixture.signup(t, "shopper@example.com")

	second, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Email:    "shopper@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The registry now holds only the newest token.
	stored, err := fixture.registry.Lookup(context.Background(), first.User.ID)
	require.NoError(t, err)
	assert.Equal(t, second.RefreshToken, stored)

	// The displaced token is cryptographically fine but no longer accepted.
	_, err = fixture.service.Refresh(context.Background(), first.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "AUTH_INVALID", apperr.As(err).Code)

	// The registered one still works.
	accessToken, err := fixture.service.Refresh(context.Background(), second.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
}

// # Refresh

func TestService_Refresh(t *testing.T) {
	fixture := newServiceFixture(t)
	session := fixture.signup(t, "shopper@example.com")

	accessToken, err := fixture.service.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)

	claims, err := fixture.tokens.VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)

	// The refresh token is not rotated: the registry entry is unchanged and
	// the same token keeps working.
	stored, err := fixture.registry.Lookup(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, session.RefreshToken, stored)

	_, err = fixture.service.Refresh(context.Background(), session.RefreshToken)
	assert.NoError(t, err)
}

func TestService_Refresh_Rejections(t *testing.T) {
	fixture := newServiceFixture(t)
	session := fixture.signup(t, "shopper@example.com")

	expiredToken, err := fixture.tokens.GenerateRefreshToken(session.User.ID, -time.Minute)
	require.NoError(t, err)

	t.Run("garbage_token", func(t *testing.T) {
		_, err := fixture.service.Refresh(context.Background(), "not-a-jwt")
		require.Error(t, err)
		assert.Equal(t, "AUTH_INVALID", apperr.As(err).Code)
	})

	t.Run("expired_token", func(t *testing.T) {
		_, err := fixture.service.Refresh(context.Background(), expiredToken)
		require.Error(t, err)
		assert.Equal(t, "AUTH_EXPIRED", apperr.As(err).Code)
	})

	t.Run("revoked_session", func(t *testing.T) {
		require.NoError(t, fixture.registry.Delete(context.Background(), session.User.ID))
		_, err := fixture.service.Refresh(context.Background(), session.RefreshToken)
		require.Error(t, err)
		assert.Equal(t, "AUTH_INVALID", apperr.As(err).Code)
	})
}

// # Logout

func TestService_Logout(t *testing.T) {
	fixture := newServiceFixture(t)
	session := fixture.signup(t, "shopper@example.com")

	require.NoError(t, fixture.service.Logout(context.Background(), session.RefreshToken))

	// The session record is gone, so the token can no longer refresh.
	_, err := fixture.service.Refresh(context.Background(), session.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "AUTH_INVALID", apperr.As(err).Code)
}

func TestService_Logout_GarbageTokenIsIdempotent(t *testing.T) {
	fixture := newServiceFixture(t)

	assert.NoError(t, fixture.service.Logout(context.Background(), "not-a-jwt"))
}

// # Resolver

func TestService_ResolveUser(t *testing.T) {
	fixture := newServiceFixture(t)
	session := fixture.signup(t, "shopper@example.com")

	identity, err := fixture.service.ResolveUser(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, identity.ID)
	assert.Equal(t, session.User.Email, identity.Email)
	assert.Equal(t, sec.RoleCustomer, identity.Role)
}

func TestService_ResolveUser_DeletedAccount(t *testing.T) {
	fixture := newServiceFixture(t)

	_, err := fixture.service.ResolveUser(context.Background(), "gone-user")
	require.Error(t, err)
	assert.Equal(t, "AUTH_INVALID", apperr.As(err).Code)
}
