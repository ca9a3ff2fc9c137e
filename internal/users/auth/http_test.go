// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/selluna/internal/platform/middleware"
	"github.com/taibuivan/selluna/internal/platform/sec"
	"github.com/taibuivan/selluna/internal/users/auth"
)

// newHandlerFixture wires the handler onto in-memory stores and a real token
// service, mounted the way the composition root mounts it.
func newHandlerFixture(t *testing.T) (http.Handler, *serviceFixture) {
	t.Helper()

	fixture := newServiceFixture(t)
	handler := auth.NewHandler(fixture.service, false)
	session := middleware.SessionGuard(fixture.tokens, fixture.service)

	return handler.Routes(session), fixture
}

func postJSON(t *testing.T, handler http.Handler, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestHandler_SignupSetsSessionCookies(t *testing.T) {
	routes, _ := newHandlerFixture(t)

	recorder := postJSON(t, routes, "/signup",
		`{"name":"Test Shopper","email":"shopper@example.com","password":"hunter22"}`, nil)

	require.Equal(t, http.StatusCreated, recorder.Code)

	cookies := recorder.Result().Cookies()
	accessCookie := cookieByName(cookies, "accessToken")
	refreshCookie := cookieByName(cookies, "refreshToken")

	require.NotNil(t, accessCookie)
	require.NotNil(t, refreshCookie)
	assert.True(t, accessCookie.HttpOnly)
	assert.True(t, refreshCookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, accessCookie.SameSite)
	assert.Equal(t, "/", refreshCookie.Path)

	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Data, "user")
	// The password hash must never appear in a response.
	assert.NotContains(t, recorder.Body.String(), "passwordhash")
}

func TestHandler_SignupValidation(t *testing.T) {
	routes, _ := newHandlerFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed_json", `{"name":`},
		{"missing_email", `{"name":"Shopper","password":"hunter22"}`},
		{"short_password", `{"name":"Shopper","email":"shopper@example.com","password":"abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, routes, "/signup", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestHandler_LoginFlow(t *testing.T) {
	routes, _ := newHandlerFixture(t)

	recorder := postJSON(t, routes, "/signup",
		`{"name":"Test Shopper","email":"shopper@example.com","password":"hunter22"}`, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = postJSON(t, routes, "/login",
		`{"email":"shopper@example.com","password":"hunter22"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotNil(t, cookieByName(recorder.Result().Cookies(), "refreshToken"))

	recorder = postJSON(t, routes, "/login",
		`{"email":"shopper@example.com","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_RefreshToken(t *testing.T) {
	routes, _ := newHandlerFixture(t)

	signup := postJSON(t, routes, "/signup",
		`{"name":"Test Shopper","email":"shopper@example.com","password":"hunter22"}`, nil)
	require.Equal(t, http.StatusCreated, signup.Code)
	refreshCookie := cookieByName(signup.Result().Cookies(), "refreshToken")
	require.NotNil(t, refreshCookie)

	t.Run("no_cookie", func(t *testing.T) {
		recorder := postJSON(t, routes, "/refresh-token", "", nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "AUTH_MISSING")
	})

	t.Run("valid_cookie", func(t *testing.T) {
		recorder := postJSON(t, routes, "/refresh-token", "", []*http.Cookie{refreshCookie})
		require.Equal(t, http.StatusOK, recorder.Code)

		// A fresh access cookie rides along with the JSON payload.
		accessCookie := cookieByName(recorder.Result().Cookies(), "accessToken")
		require.NotNil(t, accessCookie)
		assert.NotEmpty(t, accessCookie.Value)
		assert.Contains(t, recorder.Body.String(), "accessToken")

		// The refresh cookie is not rewritten: no rotation on refresh.
		assert.Nil(t, cookieByName(recorder.Result().Cookies(), "refreshToken"))
	})

	t.Run("forged_cookie", func(t *testing.T) {
		forged := &http.Cookie{Name: "refreshToken", Value: "not-a-jwt"}
		recorder := postJSON(t, routes, "/refresh-token", "", []*http.Cookie{forged})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "AUTH_INVALID")
	})
}

func TestHandler_LogoutClearsCookies(t *testing.T) {
	routes, _ := newHandlerFixture(t)

	signup := postJSON(t, routes, "/signup",
		`{"name":"Test Shopper","email":"shopper@example.com","password":"hunter22"}`, nil)
	require.Equal(t, http.StatusCreated, signup.Code)
	refreshCookie := cookieByName(signup.Result().Cookies(), "refreshToken")

	recorder := postJSON(t, routes, "/logout", "", []*http.Cookie{refreshCookie})
	require.Equal(t, http.StatusOK, recorder.Code)

	// Both cookies come back expired even though only one was presented.
	for _, name := range []string{"accessToken", "refreshToken"} {
		cleared := cookieByName(recorder.Result().Cookies(), name)
		require.NotNil(t, cleared, name)
		assert.Empty(t, cleared.Value)
		assert.Negative(t, cleared.MaxAge)
	}

	// Logging out twice is fine.
	recorder = postJSON(t, routes, "/logout", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_Profile(t *testing.T) {
	routes, fixture := newHandlerFixture(t)

	signup := postJSON(t, routes, "/signup",
		`{"name":"Test Shopper","email":"shopper@example.com","password":"hunter22"}`, nil)
	require.Equal(t, http.StatusCreated, signup.Code)
	accessCookie := cookieByName(signup.Result().Cookies(), "accessToken")
	require.NotNil(t, accessCookie)

	t.Run("authenticated", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/profile", nil)
		request.AddCookie(accessCookie)
		recorder := httptest.NewRecorder()
		routes.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data sec.AuthUser `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "shopper@example.com", envelope.Data.Email)
	})

	t.Run("no_cookie", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/profile", nil)
		recorder := httptest.NewRecorder()
		routes.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "AUTH_MISSING")
	})

	t.Run("expired_access_token", func(t *testing.T) {
		expired, err := fixture.tokens.GenerateAccessToken("user-123", -1)
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodGet, "/profile", nil)
		request.AddCookie(&http.Cookie{Name: "accessToken", Value: expired})
		recorder := httptest.NewRecorder()
		routes.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "AUTH_EXPIRED")
	})
}
