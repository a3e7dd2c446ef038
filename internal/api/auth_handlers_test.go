package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dealpick/backend/internal/auth"
)

func TestLogin_Success(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.gateway.On("Available").Return(true)
	deps.sessions.On("SignInWithPassword", mock.Anything, "admin@example.com", "secret123").
		Return(&auth.SessionTokens{UID: adminUID, Email: "admin@example.com"}, nil)
	deps.gateway.On("UserByUID", mock.Anything, adminUID).
		Return(&auth.Account{UID: adminUID, Email: "admin@example.com", Admin: true}, nil)
	deps.gateway.On("MintExchangeToken", mock.Anything, adminUID, mock.Anything).
		Return("exchange-token-abc", nil)

	body := map[string]interface{}{"email": "admin@example.com", "password": "secret123"}
	rec := doRequest(t, h, http.MethodPost, "/api/auth/login", body, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := dataAsMap(t, decodeEnvelope(t, rec))
	assert.Equal(t, "exchange-token-abc", data["token"])
	deps.gateway.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.gateway.On("Available").Return(true)
	deps.sessions.On("SignInWithPassword", mock.Anything, "admin@example.com", "wrong").
		Return(nil, auth.ErrInvalidCredentials)

	body := map[string]interface{}{"email": "admin@example.com", "password": "wrong"}
	rec := doRequest(t, h, http.MethodPost, "/api/auth/login", body, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Invalid email or password", env.Error)
}

func TestLogin_NonAdminForbidden(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.gateway.On("Available").Return(true)
	deps.sessions.On("SignInWithPassword", mock.Anything, "user@example.com", "secret123").
		Return(&auth.SessionTokens{UID: "user-1", Email: "user@example.com"}, nil)
	deps.gateway.On("UserByUID", mock.Anything, "user-1").
		Return(&auth.Account{UID: "user-1", Email: "user@example.com"}, nil)

	body := map[string]interface{}{"email": "user@example.com", "password": "secret123"}
	rec := doRequest(t, h, http.MethodPost, "/api/auth/login", body, nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
	deps.gateway.AssertNotCalled(t, "MintExchangeToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_ConfiguredEmailEligible(t *testing.T) {
	h, deps := newTestHandler(t)
	h.cfg.AdminEmail = "owner@example.com"
	deps.gateway.On("Available").Return(true)
	deps.sessions.On("SignInWithPassword", mock.Anything, "owner@example.com", "secret123").
		Return(&auth.SessionTokens{UID: "owner-1", Email: "owner@example.com"}, nil)
	deps.gateway.On("UserByUID", mock.Anything, "owner-1").
		Return(&auth.Account{UID: "owner-1", Email: "owner@example.com"}, nil)
	deps.gateway.On("MintExchangeToken", mock.Anything, "owner-1", mock.Anything).
		Return("exchange-token-xyz", nil)

	body := map[string]interface{}{"email": "owner@example.com", "password": "secret123"}
	rec := doRequest(t, h, http.MethodPost, "/api/auth/login", body, nil)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_ConfiguredEmailCaseMismatch(t *testing.T) {
	h, deps := newTestHandler(t)
	h.cfg.AdminEmail = "Owner@example.com"
	deps.gateway.On("Available").Return(true)
	deps.sessions.On("SignInWithPassword", mock.Anything, "owner@example.com", "secret123").
		Return(&auth.SessionTokens{UID: "owner-1", Email: "owner@example.com"}, nil)
	deps.gateway.On("UserByUID", mock.Anything, "owner-1").
		Return(&auth.Account{UID: "owner-1", Email: "owner@example.com"}, nil)

	body := map[string]interface{}{"email": "owner@example.com", "password": "secret123"}
	rec := doRequest(t, h, http.MethodPost, "/api/auth/login", body, nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
	deps.gateway.AssertNotCalled(t, "MintExchangeToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_Unavailable(t *testing.T) {
	h, deps := newTestHandler(t)
	h.Sessions = nil
	_ = deps

	body := map[string]interface{}{"email": "admin@example.com", "password": "secret123"}
	rec := doRequest(t, h, http.MethodPost, "/api/auth/login", body, nil)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Authentication service unavailable", env.Error)
}

func TestExchange(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.gateway.On("Available").Return(true)
	deps.sessions.On("SignInWithCustomToken", mock.Anything, "exchange-token-abc").
		Return(&auth.SessionTokens{IDToken: "id-token", RefreshToken: "refresh", ExpiresIn: "3600"}, nil)

	body := map[string]interface{}{"token": "exchange-token-abc"}
	rec := doRequest(t, h, http.MethodPost, "/api/auth/exchange", body, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := dataAsMap(t, decodeEnvelope(t, rec))
	assert.Equal(t, "id-token", data["idToken"])
	assert.Equal(t, "3600", data["expiresIn"])
}

func TestExchange_InvalidToken(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.gateway.On("Available").Return(true)
	deps.sessions.On("SignInWithCustomToken", mock.Anything, "bogus").
		Return(nil, auth.ErrInvalidToken)

	rec := doRequest(t, h, http.MethodPost, "/api/auth/exchange",
		map[string]interface{}{"token": "bogus"}, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerify(t *testing.T) {
	h, deps := newTestHandler(t)
	grantAdmin(deps)

	rec := doRequest(t, h, http.MethodGet, "/api/auth/verify", nil, adminHeader())

	require.Equal(t, http.StatusOK, rec.Code)
	data := dataAsMap(t, decodeEnvelope(t, rec))
	assert.Equal(t, true, data["valid"])
}

func TestLogout_RevokesSessions(t *testing.T) {
	h, deps := newTestHandler(t)
	grantAdmin(deps)
	deps.gateway.On("RevokeSessions", mock.Anything, adminUID).Return(nil)

	rec := doRequest(t, h, http.MethodPost, "/api/auth/logout", nil, adminHeader())

	require.Equal(t, http.StatusOK, rec.Code)
	deps.gateway.AssertExpectations(t)
}
