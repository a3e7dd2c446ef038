package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dealpick/backend/internal/config"
	"github.com/dealpick/backend/internal/validator"
)

// testDeps bundles the mocks behind a handler under test.
type testDeps struct {
	products   *mockProductStore
	posts      *mockPostStore
	categories *mockCategoryStore
	deals      *mockDealStore
	clicks     *mockClickStore
	admins     *mockAdminStore
	db         *mockHealthStore
	gateway    *mockGateway
	sessions   *mockSessions
}

func newTestHandler(t *testing.T) (*Handler, *testDeps) {
	t.Helper()
	deps := &testDeps{
		products:   &mockProductStore{},
		posts:      &mockPostStore{},
		categories: &mockCategoryStore{},
		deals:      &mockDealStore{},
		clicks:     &mockClickStore{},
		admins:     &mockAdminStore{},
		db:         &mockHealthStore{},
		gateway:    &mockGateway{},
		sessions:   &mockSessions{},
	}
	h := &Handler{
		Products:   deps.products,
		Posts:      deps.posts,
		Categories: deps.categories,
		Deals:      deps.deals,
		Clicks:     deps.clicks,
		Admins:     deps.admins,
		DB:         deps.db,
		Gateway:    deps.gateway,
		Sessions:   deps.sessions,
		cfg: &config.Config{
			Port:         "8080",
			AppEnv:       "production",
			ProjectID:    "test-project",
			MaxBodyBytes: 1 << 20,
		},
		validate: validator.New(),
	}
	return h, deps
}

func doRequest(t *testing.T, h *Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func dataAsMap(t *testing.T, env Envelope) map[string]interface{} {
	t.Helper()
	m, ok := env.Data.(map[string]interface{})
	require.True(t, ok, "data is not an object: %T", env.Data)
	return m
}

func adminHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer admin-token"}
}

const adminUID = "admin-uid-1"
