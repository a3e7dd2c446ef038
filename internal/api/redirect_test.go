package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dealpick/backend/internal/auth"
	"github.com/dealpick/backend/internal/models"
)

func TestRedirect(t *testing.T) {
	h, deps := newTestHandler(t)
	product := &models.Product{
		ID:            "p1",
		Slug:          "widget",
		AffiliateLink: "https://merchant.example.com/widget",
		Status:        models.StatusPublished,
	}
	deps.products.On("GetProductBySlug", mock.Anything, "widget", true).Return(product, nil)
	deps.clicks.On("AddClickEvent", mock.Anything, mock.MatchedBy(func(e *models.ClickEvent) bool {
		return e.ProductID == "p1" && e.Referrer == "direct" && e.UserAgent != ""
	})).Return(&models.ClickEvent{ID: "c1"}, nil)
	deps.products.On("IncrementProductClicks", mock.Anything, "p1", mock.Anything).Return(nil)

	rec := doRequest(t, h, http.MethodGet, "/api/redirect/widget", nil,
		map[string]string{"User-Agent": "test-agent"})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, product.AffiliateLink, rec.Header().Get("Location"))
	deps.clicks.AssertExpectations(t)
	deps.products.AssertExpectations(t)
}

func TestRedirect_ReferrerRecorded(t *testing.T) {
	h, deps := newTestHandler(t)
	product := &models.Product{ID: "p1", Slug: "widget", AffiliateLink: "https://merchant.example.com/widget"}
	deps.products.On("GetProductBySlug", mock.Anything, "widget", true).Return(product, nil)
	deps.clicks.On("AddClickEvent", mock.Anything, mock.MatchedBy(func(e *models.ClickEvent) bool {
		return e.Referrer == "https://blog.example.com/review"
	})).Return(&models.ClickEvent{ID: "c2"}, nil)
	deps.products.On("IncrementProductClicks", mock.Anything, "p1", mock.Anything).Return(nil)

	rec := doRequest(t, h, http.MethodGet, "/api/redirect/widget", nil,
		map[string]string{"Referer": "https://blog.example.com/review"})

	require.Equal(t, http.StatusFound, rec.Code)
	deps.clicks.AssertExpectations(t)
}

func TestRedirect_ClickEventFailureBlocksRedirect(t *testing.T) {
	h, deps := newTestHandler(t)
	product := &models.Product{ID: "p1", Slug: "widget", AffiliateLink: "https://merchant.example.com/widget"}
	deps.products.On("GetProductBySlug", mock.Anything, "widget", true).Return(product, nil)
	deps.clicks.On("AddClickEvent", mock.Anything, mock.Anything).
		Return(nil, errors.New("firestore write failed"))

	rec := doRequest(t, h, http.MethodGet, "/api/redirect/widget", nil, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	deps.products.AssertNotCalled(t, "IncrementProductClicks", mock.Anything, mock.Anything, mock.Anything)
}

func TestRedirect_IncrementFailureBlocksRedirect(t *testing.T) {
	h, deps := newTestHandler(t)
	product := &models.Product{ID: "p1", Slug: "widget", AffiliateLink: "https://merchant.example.com/widget"}
	deps.products.On("GetProductBySlug", mock.Anything, "widget", true).Return(product, nil)
	deps.clicks.On("AddClickEvent", mock.Anything, mock.Anything).Return(&models.ClickEvent{ID: "c1"}, nil)
	deps.products.On("IncrementProductClicks", mock.Anything, "p1", mock.Anything).
		Return(errors.New("firestore write failed"))

	rec := doRequest(t, h, http.MethodGet, "/api/redirect/widget", nil, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestRedirect_UnpublishedNotFound(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.products.On("GetProductBySlug", mock.Anything, "draft-item", true).Return(nil, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/redirect/draft-item", nil, nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	deps.clicks.AssertNotCalled(t, "AddClickEvent", mock.Anything, mock.Anything)
}

func TestRedirect_NoAffiliateLink(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.products.On("GetProductBySlug", mock.Anything, "bare", true).
		Return(&models.Product{ID: "p2", Slug: "bare"}, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/redirect/bare", nil, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Product has no affiliate link", env.Error)
}

func TestRedirectAnalytics(t *testing.T) {
	h, deps := newTestHandler(t)
	grantAdmin(deps)
	product := &models.Product{ID: "p1", Slug: "widget", Name: "Widget", Clicks: 42, Status: models.StatusDraft}
	deps.products.On("GetProductBySlug", mock.Anything, "widget", false).Return(product, nil)
	deps.clicks.On("RecentClicksByProduct", mock.Anything, "p1", 100).
		Return([]models.ClickEvent{{ID: "c1", ProductID: "p1"}}, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/redirect/analytics/widget", nil, adminHeader())

	require.Equal(t, http.StatusOK, rec.Code)
	data := dataAsMap(t, decodeEnvelope(t, rec))
	assert.Equal(t, float64(42), data["totalClicks"])
	assert.Len(t, data["recentClicks"], 1)
}

func TestRedirectAnalytics_RequiresAdmin(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.gateway.On("Authenticate", mock.Anything, "").Return(nil, auth.ErrNoToken)

	rec := doRequest(t, h, http.MethodGet, "/api/redirect/analytics/widget", nil, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
