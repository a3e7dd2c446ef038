package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dealpick/backend/internal/models"
)

func TestListCategories_DerivedCounts(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.categories.On("ListCategories", mock.Anything).Return([]models.Category{
		{ID: "c1", Name: "Electronics", Slug: "electronics"},
		{ID: "c2", Name: "Books", Slug: "books"},
	}, nil)
	deps.products.On("CountProductsByCategory", mock.Anything, "Electronics").Return(int64(7), nil)
	deps.products.On("CountProductsByCategory", mock.Anything, "Books").Return(int64(0), nil)

	rec := doRequest(t, h, http.MethodGet, "/api/categories", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	list, ok := env.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, float64(7), first["productCount"])
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	h, deps := newTestHandler(t)
	grantAdmin(deps)
	deps.categories.On("IsCategoryNameTaken", mock.Anything, "Electronics", "").Return(true, nil)

	rec := doRequest(t, h, http.MethodPost, "/api/categories",
		map[string]interface{}{"name": "Electronics"}, adminHeader())

	require.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Category name already exists", env.Error)
	deps.categories.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
}

func TestDeleteCategory_WithProducts(t *testing.T) {
	h, deps := newTestHandler(t)
	grantAdmin(deps)
	deps.categories.On("GetCategoryByID", mock.Anything, "c1").
		Return(&models.Category{ID: "c1", Name: "Electronics"}, nil)
	deps.products.On("CountProductsByCategory", mock.Anything, "Electronics").Return(int64(3), nil)

	rec := doRequest(t, h, http.MethodDelete, "/api/categories/c1", nil, adminHeader())

	require.Equal(t, http.StatusForbidden, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Category has existing products", env.Error)
	deps.categories.AssertNotCalled(t, "DeleteCategory", mock.Anything, mock.Anything)
}

func TestDeleteCategory_Empty(t *testing.T) {
	h, deps := newTestHandler(t)
	grantAdmin(deps)
	deps.categories.On("GetCategoryByID", mock.Anything, "c2").
		Return(&models.Category{ID: "c2", Name: "Books"}, nil)
	deps.products.On("CountProductsByCategory", mock.Anything, "Books").Return(int64(0), nil)
	deps.categories.On("DeleteCategory", mock.Anything, "c2").Return(nil)

	rec := doRequest(t, h, http.MethodDelete, "/api/categories/c2", nil, adminHeader())

	require.Equal(t, http.StatusOK, rec.Code)
	deps.categories.AssertExpectations(t)
}

func TestGetCategoryProducts(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.categories.On("GetCategoryBySlug", mock.Anything, "electronics").
		Return(&models.Category{ID: "c1", Name: "Electronics", Slug: "electronics"}, nil)
	deps.products.On("ListProductsByCategory", mock.Anything, "Electronics", true).
		Return([]models.Product{{ID: "p1", Category: "Electronics"}}, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/categories/electronics/products", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	deps.products.AssertExpectations(t)
}
