package api

import (
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/dealpick/backend/internal/models"
	"github.com/dealpick/backend/internal/util"
	"github.com/dealpick/backend/internal/validator"
)

// ListCategories returns all categories with derived product counts.
// Counts are recomputed per request, never stored.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.ListCategories(r.Context())
	if err != nil {
		h.respondInternal(w, r, err, "Failed to list categories")
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	for i := range categories {
		i := i
		g.Go(func() error {
			count, err := h.Products.CountProductsByCategory(ctx, categories[i].Name)
			if err != nil {
				return err
			}
			categories[i].ProductCount = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.respondInternal(w, r, err, "Failed to count category products")
		return
	}

	respondData(w, http.StatusOK, categories)
}

// GetCategory returns one category by slug with its derived product count.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	category, err := h.Categories.GetCategoryBySlug(r.Context(), slug)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get category")
		return
	}
	if category == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	count, err := h.Products.CountProductsByCategory(r.Context(), category.Name)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to count category products")
		return
	}
	category.ProductCount = count

	respondData(w, http.StatusOK, category)
}

// GetCategoryProducts returns the published products referencing a category.
func (h *Handler) GetCategoryProducts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	category, err := h.Categories.GetCategoryBySlug(r.Context(), slug)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get category")
		return
	}
	if category == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	products, err := h.Products.ListProductsByCategory(r.Context(), category.Name, true)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to list category products")
		return
	}
	respondData(w, http.StatusOK, products)
}

type categoryInput struct {
	Name        string `json:"name" validate:"required,notblank"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input categoryInput
	if err := decodeJSON(w, r, &input); err != nil {
		return
	}
	if err := h.validate.ValidateStruct(input); err != nil {
		missing, invalid := validator.Problems(err)
		respondValidation(w, missing, invalid)
		return
	}

	nameTaken, err := h.Categories.IsCategoryNameTaken(r.Context(), input.Name, "")
	if err != nil {
		h.respondInternal(w, r, err, "Failed to check category name")
		return
	}
	if nameTaken {
		respondError(w, http.StatusConflict, "Category name already exists")
		return
	}

	slug, err := resolveSlug(r.Context(), input.Slug, input.Name, h.Categories.IsCategorySlugTaken)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to check slug uniqueness")
		return
	}
	if slug == "" {
		respondError(w, http.StatusBadRequest, "Unable to derive a slug from the category name")
		return
	}

	now := time.Now().UTC()
	category := &models.Category{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := h.Categories.CreateCategory(r.Context(), category)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to create category")
		return
	}
	respondData(w, http.StatusCreated, created)
}

type categoryUpdateInput struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Categories.GetCategoryByID(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get category")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	var input categoryUpdateInput
	if err := decodeJSON(w, r, &input); err != nil {
		return
	}

	updates := []firestore.Update{}
	if input.Name != nil && *input.Name != existing.Name {
		nameTaken, err := h.Categories.IsCategoryNameTaken(r.Context(), *input.Name, id)
		if err != nil {
			h.respondInternal(w, r, err, "Failed to check category name")
			return
		}
		if nameTaken {
			respondError(w, http.StatusConflict, "Category name already exists")
			return
		}
		updates = append(updates, firestore.Update{Path: "name", Value: *input.Name})
	}
	if input.Slug != nil && *input.Slug != existing.Slug {
		newSlug := util.Slugify(*input.Slug)
		if newSlug == "" {
			respondError(w, http.StatusBadRequest, "Invalid slug")
			return
		}
		taken, err := h.Categories.IsCategorySlugTaken(r.Context(), newSlug, id)
		if err != nil {
			h.respondInternal(w, r, err, "Failed to check slug uniqueness")
			return
		}
		if taken {
			respondError(w, http.StatusBadRequest, "Slug already in use")
			return
		}
		updates = append(updates, firestore.Update{Path: "slug", Value: newSlug})
	}
	if input.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *input.Description})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})

	if err := h.Categories.UpdateCategory(r.Context(), id, updates); err != nil {
		h.respondInternal(w, r, err, "Failed to update category")
		return
	}

	refreshed, err := h.Categories.GetCategoryByID(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to reload category")
		return
	}
	respondData(w, http.StatusOK, refreshed)
}

// DeleteCategory refuses to delete a category any product still references,
// whatever the product's publication status.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Categories.GetCategoryByID(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get category")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	count, err := h.Products.CountProductsByCategory(r.Context(), existing.Name)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to count category products")
		return
	}
	if count > 0 {
		respondError(w, http.StatusForbidden, "Category has existing products")
		return
	}

	if err := h.Categories.DeleteCategory(r.Context(), id); err != nil {
		h.respondInternal(w, r, err, "Failed to delete category")
		return
	}
	respondMessage(w, http.StatusOK, "Category deleted")
}
