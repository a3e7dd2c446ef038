package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"

	"github.com/dealpick/backend/internal/models"
	"github.com/dealpick/backend/internal/util"
	"github.com/dealpick/backend/internal/validator"
)

// ListProducts returns all published products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.ListProducts(r.Context(), true)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to list products")
		return
	}
	respondData(w, http.StatusOK, products)
}

// GetProduct returns one published product by slug.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	product, err := h.Products.GetProductBySlug(r.Context(), slug, true)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondData(w, http.StatusOK, product)
}

type productInput struct {
	Name          string `json:"name" validate:"required,notblank"`
	Slug          string `json:"slug"`
	Image         string `json:"image" validate:"required,url"`
	Description   string `json:"description" validate:"required,notblank"`
	AffiliateLink string `json:"affiliateLink" validate:"required,url"`
	Category      string `json:"category" validate:"required,notblank"`
	Status        string `json:"status" validate:"omitempty,oneof=draft published"`
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input productInput
	if err := decodeJSON(w, r, &input); err != nil {
		return
	}
	if err := h.validate.ValidateStruct(input); err != nil {
		missing, invalid := validator.Problems(err)
		respondValidation(w, missing, invalid)
		return
	}

	slug, err := resolveSlug(r.Context(), input.Slug, input.Name, h.Products.IsProductSlugTaken)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to check slug uniqueness")
		return
	}
	if slug == "" {
		respondError(w, http.StatusBadRequest, "Unable to derive a slug from the product name")
		return
	}

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	affiliateLink, _ := util.NormalizeAffiliateLink(input.AffiliateLink, h.cfg.AmazonAssociateTag)

	now := time.Now().UTC()
	product := &models.Product{
		Name:          input.Name,
		Slug:          slug,
		Image:         input.Image,
		Description:   input.Description,
		AffiliateLink: affiliateLink,
		Category:      input.Category,
		Status:        status,
		Clicks:        0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := h.Products.CreateProduct(r.Context(), product)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to create product")
		return
	}
	respondData(w, http.StatusCreated, created)
}

type productUpdateInput struct {
	Name          *string `json:"name"`
	Slug          *string `json:"slug"`
	Image         *string `json:"image"`
	Description   *string `json:"description"`
	AffiliateLink *string `json:"affiliateLink"`
	Category      *string `json:"category"`
	Status        *string `json:"status"`
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Products.GetProductByID(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get product")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	var input productUpdateInput
	if err := decodeJSON(w, r, &input); err != nil {
		return
	}

	for field, value := range map[string]*string{"image": input.Image, "affiliateLink": input.AffiliateLink} {
		if value != nil && !util.IsValidURL(*value) {
			respondError(w, http.StatusBadRequest, "Invalid URL for field: "+field)
			return
		}
	}
	if input.Status != nil && *input.Status != models.StatusDraft && *input.Status != models.StatusPublished {
		respondError(w, http.StatusBadRequest, "Invalid status value")
		return
	}

	updates := []firestore.Update{}
	if input.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *input.Name})
	}
	if input.Slug != nil && *input.Slug != existing.Slug {
		newSlug := util.Slugify(*input.Slug)
		if newSlug == "" {
			respondError(w, http.StatusBadRequest, "Invalid slug")
			return
		}
		taken, err := h.Products.IsProductSlugTaken(r.Context(), newSlug, id)
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
	if input.Image != nil {
		updates = append(updates, firestore.Update{Path: "image", Value: *input.Image})
	}
	if input.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *input.Description})
	}
	if input.AffiliateLink != nil {
		link, _ := util.NormalizeAffiliateLink(*input.AffiliateLink, h.cfg.AmazonAssociateTag)
		updates = append(updates, firestore.Update{Path: "affiliateLink", Value: link})
	}
	if input.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: *input.Category})
	}
	if input.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: *input.Status})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})

	if err := h.Products.UpdateProduct(r.Context(), id, updates); err != nil {
		h.respondInternal(w, r, err, "Failed to update product")
		return
	}

	refreshed, err := h.Products.GetProductByID(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to reload product")
		return
	}
	respondData(w, http.StatusOK, refreshed)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Products.GetProductByID(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get product")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.Products.DeleteProduct(r.Context(), id); err != nil {
		h.respondInternal(w, r, err, "Failed to delete product")
		return
	}
	respondMessage(w, http.StatusOK, "Product deleted")
}

// resolveSlug derives a slug from the explicit value or the title, then
// disambiguates a collision by appending the current timestamp. A second
// collision within the same millisecond is not handled.
func resolveSlug(ctx context.Context, explicit, title string, taken func(context.Context, string, string) (bool, error)) (string, error) {
	slug := util.Slugify(explicit)
	if slug == "" {
		slug = util.Slugify(title)
	}
	if slug == "" {
		return "", nil
	}
	exists, err := taken(ctx, slug, "")
	if err != nil {
		return "", err
	}
	if exists {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
	}
	return slug, nil
}
