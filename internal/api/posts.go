package api

import (
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"

	"github.com/dealpick/backend/internal/models"
	"github.com/dealpick/backend/internal/util"
	"github.com/dealpick/backend/internal/validator"
)

// ListPosts returns all published blog posts.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.ListPosts(r.Context(), true)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to list posts")
		return
	}
	respondData(w, http.StatusOK, posts)
}

// GetPost returns one published post by slug.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.Posts.GetPostBySlug(r.Context(), slug, true)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get post")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	respondData(w, http.StatusOK, post)
}

type postInput struct {
	Title      string   `json:"title" validate:"required,notblank"`
	Slug       string   `json:"slug"`
	Content    string   `json:"content" validate:"required,notblank"`
	CoverImage string   `json:"coverImage" validate:"omitempty,url"`
	Tags       []string `json:"tags"`
	Status     string   `json:"status" validate:"omitempty,oneof=draft published"`
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var input postInput
	if err := decodeJSON(w, r, &input); err != nil {
		return
	}
	if err := h.validate.ValidateStruct(input); err != nil {
		missing, invalid := validator.Problems(err)
		respondValidation(w, missing, invalid)
		return
	}

	slug, err := resolveSlug(r.Context(), input.Slug, input.Title, h.Posts.IsPostSlugTaken)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to check slug uniqueness")
		return
	}
	if slug == "" {
		respondError(w, http.StatusBadRequest, "Unable to derive a slug from the post title")
		return
	}

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	post := &models.BlogPost{
		Title:      input.Title,
		Slug:       slug,
		Content:    input.Content,
		CoverImage: input.CoverImage,
		Tags:       tags,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := h.Posts.CreatePost(r.Context(), post)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to create post")
		return
	}
	respondData(w, http.StatusCreated, created)
}

type postUpdateInput struct {
	Title      *string   `json:"title"`
	Slug       *string   `json:"slug"`
	Content    *string   `json:"content"`
	CoverImage *string   `json:"coverImage"`
	Tags       *[]string `json:"tags"`
	Status     *string   `json:"status"`
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Posts.GetPostByID(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get post")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}

	var input postUpdateInput
	if err := decodeJSON(w, r, &input); err != nil {
		return
	}

	if input.CoverImage != nil && *input.CoverImage != "" && !util.IsValidURL(*input.CoverImage) {
		respondError(w, http.StatusBadRequest, "Invalid URL for field: coverImage")
		return
	}
	if input.Status != nil && *input.Status != models.StatusDraft && *input.Status != models.StatusPublished {
		respondError(w, http.StatusBadRequest, "Invalid status value")
		return
	}

	updates := []firestore.Update{}
	if input.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *input.Title})
	}
	if input.Slug != nil && *input.Slug != existing.Slug {
		newSlug := util.Slugify(*input.Slug)
		if newSlug == "" {
			respondError(w, http.StatusBadRequest, "Invalid slug")
			return
		}
		taken, err := h.Posts.IsPostSlugTaken(r.Context(), newSlug, id)
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
	if input.Content != nil {
		updates = append(updates, firestore.Update{Path: "content", Value: *input.Content})
	}
	if input.CoverImage != nil {
		updates = append(updates, firestore.Update{Path: "coverImage", Value: *input.CoverImage})
	}
	if input.Tags != nil {
		updates = append(updates, firestore.Update{Path: "tags", Value: *input.Tags})
	}
	if input.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: *input.Status})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})

	if err := h.Posts.UpdatePost(r.Context(), id, updates); err != nil {
		h.respondInternal(w, r, err, "Failed to update post")
		return
	}

	refreshed, err := h.Posts.GetPostByID(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to reload post")
		return
	}
	respondData(w, http.StatusOK, refreshed)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Posts.GetPostByID(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get post")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}

	if err := h.Posts.DeletePost(r.Context(), id); err != nil {
		h.respondInternal(w, r, err, "Failed to delete post")
		return
	}
	respondMessage(w, http.StatusOK, "Post deleted")
}
