package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"

	"github.com/dealpick/backend/internal/models"
	"github.com/dealpick/backend/internal/util"
	"github.com/dealpick/backend/internal/validator"
)

// ListPublicDeals returns active deals only.
func (h *Handler) ListPublicDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := h.Deals.ListDeals(r.Context(), true)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to list deals")
		return
	}
	respondData(w, http.StatusOK, deals)
}

// ListDeals branches on header presence: requests carrying a bearer token
// are authenticated and get the full list, anonymous ones the active set.
func (h *Handler) ListDeals(w http.ResponseWriter, r *http.Request) {
	activeOnly := true
	if r.Header.Get("Authorization") != "" {
		if _, err := h.Gateway.Authenticate(r.Context(), r.Header.Get("Authorization")); err != nil {
			respondAuthError(w, err)
			return
		}
		activeOnly = false
	}

	deals, err := h.Deals.ListDeals(r.Context(), activeOnly)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to list deals")
		return
	}
	respondData(w, http.StatusOK, deals)
}

type dealInput struct {
	Title           string   `json:"title" validate:"required,notblank"`
	Description     string   `json:"description"`
	OriginalPrice   float64  `json:"originalPrice" validate:"required,gt=0"`
	DiscountedPrice *float64 `json:"discountedPrice" validate:"required"`
	AffiliateLink   string   `json:"affiliateLink" validate:"required,url"`
	Image           string   `json:"image" validate:"omitempty,url"`
	Category        string   `json:"category"`
	IsActive        *bool    `json:"isActive"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
}

func (h *Handler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	var input dealInput
	if err := decodeJSON(w, r, &input); err != nil {
		return
	}
	if err := h.validate.ValidateStruct(input); err != nil {
		missing, invalid := validator.Problems(err)
		respondValidation(w, missing, invalid)
		return
	}
	if *input.DiscountedPrice < 0 || *input.DiscountedPrice > input.OriginalPrice {
		respondError(w, http.StatusBadRequest, "Discounted price must be between 0 and the original price")
		return
	}

	var startDate, endDate *time.Time
	if input.StartDate != "" {
		t, err := parseDate(input.StartDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid startDate format")
			return
		}
		startDate = &t
	}
	if input.EndDate != "" {
		t, err := parseDate(input.EndDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid endDate format")
			return
		}
		endDate = &t
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	affiliateLink, _ := util.NormalizeAffiliateLink(input.AffiliateLink, h.cfg.AmazonAssociateTag)

	now := time.Now().UTC()
	deal := &models.Deal{
		Title:              input.Title,
		Description:        input.Description,
		OriginalPrice:      input.OriginalPrice,
		DiscountedPrice:    *input.DiscountedPrice,
		DiscountPercentage: models.DiscountPercent(input.OriginalPrice, *input.DiscountedPrice),
		AffiliateLink:      affiliateLink,
		Image:              input.Image,
		Category:           input.Category,
		IsActive:           active,
		StartDate:          startDate,
		EndDate:            endDate,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := h.Deals.CreateDeal(r.Context(), deal)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to create deal")
		return
	}

	// Announcement is best-effort and must not delay the response.
	if h.Announcer != nil && h.Announcer.Enabled() && created.IsActive {
		go func(d models.Deal) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.Announcer.AnnounceDeal(ctx, &d); err != nil {
				slog.Error("Failed to announce deal", "dealId", d.ID, "error", err)
			}
		}(*created)
	}

	respondData(w, http.StatusCreated, created)
}

type dealUpdateInput struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	OriginalPrice   *float64 `json:"originalPrice"`
	DiscountedPrice *float64 `json:"discountedPrice"`
	AffiliateLink   *string  `json:"affiliateLink"`
	Image           *string  `json:"image"`
	Category        *string  `json:"category"`
	IsActive        *bool    `json:"isActive"`
	StartDate       *string  `json:"startDate"`
	EndDate         *string  `json:"endDate"`
}

func (h *Handler) UpdateDeal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Deals.GetDealByID(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get deal")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Deal not found")
		return
	}

	var input dealUpdateInput
	if err := decodeJSON(w, r, &input); err != nil {
		return
	}

	for field, value := range map[string]*string{"affiliateLink": input.AffiliateLink, "image": input.Image} {
		if value != nil && *value != "" && !util.IsValidURL(*value) {
			respondError(w, http.StatusBadRequest, "Invalid URL for field: "+field)
			return
		}
	}

	updates := []firestore.Update{}
	if input.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *input.Title})
	}
	if input.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *input.Description})
	}
	if input.OriginalPrice != nil {
		if *input.OriginalPrice <= 0 {
			respondError(w, http.StatusBadRequest, "Original price must be positive")
			return
		}
		updates = append(updates, firestore.Update{Path: "originalPrice", Value: *input.OriginalPrice})
	}
	if input.DiscountedPrice != nil {
		if *input.DiscountedPrice < 0 {
			respondError(w, http.StatusBadRequest, "Discounted price must not be negative")
			return
		}
		updates = append(updates, firestore.Update{Path: "discountedPrice", Value: *input.DiscountedPrice})
	}
	// The percentage is server-derived whenever a write carries both
	// prices; a client-sent value is never trusted.
	if input.OriginalPrice != nil && input.DiscountedPrice != nil {
		updates = append(updates, firestore.Update{
			Path:  "discountPercentage",
			Value: models.DiscountPercent(*input.OriginalPrice, *input.DiscountedPrice),
		})
	}
	if input.AffiliateLink != nil {
		link, _ := util.NormalizeAffiliateLink(*input.AffiliateLink, h.cfg.AmazonAssociateTag)
		updates = append(updates, firestore.Update{Path: "affiliateLink", Value: link})
	}
	if input.Image != nil {
		updates = append(updates, firestore.Update{Path: "image", Value: *input.Image})
	}
	if input.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: *input.Category})
	}
	if input.IsActive != nil {
		updates = append(updates, firestore.Update{Path: "isActive", Value: *input.IsActive})
	}
	if input.StartDate != nil {
		t, err := parseDate(*input.StartDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid startDate format")
			return
		}
		updates = append(updates, firestore.Update{Path: "startDate", Value: t})
	}
	if input.EndDate != nil {
		t, err := parseDate(*input.EndDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid endDate format")
			return
		}
		updates = append(updates, firestore.Update{Path: "endDate", Value: t})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})

	if err := h.Deals.UpdateDeal(r.Context(), id, updates); err != nil {
		h.respondInternal(w, r, err, "Failed to update deal")
		return
	}

	refreshed, err := h.Deals.GetDealByID(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to reload deal")
		return
	}
	respondData(w, http.StatusOK, refreshed)
}

func (h *Handler) DeleteDeal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Deals.GetDealByID(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get deal")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Deal not found")
		return
	}

	if err := h.Deals.DeleteDeal(r.Context(), id); err != nil {
		h.respondInternal(w, r, err, "Failed to delete deal")
		return
	}
	respondMessage(w, http.StatusOK, "Deal deleted")
}
