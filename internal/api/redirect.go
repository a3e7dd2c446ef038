package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dealpick/backend/internal/models"
	"github.com/dealpick/backend/internal/util"
)

// Redirect records a click against a published product and sends the
// visitor to its affiliate link. The click event and the counter increment
// must both land before the 302 is issued; a store failure is a 500 and no
// redirect happens.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "productSlug")
	product, err := h.Products.GetProductBySlug(r.Context(), slug, true)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if product.AffiliateLink == "" {
		respondError(w, http.StatusBadRequest, "Product has no affiliate link")
		return
	}

	now := time.Now().UTC()
	referrer := r.Referer()
	if referrer == "" {
		referrer = "direct"
	}
	event := &models.ClickEvent{
		ProductID:   product.ID,
		ProductSlug: product.Slug,
		IP:          util.ClientIP(r),
		UserAgent:   r.UserAgent(),
		Referrer:    referrer,
		Timestamp:   now,
	}
	if _, err := h.Clicks.AddClickEvent(r.Context(), event); err != nil {
		h.respondInternal(w, r, err, "Failed to record click")
		return
	}
	if err := h.Products.IncrementProductClicks(r.Context(), product.ID, now); err != nil {
		h.respondInternal(w, r, err, "Failed to record click")
		return
	}

	http.Redirect(w, r, product.AffiliateLink, http.StatusFound)
}

// RedirectAnalytics returns click totals and the most recent click events
// for a product, published or not.
func (h *Handler) RedirectAnalytics(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "productSlug")
	product, err := h.Products.GetProductBySlug(r.Context(), slug, false)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	clicks, err := h.Clicks.RecentClicksByProduct(r.Context(), product.ID, 100)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to load click events")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"productId":     product.ID,
		"productSlug":   product.Slug,
		"productName":   product.Name,
		"totalClicks":   product.Clicks,
		"lastClickedAt": product.LastClickedAt,
		"recentClicks":  clicks,
	})
}
