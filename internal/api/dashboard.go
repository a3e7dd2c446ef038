package api

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dealpick/backend/internal/models"
)

// DashboardStats aggregates cross-collection totals in parallel.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	var (
		totalProducts, publishedProducts, draftProducts int64
		totalPosts, publishedPosts                      int64
		totalCategories                                 int64
		totalDeals, activeDeals                         int64
		totalClicks                                     int64
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		n, err := h.Products.CountProducts(ctx, "")
		totalProducts = n
		return err
	})
	g.Go(func() error {
		n, err := h.Products.CountProducts(ctx, models.StatusPublished)
		publishedProducts = n
		return err
	})
	g.Go(func() error {
		n, err := h.Products.CountProducts(ctx, models.StatusDraft)
		draftProducts = n
		return err
	})
	g.Go(func() error {
		n, err := h.Posts.CountPosts(ctx, "")
		totalPosts = n
		return err
	})
	g.Go(func() error {
		n, err := h.Posts.CountPosts(ctx, models.StatusPublished)
		publishedPosts = n
		return err
	})
	g.Go(func() error {
		n, err := h.Categories.CountCategories(ctx)
		totalCategories = n
		return err
	})
	g.Go(func() error {
		n, err := h.Deals.CountDeals(ctx, false)
		totalDeals = n
		return err
	})
	g.Go(func() error {
		n, err := h.Deals.CountDeals(ctx, true)
		activeDeals = n
		return err
	})
	g.Go(func() error {
		n, err := h.Clicks.CountClicks(ctx)
		totalClicks = n
		return err
	})
	if err := g.Wait(); err != nil {
		h.respondInternal(w, r, err, "Failed to aggregate dashboard stats")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"products": map[string]int64{
			"total":     totalProducts,
			"published": publishedProducts,
			"draft":     draftProducts,
		},
		"posts": map[string]int64{
			"total":     totalPosts,
			"published": publishedPosts,
		},
		"categories": map[string]int64{"total": totalCategories},
		"deals": map[string]int64{
			"total":  totalDeals,
			"active": activeDeals,
		},
		"clicks": map[string]int64{"total": totalClicks},
	})
}

// DashboardRecent returns the five newest products and posts for the
// dashboard activity panel.
func (h *Handler) DashboardRecent(w http.ResponseWriter, r *http.Request) {
	var (
		products []models.Product
		posts    []models.BlogPost
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		list, err := h.Products.ListRecentProducts(ctx, 5)
		products = list
		return err
	})
	g.Go(func() error {
		list, err := h.Posts.ListRecentPosts(ctx, 5)
		posts = list
		return err
	})
	if err := g.Wait(); err != nil {
		h.respondInternal(w, r, err, "Failed to load recent activity")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"posts":    posts,
	})
}
