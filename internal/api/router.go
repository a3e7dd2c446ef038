package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dealpick/backend/internal/auth"
	"github.com/dealpick/backend/internal/config"
	"github.com/dealpick/backend/internal/notifier"
	"github.com/dealpick/backend/internal/storage"
	"github.com/dealpick/backend/internal/validator"
)

// Handler holds every controller's dependencies. Store fields are
// interfaces so tests can substitute mocks; in production they all point at
// the same Firestore client.
type Handler struct {
	Products   ProductStore
	Posts      PostStore
	Categories CategoryStore
	Deals      DealStore
	Clicks     ClickStore
	Admins     AdminStore
	DB         HealthStore
	Gateway    IdentityGateway
	Sessions   SessionService
	Announcer  DealAnnouncer

	cfg      *config.Config
	validate *validator.Validator
}

func New(cfg *config.Config, store *storage.Client, gateway *auth.Gateway, sessions *auth.RESTClient, announcer *notifier.Client) *Handler {
	h := &Handler{
		Products:   store,
		Posts:      store,
		Categories: store,
		Deals:      store,
		Clicks:     store,
		Admins:     store,
		DB:         store,
		Gateway:    gateway,
		cfg:        cfg,
		validate:   validator.New(),
	}
	if sessions != nil {
		h.Sessions = sessions
	}
	if announcer != nil {
		h.Announcer = announcer
	}
	return h
}

// Routes builds the full route table.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(securityHeaders)
	r.Use(h.corsHandler())
	r.Use(h.bodyLimit)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/{slug}", h.GetProduct)
			r.With(h.requireAdmin).Post("/", h.CreateProduct)
			r.With(h.requireAdmin).Put("/{id}", h.UpdateProduct)
			r.With(h.requireAdmin).Delete("/{id}", h.DeleteProduct)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.ListPosts)
			r.Get("/{slug}", h.GetPost)
			r.With(h.requireAdmin).Post("/", h.CreatePost)
			r.With(h.requireAdmin).Put("/{id}", h.UpdatePost)
			r.With(h.requireAdmin).Delete("/{id}", h.DeletePost)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Get("/{slug}", h.GetCategory)
			r.Get("/{slug}/products", h.GetCategoryProducts)
			r.With(h.requireAdmin).Post("/", h.CreateCategory)
			r.With(h.requireAdmin).Put("/{id}", h.UpdateCategory)
			r.With(h.requireAdmin).Delete("/{id}", h.DeleteCategory)
		})

		r.Route("/deals", func(r chi.Router) {
			r.Get("/public", h.ListPublicDeals)
			// Root list branches on header presence: bearer requests get
			// the full authenticated list, anonymous ones the active set.
			r.Get("/", h.ListDeals)
			r.With(h.requireAdmin).Post("/", h.CreateDeal)
			r.With(h.requireAdmin).Put("/{id}", h.UpdateDeal)
			r.With(h.requireAdmin).Delete("/{id}", h.DeleteDeal)
		})

		r.Route("/redirect", func(r chi.Router) {
			r.Get("/{productSlug}", h.Redirect)
			r.With(h.requireAdmin).Get("/analytics/{productSlug}", h.RedirectAnalytics)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/exchange", h.Exchange)
			r.With(h.requireAdmin).Post("/refresh", h.Refresh)
			r.With(h.requireAdmin).Get("/verify", h.Verify)
			r.With(h.requireAdmin).Post("/logout", h.Logout)
			r.With(h.requireAdmin).Get("/profile", h.Profile)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Get("/stats", h.AdminStats)
			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.ListAdminUsers)
				r.Post("/", h.CreateAdminUser)
				r.Get("/{uid}", h.GetAdminUser)
				r.Put("/{uid}", h.UpdateAdminUser)
				r.Delete("/{uid}", h.DeleteAdminUser)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Get("/stats", h.DashboardStats)
			r.Get("/recent", h.DashboardRecent)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
