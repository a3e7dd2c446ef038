package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dealpick/backend/internal/auth"
)

// requireAdmin gates a route behind the identity gateway and attaches the
// resolved identity to the request context.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := h.Gateway.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			respondAuthError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	})
}

// respondAuthError maps gateway errors onto status codes: 503 provider
// missing, 401 token problems, 403 authenticated-but-not-admin.
func respondAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, "Authentication service unavailable")
	case errors.Is(err, auth.ErrNoToken):
		respondError(w, http.StatusUnauthorized, "Authorization token required")
	case errors.Is(err, auth.ErrTokenExpired):
		respondError(w, http.StatusUnauthorized, "Token expired")
	case errors.Is(err, auth.ErrNotAdmin):
		respondError(w, http.StatusForbidden, "Admin access required")
	case errors.Is(err, auth.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, "Invalid token")
	default:
		slog.Error("Authentication failed unexpectedly", "error", err)
		respondError(w, http.StatusInternalServerError, "Authentication failed")
	}
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := w.Header()
		hdr.Set("X-Content-Type-Options", "nosniff")
		hdr.Set("X-Frame-Options", "DENY")
		hdr.Set("Referrer-Policy", "no-referrer")
		hdr.Set("Cross-Origin-Resource-Policy", "same-site")
		next.ServeHTTP(w, r)
	})
}

// corsHandler admits the configured origin allow-list; development mode
// additionally admits loopback origins so local frontends work unlisted.
func (h *Handler) corsHandler() func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(h.cfg.AllowedOrigins))
	for _, o := range h.cfg.AllowedOrigins {
		allowed[o] = true
	}
	dev := h.cfg.IsDevelopment()

	return cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			if allowed[origin] {
				return true
			}
			if !dev {
				return false
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			host := u.Hostname()
			return host == "localhost" || host == "127.0.0.1" || host == "::1"
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// bodyLimit caps request body size; oversized JSON surfaces as 413 through
// decodeJSON.
func (h *Handler) bodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger emits one structured line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"requestId", chimw.GetReqID(r.Context()),
		)
	})
}
