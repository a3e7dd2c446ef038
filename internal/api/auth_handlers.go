package api

import (
	"errors"
	"net/http"

	"github.com/dealpick/backend/internal/auth"
	"github.com/dealpick/backend/internal/models"
	"github.com/dealpick/backend/internal/validator"
)

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,notblank"`
}

// Login verifies email/password against the identity provider and, for
// admin-eligible accounts, mints a short-lived exchange token. The client
// trades that token for a session at /auth/exchange.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.Sessions == nil || !h.Gateway.Available() {
		respondError(w, http.StatusServiceUnavailable, "Authentication service unavailable")
		return
	}

	var input loginInput
	if err := decodeJSON(w, r, &input); err != nil {
		return
	}
	if err := h.validate.ValidateStruct(input); err != nil {
		missing, invalid := validator.Problems(err)
		respondValidation(w, missing, invalid)
		return
	}

	session, err := h.Sessions.SignInWithPassword(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.respondInternal(w, r, err, "Failed to sign in")
		return
	}

	account, err := h.Gateway.UserByUID(r.Context(), session.UID)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to load account")
		return
	}
	if account == nil || account.Disabled {
		respondError(w, http.StatusForbidden, "Account is disabled")
		return
	}
	eligible := account.Admin ||
		(h.cfg.AdminEmail != "" && account.Email == h.cfg.AdminEmail)
	if !eligible {
		respondError(w, http.StatusForbidden, "Admin access required")
		return
	}

	token, err := h.Gateway.MintExchangeToken(r.Context(), account.UID, map[string]interface{}{
		"admin": true,
		"role":  models.RoleAdmin,
	})
	if err != nil {
		h.respondInternal(w, r, err, "Failed to mint exchange token")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"uid":         account.UID,
			"email":       account.Email,
			"displayName": account.DisplayName,
		},
		"instructions": "POST this token to /api/auth/exchange to obtain a session token",
	})
}

type exchangeInput struct {
	Token string `json:"token" validate:"required,notblank"`
}

// Exchange trades a minted exchange token for a verifiable session token.
func (h *Handler) Exchange(w http.ResponseWriter, r *http.Request) {
	if h.Sessions == nil || !h.Gateway.Available() {
		respondError(w, http.StatusServiceUnavailable, "Authentication service unavailable")
		return
	}

	var input exchangeInput
	if err := decodeJSON(w, r, &input); err != nil {
		return
	}
	if err := h.validate.ValidateStruct(input); err != nil {
		missing, invalid := validator.Problems(err)
		respondValidation(w, missing, invalid)
		return
	}

	session, err := h.Sessions.SignInWithCustomToken(r.Context(), input.Token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			respondError(w, http.StatusUnauthorized, "Invalid or expired exchange token")
			return
		}
		h.respondInternal(w, r, err, "Failed to exchange token")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"idToken":      session.IDToken,
		"refreshToken": session.RefreshToken,
		"expiresIn":    session.ExpiresIn,
	})
}

// Refresh mints a fresh exchange token for the caller, who has already
// proven admin access through the gateway.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	token, err := h.Gateway.MintExchangeToken(r.Context(), identity.UID, map[string]interface{}{
		"admin": true,
		"role":  models.RoleAdmin,
	})
	if err != nil {
		h.respondInternal(w, r, err, "Failed to mint exchange token")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"token": token})
}

// Verify confirms the presented token resolves to an admin identity.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user": map[string]interface{}{
			"uid":   identity.UID,
			"email": identity.Email,
			"role":  identity.Role,
		},
	})
}

// Logout revokes the caller's refresh tokens, invalidating outstanding
// sessions once their current ID tokens expire.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}
	if err := h.Gateway.RevokeSessions(r.Context(), identity.UID); err != nil {
		h.respondInternal(w, r, err, "Failed to revoke sessions")
		return
	}
	respondMessage(w, http.StatusOK, "Logged out")
}

// Profile returns the caller's provider account merged with the stored
// admin profile document, when one exists.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	account, err := h.Gateway.UserByUID(r.Context(), identity.UID)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to load account")
		return
	}
	if account == nil {
		respondError(w, http.StatusNotFound, "Account not found")
		return
	}

	profile := map[string]interface{}{
		"uid":         account.UID,
		"email":       account.Email,
		"displayName": account.DisplayName,
		"role":        identity.Role,
	}
	admin, err := h.Admins.GetAdmin(r.Context(), identity.UID)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to load admin profile")
		return
	}
	if admin != nil {
		profile["permissions"] = admin.Permissions
		profile["isActive"] = admin.IsActive
		profile["createdAt"] = admin.CreatedAt
	}

	respondData(w, http.StatusOK, profile)
}
