package api

import (
	"errors"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/dealpick/backend/internal/auth"
	"github.com/dealpick/backend/internal/models"
	"github.com/dealpick/backend/internal/validator"
)

// ListAdminUsers returns every stored admin profile.
func (h *Handler) ListAdminUsers(w http.ResponseWriter, r *http.Request) {
	admins, err := h.Admins.ListAdmins(r.Context())
	if err != nil {
		h.respondInternal(w, r, err, "Failed to list admin users")
		return
	}
	respondData(w, http.StatusOK, admins)
}

func (h *Handler) GetAdminUser(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	admin, err := h.Admins.GetAdmin(r.Context(), uid)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get admin user")
		return
	}
	if admin == nil {
		respondError(w, http.StatusNotFound, "Admin user not found")
		return
	}
	respondData(w, http.StatusOK, admin)
}

type adminUserInput struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=6"`
	DisplayName string   `json:"displayName"`
	Permissions []string `json:"permissions"`
}

// CreateAdminUser provisions a provider account with admin claims and the
// matching profile document. The profile write follows the provider create;
// a failure there leaves an account without a profile, surfaced as a 500.
func (h *Handler) CreateAdminUser(w http.ResponseWriter, r *http.Request) {
	var input adminUserInput
	if err := decodeJSON(w, r, &input); err != nil {
		return
	}
	if err := h.validate.ValidateStruct(input); err != nil {
		missing, invalid := validator.Problems(err)
		respondValidation(w, missing, invalid)
		return
	}

	existing, err := h.Gateway.UserByEmail(r.Context(), input.Email)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to check email")
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "Email already in use")
		return
	}

	account, err := h.Gateway.CreateAdminAccount(r.Context(), input.Email, input.Password, input.DisplayName)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to create admin account")
		return
	}

	permissions := input.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	now := time.Now().UTC()
	admin := &models.AdminUser{
		UID:         account.UID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		Role:        models.RoleAdmin,
		Permissions: permissions,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.Admins.CreateAdmin(r.Context(), admin); err != nil {
		if errors.Is(err, models.ErrEmailExists) {
			respondError(w, http.StatusConflict, "Email already in use")
			return
		}
		h.respondInternal(w, r, err, "Failed to store admin profile")
		return
	}
	respondData(w, http.StatusCreated, admin)
}

type adminUserUpdateInput struct {
	DisplayName *string   `json:"displayName"`
	Permissions *[]string `json:"permissions"`
	IsActive    *bool     `json:"isActive"`
}

// UpdateAdminUser edits profile fields and mirrors activation state onto the
// provider record. An admin cannot deactivate their own account.
func (h *Handler) UpdateAdminUser(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	existing, err := h.Admins.GetAdmin(r.Context(), uid)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get admin user")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Admin user not found")
		return
	}

	var input adminUserUpdateInput
	if err := decodeJSON(w, r, &input); err != nil {
		return
	}

	identity := auth.FromContext(r.Context())
	if input.IsActive != nil && !*input.IsActive && identity != nil && identity.UID == uid {
		respondError(w, http.StatusForbidden, "Cannot deactivate your own account")
		return
	}

	updates := []firestore.Update{}
	if input.DisplayName != nil {
		if err := h.Gateway.UpdateDisplayName(r.Context(), uid, *input.DisplayName); err != nil {
			h.respondInternal(w, r, err, "Failed to update display name")
			return
		}
		updates = append(updates, firestore.Update{Path: "displayName", Value: *input.DisplayName})
	}
	if input.Permissions != nil {
		updates = append(updates, firestore.Update{Path: "permissions", Value: *input.Permissions})
	}
	if input.IsActive != nil {
		if err := h.Gateway.SetDisabled(r.Context(), uid, !*input.IsActive); err != nil {
			h.respondInternal(w, r, err, "Failed to update account state")
			return
		}
		updates = append(updates, firestore.Update{Path: "isActive", Value: *input.IsActive})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})

	if err := h.Admins.UpdateAdmin(r.Context(), uid, updates); err != nil {
		h.respondInternal(w, r, err, "Failed to update admin user")
		return
	}

	refreshed, err := h.Admins.GetAdmin(r.Context(), uid)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to reload admin user")
		return
	}
	respondData(w, http.StatusOK, refreshed)
}

// DeleteAdminUser removes both the provider account and the profile
// document. Self-deletion is refused.
func (h *Handler) DeleteAdminUser(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	identity := auth.FromContext(r.Context())
	if identity != nil && identity.UID == uid {
		respondError(w, http.StatusForbidden, "Cannot delete your own account")
		return
	}

	existing, err := h.Admins.GetAdmin(r.Context(), uid)
	if err != nil {
		h.respondInternal(w, r, err, "Failed to get admin user")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Admin user not found")
		return
	}

	if err := h.Gateway.DeleteAccount(r.Context(), uid); err != nil {
		h.respondInternal(w, r, err, "Failed to delete provider account")
		return
	}
	if err := h.Admins.DeleteAdmin(r.Context(), uid); err != nil {
		h.respondInternal(w, r, err, "Failed to delete admin profile")
		return
	}
	respondMessage(w, http.StatusOK, "Admin user deleted")
}

// AdminStats aggregates admin-account counts plus the newest profiles.
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	var (
		total, active int64
		recent        []models.AdminUser
	)

	activeOnly := true
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		n, err := h.Admins.CountAdmins(ctx, nil)
		total = n
		return err
	})
	g.Go(func() error {
		n, err := h.Admins.CountAdmins(ctx, &activeOnly)
		active = n
		return err
	})
	g.Go(func() error {
		list, err := h.Admins.ListRecentAdmins(ctx, 5)
		recent = list
		return err
	})
	if err := g.Wait(); err != nil {
		h.respondInternal(w, r, err, "Failed to aggregate admin stats")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"totalAdmins":    total,
		"activeAdmins":   active,
		"inactiveAdmins": total - active,
		"recentAdmins":   recent,
	})
}
