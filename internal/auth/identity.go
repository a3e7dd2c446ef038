package auth

import (
	"context"
	"errors"
)

// Errors the gateway reports for expected auth outcomes. Handlers map these
// to 503/401/403 respectively.
var (
	ErrUnavailable        = errors.New("identity provider not configured")
	ErrNoToken            = errors.New("missing bearer token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrNotAdmin           = errors.New("admin access required")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Identity is the resolved admin identity attached to authenticated
// requests: a small fixed set of fields plus the raw claim bag as an
// escape hatch for provider-specific extras.
type Identity struct {
	UID    string
	Email  string
	Admin  bool
	Role   string
	Claims map[string]interface{}
}

// Account is the gateway's view of a provider user record.
type Account struct {
	UID         string
	Email       string
	DisplayName string
	Disabled    bool
	Admin       bool
	Claims      map[string]interface{}
}

// SessionTokens is what the provider returns after a successful credential
// or custom-token sign-in.
type SessionTokens struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	UID          string `json:"localId"`
	Email        string `json:"email"`
}

type contextKey struct{}

// WithIdentity attaches the resolved identity to the request context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity attached by the gating middleware, or nil.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(contextKey{}).(*Identity)
	return id
}
