package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dealpick/backend/internal/util"
)

const (
	identityToolkitBase = "https://identitytoolkit.googleapis.com/v1"

	restMaxRetries = 2
	restRetryDelay = 500 * time.Millisecond
)

// errTransient marks a failure worth retrying: network errors and 5xx
// responses from the toolkit.
var errTransient = errors.New("transient identity toolkit failure")

// RESTClient calls the provider's Identity Toolkit REST endpoints. The Admin
// SDK has no password check and no server-side custom-token exchange, so the
// login and exchange operations go over REST with the project's web API key.
type RESTClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewRESTClient returns a REST client, or nil when no API key is configured
// (login/exchange then answer Service-Unavailable).
func NewRESTClient(apiKey string) *RESTClient {
	if apiKey == "" {
		return nil
	}
	return &RESTClient{
		apiKey:     apiKey,
		baseURL:    identityToolkitBase,
		httpClient: http.DefaultClient,
	}
}

type restError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword verifies an email/password pair against the provider.
// Bad credentials map to ErrInvalidCredentials.
func (c *RESTClient) SignInWithPassword(ctx context.Context, email, password string) (*SessionTokens, error) {
	payload := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	return c.post(ctx, "accounts:signInWithPassword", payload)
}

// SignInWithCustomToken trades an exchange token for a verifiable session
// token, for clients that cannot run the provider SDK themselves.
func (c *RESTClient) SignInWithCustomToken(ctx context.Context, token string) (*SessionTokens, error) {
	payload := map[string]interface{}{
		"token":             token,
		"returnSecureToken": true,
	}
	return c.post(ctx, "accounts:signInWithCustomToken", payload)
}

// post sends the request, retrying transient failures with backoff.
// Credential rejections are terminal and never retried.
func (c *RESTClient) post(ctx context.Context, endpoint string, payload map[string]interface{}) (*SessionTokens, error) {
	var (
		tokens   *SessionTokens
		terminal error
	)
	err := util.RetryWithBackoff(ctx, restMaxRetries, restRetryDelay, func(int) error {
		t, attemptErr := c.postOnce(ctx, endpoint, payload)
		if attemptErr == nil {
			tokens = t
			return nil
		}
		if errors.Is(attemptErr, errTransient) {
			return attemptErr
		}
		terminal = attemptErr
		return nil
	})
	if terminal != nil {
		return nil, terminal
	}
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (c *RESTClient) postOnce(ctx context.Context, endpoint string, payload map[string]interface{}) (*SessionTokens, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errTransient, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: %s returned status %d", errTransient, endpoint, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		var restErr restError
		if err := json.NewDecoder(resp.Body).Decode(&restErr); err == nil {
			switch restErr.Error.Message {
			case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
				return nil, ErrInvalidCredentials
			case "INVALID_CUSTOM_TOKEN", "CREDENTIAL_MISMATCH":
				return nil, fmt.Errorf("%w: %s", ErrInvalidToken, restErr.Error.Message)
			}
			return nil, fmt.Errorf("%s rejected: %s", endpoint, restErr.Error.Message)
		}
		return nil, fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}

	var tokens SessionTokens
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return &tokens, nil
}
