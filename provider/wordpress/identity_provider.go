package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pressgate/wpauth"
)

const (
	// DefaultTokenPath is the identity service's token-issuance endpoint.
	DefaultTokenPath = "/token"

	// DefaultProfilePath is the identity service's current-user endpoint.
	DefaultProfilePath = "/users/me"

	defaultTimeout = 10 * time.Second

	// maxErrorBodyBytes caps how much of an error response body makes it
	// into logs.
	maxErrorBodyBytes = 512
)

// Config configures the WordPress identity provider.
type Config struct {
	// BaseURL is the identity service root, e.g. https://example.com/wp-json/jwt-auth/v1.
	BaseURL string

	// TokenPath overrides DefaultTokenPath.
	TokenPath string

	// ProfilePath overrides DefaultProfilePath.
	ProfilePath string

	// HTTPClient is the outbound transport. Timeout, retry, and proxy policy
	// belong to it, not to the provider. Defaults to a client with a 10s
	// timeout.
	HTTPClient *http.Client

	Logger wpauth.Logger
}

// Provider implements wpauth.IdentityProvider backed by a remote
// WordPress-style service.
type Provider struct {
	baseURL     string
	tokenPath   string
	profilePath string
	client      *http.Client
	logger      wpauth.Logger
}

var _ wpauth.IdentityProvider = &Provider{}

// NewProvider creates a WordPress-backed identity provider.
func NewProvider(cfg Config) (*Provider, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("wordpress: base URL is required")
	}

	tokenPath := cfg.TokenPath
	if tokenPath == "" {
		tokenPath = DefaultTokenPath
	}

	profilePath := cfg.ProfilePath
	if profilePath == "" {
		profilePath = DefaultProfilePath
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = wpauth.DefaultLogger()
	}

	return &Provider{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		tokenPath:   tokenPath,
		profilePath: profilePath,
		client:      client,
		logger:      logger,
	}, nil
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// profileResponse mirrors the current-user endpoint. Fields the internal
// model does not use are discarded by the decoder.
type profileResponse struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Slug  string      `json:"slug"`
	Email string      `json:"email"`
	Roles []string    `json:"roles"`
}

// Verify exchanges the credentials for a bearer token. Empty input fails
// before any network call. A non-2xx status is an invalid-credentials
// failure regardless of the body; the status and a body excerpt go to the
// logs, the credentials themselves never do.
func (p *Provider) Verify(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", wpauth.ErrMissingCredentials
	}

	body, err := json.Marshal(tokenRequest{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("wordpress: failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+p.tokenPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("wordpress: failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("wordpress token request failed: %v", err)
		return "", fmt.Errorf("%w: %v", wpauth.ErrTransport, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		p.logger.Warn("wordpress login rejected: status=%d body=%q", res.StatusCode, excerpt(res.Body))
		return "", fmt.Errorf("%w: status %d", wpauth.ErrInvalidCredentials, res.StatusCode)
	}

	var payload tokenResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		p.logger.Error("wordpress token response malformed: %v", err)
		return "", fmt.Errorf("%w: malformed token response", wpauth.ErrInvalidCredentials)
	}

	if payload.Token == "" {
		p.logger.Error("wordpress token response missing token field")
		return "", fmt.Errorf("%w: empty token", wpauth.ErrInvalidCredentials)
	}

	return payload.Token, nil
}

// FetchProfile resolves the bearer token into the normalized Principal.
func (p *Provider) FetchProfile(ctx context.Context, token string) (*wpauth.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+p.profilePath, nil)
	if err != nil {
		return nil, fmt.Errorf("wordpress: failed to build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("wordpress profile request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", wpauth.ErrTransport, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		p.logger.Warn("wordpress profile fetch rejected: status=%d body=%q", res.StatusCode, excerpt(res.Body))
		return nil, fmt.Errorf("%w: status %d", wpauth.ErrProfileFetchFailed, res.StatusCode)
	}

	var payload profileResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		p.logger.Error("wordpress profile response malformed: %v", err)
		return nil, fmt.Errorf("%w: malformed profile response", wpauth.ErrProfileFetchFailed)
	}

	return wpauth.NewPrincipal(
		payload.ID.String(),
		payload.Slug,
		payload.Name,
		payload.Email,
		payload.Roles,
		token,
	), nil
}

// excerpt reads a bounded, single-line sample of an error body for logging.
func excerpt(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(string(raw)), " ")
}
