package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"talenthub-backend/internal/shared/apperr"
)

// Client is the contract against the hosted identity provider. All data
// operations delegate to it; there is no local credential store.
type Client interface {
	CreateIdentity(ctx context.Context, in NewIdentity) (Identity, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	ValidateToken(ctx context.Context, token string) (Identity, error)
	UpdateMetadata(ctx context.Context, id string, fields map[string]any) error
	DeleteIdentity(ctx context.Context, id string) error
}

// HTTPClient talks to a GoTrue-style auth service using a service-role key
// for admin calls.
type HTTPClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewHTTPClient constructs an HTTPClient.
func NewHTTPClient(baseURL, serviceKey string) (*HTTPClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("IDENTITY_PROVIDER_URL is required")
	}
	if strings.TrimSpace(serviceKey) == "" {
		return nil, fmt.Errorf("IDENTITY_SERVICE_KEY is required")
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type providerUser struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	UserMetadata Metadata `json:"user_metadata"`
}

func (u providerUser) toIdentity() Identity {
	role, err := ParseRole(u.UserMetadata.Role)
	if err != nil {
		role = ""
	}
	return Identity{
		ID:       u.ID,
		Email:    u.Email,
		Role:     role,
		Metadata: u.UserMetadata,
	}
}

type providerError struct {
	Msg       string `json:"msg"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

func (e providerError) text() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Message
}

// CreateIdentity provisions a new user with the given metadata. A duplicate
// email maps to AlreadyExists; any other provider failure to DependencyError.
func (c *HTTPClient) CreateIdentity(ctx context.Context, in NewIdentity) (Identity, error) {
	payload := map[string]any{
		"email":         in.Email,
		"password":      in.Password,
		"email_confirm": true,
		"user_metadata": in.Metadata,
	}

	var user providerUser
	status, perr, err := c.do(ctx, http.MethodPost, "/admin/users", payload, c.adminHeaders(), &user)
	if err != nil {
		return Identity{}, apperr.Wrap(apperr.CodeDependency, "identity provider unavailable", err)
	}
	switch {
	case status == http.StatusOK || status == http.StatusCreated:
		return user.toIdentity(), nil
	case status == http.StatusConflict || status == http.StatusUnprocessableEntity || perr.ErrorCode == "email_exists":
		return Identity{}, apperr.New(apperr.CodeAlreadyExists, "an account with this email already exists")
	default:
		return Identity{}, apperr.Wrap(apperr.CodeDependency, "identity provider rejected the request",
			fmt.Errorf("create identity: status %d: %s", status, perr.text()))
	}
}

// SignIn exchanges email/password for a session token.
func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (Session, error) {
	payload := map[string]any{"email": email, "password": password}

	var session struct {
		AccessToken string       `json:"access_token"`
		User        providerUser `json:"user"`
	}
	status, perr, err := c.do(ctx, http.MethodPost, "/token?grant_type=password", payload, c.adminHeaders(), &session)
	if err != nil {
		return Session{}, apperr.Wrap(apperr.CodeDependency, "identity provider unavailable", err)
	}
	if status != http.StatusOK {
		if status == http.StatusBadRequest || status == http.StatusUnauthorized {
			return Session{}, apperr.New(apperr.CodeUnauthenticated, "invalid email or password")
		}
		return Session{}, apperr.Wrap(apperr.CodeDependency, "identity provider rejected the request",
			fmt.Errorf("sign in: status %d: %s", status, perr.text()))
	}
	return Session{AccessToken: session.AccessToken, Identity: session.User.toIdentity()}, nil
}

// ValidateToken resolves a bearer token to its identity. Every request
// re-validates against the provider; results are never cached locally.
func (c *HTTPClient) ValidateToken(ctx context.Context, token string) (Identity, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"apikey":        c.serviceKey,
	}

	var user providerUser
	status, _, err := c.do(ctx, http.MethodGet, "/user", nil, headers, &user)
	if err != nil {
		return Identity{}, apperr.Wrap(apperr.CodeUnauthenticated, "invalid or expired token", err)
	}
	if status != http.StatusOK || user.ID == "" {
		return Identity{}, apperr.New(apperr.CodeUnauthenticated, "invalid or expired token")
	}
	return user.toIdentity(), nil
}

// UpdateMetadata merges fields into the identity's metadata.
func (c *HTTPClient) UpdateMetadata(ctx context.Context, id string, fields map[string]any) error {
	payload := map[string]any{"user_metadata": fields}

	status, perr, err := c.do(ctx, http.MethodPut, "/admin/users/"+id, payload, c.adminHeaders(), nil)
	if err != nil {
		return apperr.Wrap(apperr.CodeDependency, "identity provider unavailable", err)
	}
	if status == http.StatusNotFound {
		return apperr.New(apperr.CodeNotFound, "identity not found")
	}
	if status != http.StatusOK {
		return apperr.Wrap(apperr.CodeDependency, "identity provider rejected the request",
			fmt.Errorf("update metadata: status %d: %s", status, perr.text()))
	}
	return nil
}

// DeleteIdentity removes a provider record. Used only as a compensating
// action when registration fails after identity creation.
func (c *HTTPClient) DeleteIdentity(ctx context.Context, id string) error {
	status, perr, err := c.do(ctx, http.MethodDelete, "/admin/users/"+id, nil, c.adminHeaders(), nil)
	if err != nil {
		return apperr.Wrap(apperr.CodeDependency, "identity provider unavailable", err)
	}
	if status != http.StatusOK && status != http.StatusNoContent && status != http.StatusNotFound {
		return apperr.Wrap(apperr.CodeDependency, "identity provider rejected the request",
			fmt.Errorf("delete identity: status %d: %s", status, perr.text()))
	}
	return nil
}

func (c *HTTPClient) adminHeaders() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.serviceKey,
		"apikey":        c.serviceKey,
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, headers map[string]string, out any) (int, providerError, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, providerError{}, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, providerError{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, providerError{}, fmt.Errorf("call identity provider: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, providerError{}, fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				return resp.StatusCode, providerError{}, fmt.Errorf("decode provider response: %w", err)
			}
		}
		return resp.StatusCode, providerError{}, nil
	}

	var perr providerError
	_ = json.Unmarshal(data, &perr)
	return resp.StatusCode, perr, nil
}
