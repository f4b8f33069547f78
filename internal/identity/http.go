package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTPProvider talks to a hosted GoTrue-compatible identity service over
// REST. Matches the endpoints the dashboard's hosted backend exposes.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// HTTPOption configures HTTPProvider.
type HTTPOption func(*HTTPProvider)

// WithHTTPClient overrides the underlying client (useful for tests).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(p *HTTPProvider) {
		if c != nil {
			p.client = c
		}
	}
}

// WithTimeout bounds each provider round trip.
func WithTimeout(d time.Duration) HTTPOption {
	return func(p *HTTPProvider) {
		if d > 0 {
			p.client.Timeout = d
		}
	}
}

// NewHTTPProvider constructs a provider for the given base URL and API key.
func NewHTTPProvider(baseURL, apiKey string, opts ...HTTPOption) *HTTPProvider {
	p := &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type providerError struct {
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e providerError) message() string {
	switch {
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Msg != "":
		return e.Msg
	case e.Error != "":
		return e.Error
	}
	return "identity provider error"
}

func (p *HTTPProvider) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := p.do(ctx, http.MethodPost, "/token?grant_type=password", "", body, &resp); err != nil {
		return Session{}, err
	}
	if resp.AccessToken == "" || resp.User.ID == "" {
		return Session{}, &APIError{Status: http.StatusUnauthorized, Message: "Login failed"}
	}
	return Session{
		User:        Identity{ID: resp.User.ID, Email: resp.User.Email},
		AccessToken: resp.AccessToken,
		ExpiresAt:   time.Now().UTC().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

func (p *HTTPProvider) SignUp(ctx context.Context, email, password, redirectTo string) (Identity, error) {
	path := "/signup"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := p.do(ctx, http.MethodPost, path, "", body, &resp); err != nil {
		return Identity{}, err
	}
	if resp.ID == "" {
		return Identity{}, &APIError{Status: http.StatusBadRequest, Message: "Registration failed"}
	}
	return Identity{ID: resp.ID, Email: resp.Email}, nil
}

func (p *HTTPProvider) SignOut(ctx context.Context, token string) error {
	return p.do(ctx, http.MethodPost, "/logout", token, nil, nil)
}

func (p *HTTPProvider) GetSession(ctx context.Context, token string) (Session, error) {
	if strings.TrimSpace(token) == "" {
		return Session{}, &APIError{Status: http.StatusUnauthorized, Message: "Auth session missing"}
	}
	var resp struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := p.do(ctx, http.MethodGet, "/user", token, nil, &resp); err != nil {
		return Session{}, err
	}
	return Session{
		User:        Identity{ID: resp.ID, Email: resp.Email},
		AccessToken: token,
	}, nil
}

func (p *HTTPProvider) do(ctx context.Context, method, path, token string, body, out any) error {
	var payload *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("identity: encode request: %w", err)
		}
		payload = bytes.NewBuffer(data)
	} else {
		payload = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("apikey", p.apiKey)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("identity: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var perr providerError
		_ = json.NewDecoder(resp.Body).Decode(&perr)
		return &APIError{Status: resp.StatusCode, Message: perr.message()}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("identity: decode response: %w", err)
	}
	return nil
}
