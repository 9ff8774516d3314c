// Package identity implements the identity-provider port: a Firebase
// Auth REST client for real deployments and an in-memory provider for
// tests and demos.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

const (
	defaultEndpoint = "https://identitytoolkit.googleapis.com/v1"
	defaultTimeout  = 10 * time.Second
)

// firebaseProvider signs in against the Firebase Auth REST API
// (identitytoolkit) and broadcasts session changes to subscribers.
type firebaseProvider struct {
	apiKey   string
	endpoint string
	httpc    *http.Client

	broadcaster
}

type FirebaseOption func(*firebaseProvider)

func WithHTTPClient(httpc *http.Client) FirebaseOption {
	return func(p *firebaseProvider) { p.httpc = httpc }
}

// WithEndpoint overrides the identitytoolkit endpoint, e.g. for the
// Firebase Auth emulator.
func WithEndpoint(endpoint string) FirebaseOption {
	return func(p *firebaseProvider) { p.endpoint = endpoint }
}

func NewFirebase(apiKey string, opts ...FirebaseOption) (port.IdentityProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is empty")
	}

	p := &firebaseProvider{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		httpc:    &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

type authRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type authResponse struct {
	IDToken string `json:"idToken"`
	LocalID string `json:"localId"`
	Email   string `json:"email"`
}

func (p *firebaseProvider) SignIn(ctx context.Context, email, password string) (domain.Principal, error) {
	principal, err := p.authenticate(ctx, "accounts:signInWithPassword", email, password)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("signInWithPassword: %w", err)
	}

	p.broadcast(&principal)
	return principal, nil
}

func (p *firebaseProvider) SignUp(ctx context.Context, email, password string) (domain.Principal, error) {
	principal, err := p.authenticate(ctx, "accounts:signUp", email, password)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("signUp: %w", err)
	}

	p.broadcast(&principal)
	return principal, nil
}

func (p *firebaseProvider) SignOut(_ context.Context) error {
	p.broadcast(nil)
	return nil
}

func (p *firebaseProvider) authenticate(ctx context.Context, action, email, password string) (domain.Principal, error) {
	if email == "" {
		return domain.Principal{}, fmt.Errorf("email is empty")
	}
	if password == "" {
		return domain.Principal{}, fmt.Errorf("password is empty")
	}

	body, err := json.Marshal(authRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return domain.Principal{}, fmt.Errorf("json.Marshal: %w", err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", p.endpoint, action, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.Principal{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("httpc.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Principal{}, fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrAuthRequired)
	}

	var ar authResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return domain.Principal{}, fmt.Errorf("json.Decode: %w", err)
	}

	userID, err := subjectOf(ar)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("subjectOf: %w", err)
	}

	return domain.Principal{UserID: userID, Email: ar.Email}, nil
}

// subjectOf extracts the uid, preferring the ID token's subject claim
// over the response's localId field.
func subjectOf(ar authResponse) (string, error) {
	if ar.IDToken != "" {
		parser := jwt.NewParser()
		token, _, err := parser.ParseUnverified(ar.IDToken, jwt.MapClaims{})
		if err == nil {
			if sub, err := token.Claims.GetSubject(); err == nil && sub != "" {
				return sub, nil
			}
		}
	}

	if ar.LocalID == "" {
		return "", fmt.Errorf("no uid in auth response")
	}

	return ar.LocalID, nil
}
