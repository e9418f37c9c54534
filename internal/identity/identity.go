package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Identity is the authenticated caller. It lives for a single request and
// is never persisted.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
}

var (
	// ErrUnauthenticated means the credential is missing, invalid or
	// expired. Callers translate it to 401.
	ErrUnauthenticated = errors.New("invalid or expired credential")

	// ErrUnavailable means the identity provider could not give a
	// verdict. Kept distinct from ErrUnauthenticated so a provider
	// outage is not reported as a bad login.
	ErrUnavailable = errors.New("identity provider unavailable")
)

//go:generate mockgen -source=identity.go -destination=validator_mock.go -package=identity
type Validator interface {
	Validate(ctx context.Context, credential string) (*Identity, error)
}

// ProviderValidator verifies bearer credentials against a Supabase-style
// auth endpoint. One synchronous call per request, no retries.
type ProviderValidator struct {
	baseURL string
	anonKey string
	client  *http.Client
}

func NewProviderValidator(baseURL, anonKey string, timeout time.Duration) *ProviderValidator {
	return &ProviderValidator{
		baseURL: baseURL,
		anonKey: anonKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type userPayload struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Metadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

func (v *ProviderValidator) Validate(ctx context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, ErrUnauthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+credential)
	if v.anonKey != "" {
		req.Header.Set("apikey", v.anonKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling identity provider: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthenticated
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("identity provider returned %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var user userPayload
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decoding identity response: %w", ErrUnavailable)
	}

	// A success response without a user payload is still not a login.
	if user.ID == "" {
		return nil, ErrUnauthenticated
	}

	return &Identity{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.Metadata.FullName,
	}, nil
}
