package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrBadCredentials is a rejected email/password pair; anything else
// wrong with the provider surfaces as a plain error.
var ErrBadCredentials = errors.New("invalid email or password")

// LoginResult is the authenticated user plus the credential that was
// installed into the session.
type LoginResult struct {
	AccessToken string
	UserID      string
	Email       string
	DisplayName string
}

// AuthClient performs the password grant against the identity provider.
type AuthClient struct {
	baseURL string
	anonKey string
	client  *http.Client
}

func NewAuthClient(baseURL, anonKey string, timeout time.Duration) *AuthClient {
	return &AuthClient{
		baseURL: baseURL,
		anonKey: anonKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// LoginWithPassword exchanges credentials for an access token and arms
// the session with it.
func (a *AuthClient) LoginWithPassword(ctx context.Context, session *Session, email, password string) (*LoginResult, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("encoding login request: %w", err)
	}

	endpoint := a.baseURL + "/auth/v1/token?grant_type=password"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building login request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", a.anonKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling identity provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading login response: %w", err)
	}

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrBadCredentials
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var grant struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Metadata struct {
				FullName string `json:"full_name"`
			} `json:"user_metadata"`
		} `json:"user"`
	}

	if err := json.Unmarshal(raw, &grant); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}

	if grant.AccessToken == "" {
		return nil, ErrBadCredentials
	}

	session.SetCredential(grant.AccessToken)

	return &LoginResult{
		AccessToken: grant.AccessToken,
		UserID:      grant.User.ID,
		Email:       grant.User.Email,
		DisplayName: grant.User.Metadata.FullName,
	}, nil
}
