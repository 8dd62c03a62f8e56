// Package identity talks to the hosted identity provider's backend API.
// Uses raw HTTP calls (no SDK); only the user directory is needed.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
)

// DefaultBaseURL is the provider's backend API root.
const DefaultBaseURL = "https://api.clerk.com"

// ErrNotConfigured is returned when no secret key is set.
var ErrNotConfigured = errors.New("identity: not configured")

// User is one directory entry as exposed by GET /api/users.
type User struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Directory lists the users registered with the identity provider.
type Directory interface {
	ListUsers(ctx context.Context) ([]User, error)
}

// providerUser mirrors the fields we read from the provider's user object.
type providerUser struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

// ClerkClient is the raw HTTP Directory implementation.
type ClerkClient struct {
	BaseURL    string
	SecretKey  string
	httpClient *http.Client
}

var _ Directory = (*ClerkClient)(nil)

// NewClient creates a ClerkClient. An empty baseURL means DefaultBaseURL.
func NewClient(baseURL, secretKey string, timeout time.Duration) *ClerkClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ClerkClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		SecretKey:  secretKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListUsers fetches GET /v1/users and keeps name and primary email only.
// A user without any email address gets an empty Email.
func (c *ClerkClient) ListUsers(ctx context.Context) ([]User, error) {
	if c.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/users", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: list users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("identity: list users: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []providerUser
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("identity: decode users: %w", err)
	}

	return lo.Map(raw, func(u providerUser, _ int) User {
		email := ""
		if len(u.EmailAddresses) > 0 {
			email = u.EmailAddresses[0].EmailAddress
		}
		return User{FirstName: u.FirstName, LastName: u.LastName, Email: email}
	}), nil
}
